// Package memory хранилище в памяти процесса для локального запуска и тестов.
// Изменения применяются сразу, откат выполняется через журнал memtx,
// блокировки ключей держатся до конца транзакции.
package memory

import (
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

// Storage общий набор хранилищ: заявки читают названия офисов, пулы - ёмкость офисов
type Storage struct {
	Offices  *OfficeStore
	Requests *RequestStore
	Pools    *PoolStore
}

// New создаёт пустое хранилище
func New() *Storage {
	locks := keylock.New()
	offices := newOfficeStore()
	return &Storage{
		Offices:  offices,
		Requests: newRequestStore(offices, locks),
		Pools:    newPoolStore(offices, locks),
	}
}
