package keylock

import "sync"

// KeyLock мьютекс на ключ. Запись о ключе удаляется, когда его больше никто не держит и не ждёт.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock блокирует key и возвращает функцию разблокировки
func (k *KeyLock) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len количество ключей, которые сейчас удерживаются или ожидаются
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
