package domain

import (
	"fmt"
	"math"
	"time"
)

// PoolKey identifies a slot pool: office, vehicle type, shift and calendar date
type PoolKey struct {
	OfficeID    string
	VehicleType VehicleType
	Shift       Shift
	Date        time.Time // только дата, время 00:00 UTC
}

func (k PoolKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.OfficeID, k.VehicleType, k.Shift, k.Date.Format(DateFormat))
}

// SlotPool capacity and occupancy of one pool
type SlotPool struct {
	Key       PoolKey
	Capacity  int
	Occupied  int
	UpdatedAt time.Time
}

// Available returns capacity minus occupied
func (p *SlotPool) Available() int {
	return p.Capacity - p.Occupied
}

// IsExhausted returns true when no slot can be reserved
func (p *SlotPool) IsExhausted() bool {
	return p.Occupied >= p.Capacity
}

// Utilization процент занятости, округлённый до целого. Для пустого пула 0.
func Utilization(occupied, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(capacity) * 100))
}

// SlotAssignment result of a successful reservation
type SlotAssignment struct {
	Key        PoolKey
	RequestID  string
	SlotNumber int
}

// LowestFreeSlot наименьший номер из [1, capacity], не входящий в taken. 0 если свободных нет.
func LowestFreeSlot(capacity int, taken []int) int {
	used := make(map[int]struct{}, len(taken))
	for _, n := range taken {
		used[n] = struct{}{}
	}
	for n := 1; n <= capacity; n++ {
		if _, ok := used[n]; !ok {
			return n
		}
	}
	return 0
}

// SlotLabel номер места с префиксом типа транспорта
func SlotLabel(vt VehicleType, slot int) string {
	return fmt.Sprintf("%s-%d", vt.SlotPrefix(), slot)
}

// NormalizeDate обрезает время и переводит в UTC, чтобы ключи пулов сравнивались по дате
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
