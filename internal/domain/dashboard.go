package domain

import "time"

// StatusCounts количество заявок по каждому статусу
type StatusCounts map[RequestStatus]int

// Total сумма по всем статусам
func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// OfficeStats utilization of one office across every shift of the observed date
type OfficeStats struct {
	OfficeID           string
	OfficeName         string
	CarCapacity        int
	CarOccupied        int
	BikeCapacity       int
	BikeOccupied       int
	CarUtilization     int
	BikeUtilization    int
	AvailableCarSlots  int
	AvailableBikeSlots int
}

// Dashboard snapshot rendered from a single read-only transaction
type Dashboard struct {
	Date          time.Time
	RequestCounts StatusCounts
	OfficeStats   []OfficeStats
}
