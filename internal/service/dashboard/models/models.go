package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// OfficeStatsResponse загрузка офиса за день, суммарно по сменам
type OfficeStatsResponse struct {
	OfficeID           string `json:"office_id"`
	OfficeName         string `json:"office_name"`
	CarUtilization     int    `json:"car_utilization"`  // проценты
	BikeUtilization    int    `json:"bike_utilization"` // проценты
	AvailableCarSlots  int    `json:"available_car_slots"`
	AvailableBikeSlots int    `json:"available_bike_slots"`
	TotalCarSlots      int    `json:"total_car_slots"`
	TotalBikeSlots     int    `json:"total_bike_slots"`
}

// DashboardResponse ответ GET /admin/dashboard
type DashboardResponse struct {
	Date          string                `json:"date"`
	RequestCounts map[string]int        `json:"request_counts"`
	TotalRequests int                   `json:"total_requests"`
	OfficeStats   []OfficeStatsResponse `json:"office_stats"`
}

// FromDomain конвертирует снимок дашборда в DTO
func FromDomain(d *domain.Dashboard) *DashboardResponse {
	counts := make(map[string]int, len(d.RequestCounts))
	for status, n := range d.RequestCounts {
		counts[string(status)] = n
	}

	stats := make([]OfficeStatsResponse, 0, len(d.OfficeStats))
	for _, s := range d.OfficeStats {
		stats = append(stats, OfficeStatsResponse{
			OfficeID:           s.OfficeID,
			OfficeName:         s.OfficeName,
			CarUtilization:     s.CarUtilization,
			BikeUtilization:    s.BikeUtilization,
			AvailableCarSlots:  s.AvailableCarSlots,
			AvailableBikeSlots: s.AvailableBikeSlots,
			TotalCarSlots:      s.CarCapacity,
			TotalBikeSlots:     s.BikeCapacity,
		})
	}

	return &DashboardResponse{
		Date:          d.Date.Format(domain.DateFormat),
		RequestCounts: counts,
		TotalRequests: d.RequestCounts.Total(),
		OfficeStats:   stats,
	}
}
