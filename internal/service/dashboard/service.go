package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
)

// Service Dashboard Aggregator
type Service struct {
	requestRepo  RequestRepository
	officeRepo   OfficeRepository
	poolRepo     PoolRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса. location определяет "сегодня".
func NewService(
	requestRepo RequestRepository,
	officeRepo OfficeRepository,
	poolRepo PoolRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		requestRepo:  requestRepo,
		officeRepo:   officeRepo,
		poolRepo:     poolRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Get снимок дашборда. Окно наблюдения - все смены одной даты (по умолчанию сегодня).
// Все числа читаются одной read-only транзакцией.
func (s *Service) Get(ctx context.Context, date *time.Time) (*models.DashboardResponse, error) {
	day := domain.NormalizeDate(s.timeProvider.Now().In(s.location))
	if date != nil {
		day = domain.NormalizeDate(*date)
	}
	s.logger.Info("Dashboard: date=%s", day.Format(domain.DateFormat))

	snapshot := &domain.Dashboard{Date: day}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		counts, err := s.requestRepo.CountByStatus(txCtx)
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}

		offices, err := s.officeRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("list offices: %w", err)
		}

		pools, err := s.poolRepo.ListByDate(txCtx, day)
		if err != nil {
			return fmt.Errorf("list pools: %w", err)
		}

		snapshot.RequestCounts = counts
		snapshot.OfficeStats = aggregate(offices, pools)
		return nil
	})
	if err != nil {
		s.logger.Error("Dashboard: failed to build snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomain(snapshot), nil
}

// aggregate суммирует пулы офиса по сменам. Пул без заявок считается пустым
// с ёмкостью офиса по умолчанию.
func aggregate(offices []domain.Office, pools []domain.SlotPool) []domain.OfficeStats {
	type poolID struct {
		officeID string
		vehicle  domain.VehicleType
		shift    domain.Shift
	}
	byKey := make(map[poolID]domain.SlotPool, len(pools))
	for _, p := range pools {
		byKey[poolID{p.Key.OfficeID, p.Key.VehicleType, p.Key.Shift}] = p
	}

	stats := make([]domain.OfficeStats, 0, len(offices))
	for i := range offices {
		office := &offices[i]
		st := domain.OfficeStats{OfficeID: office.ID, OfficeName: office.Name}

		for _, sh := range domain.AllShifts {
			for _, vt := range []domain.VehicleType{domain.VehicleCar, domain.VehicleBike} {
				capacity, occupied := office.CapacityFor(vt), 0
				if p, ok := byKey[poolID{office.ID, vt, sh}]; ok {
					capacity, occupied = p.Capacity, p.Occupied
				}

				if vt == domain.VehicleCar {
					st.CarCapacity += capacity
					st.CarOccupied += occupied
				} else {
					st.BikeCapacity += capacity
					st.BikeOccupied += occupied
				}
			}
		}

		st.CarUtilization = domain.Utilization(st.CarOccupied, st.CarCapacity)
		st.BikeUtilization = domain.Utilization(st.BikeOccupied, st.BikeCapacity)
		st.AvailableCarSlots = st.CarCapacity - st.CarOccupied
		st.AvailableBikeSlots = st.BikeCapacity - st.BikeOccupied
		stats = append(stats, st)
	}
	return stats
}
