package offices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices/models"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

// Service офисы и свободные места
type Service struct {
	officeRepo OfficeRepository
	poolRepo   PoolRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса офисов
func NewService(officeRepo OfficeRepository, poolRepo PoolRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		officeRepo: officeRepo,
		poolRepo:   poolRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создаёт офис. Ёмкости офиса - значения по умолчанию для новых пулов.
func (s *Service) Create(ctx context.Context, req *models.CreateOfficeRequest) (*models.OfficeResponse, error) {
	s.logger.Info("Create: creating office name=%q, car=%d, bike=%d", req.Name, req.TotalCarSlots, req.TotalBikeSlots)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	office := &domain.Office{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		CarCapacity:  req.TotalCarSlots,
		BikeCapacity: req.TotalBikeSlots,
	}

	created, err := s.officeRepo.Create(ctx, office)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: office id=%s created", created.ID)
	return models.FromDomainOffice(created), nil
}

// List все офисы по имени
func (s *Service) List(ctx context.Context) ([]models.OfficeResponse, error) {
	list, err := s.officeRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]models.OfficeResponse, 0, len(list))
	for i := range list {
		result = append(result, *models.FromDomainOffice(&list[i]))
	}
	return result, nil
}

// Availability занятость пулов офиса на дату по всем сменам.
// Пулы, в которых ещё не было заявок, показываются с ёмкостью офиса по умолчанию.
func (s *Service) Availability(ctx context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	date := domain.NormalizeDate(req.Date)
	s.logger.Info("Availability: office=%s, date=%s", req.OfficeID, date.Format(domain.DateFormat))

	vehicles := []domain.VehicleType{domain.VehicleCar, domain.VehicleBike}
	if req.VehicleType != nil {
		vt := domain.VehicleType(*req.VehicleType)
		if !vt.IsValid() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput,
				domain.NewValidationError("vehicle_type", "Vehicle Type must be one of: car, bike"))
		}
		vehicles = []domain.VehicleType{vt}
	}

	resp := &models.AvailabilityResponse{
		OfficeID: req.OfficeID,
		Date:     date.Format(domain.DateFormat),
		Pools:    make([]models.PoolAvailability, 0, len(vehicles)*len(domain.AllShifts)),
	}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		office, err := s.officeRepo.GetByID(txCtx, req.OfficeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrOfficeNotFound
			}
			return fmt.Errorf("%w: Availability - failed to get office: %v", ErrInternal, err)
		}
		resp.OfficeName = office.Name

		for _, vt := range vehicles {
			for _, sh := range domain.AllShifts {
				key := domain.PoolKey{OfficeID: office.ID, VehicleType: vt, Shift: sh, Date: date}
				pool, err := s.poolRepo.Availability(txCtx, key)
				if err != nil {
					return fmt.Errorf("%w: Availability - pool %s: %v", ErrInternal, key, err)
				}
				resp.Pools = append(resp.Pools, models.FromDomainPool(pool))
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOfficeNotFound) {
			s.logger.Warn("Availability: office id=%s not found", req.OfficeID)
		} else {
			s.logger.Error("Availability: %v", err)
		}
		return nil, err
	}

	return resp, nil
}

// EnsureDefault создаёт офис по умолчанию, если его ещё нет. Вызывается при старте.
func (s *Service) EnsureDefault(ctx context.Context, office domain.Office) error {
	if _, err := s.officeRepo.GetByID(ctx, office.ID); err == nil {
		s.logger.Info("EnsureDefault: office id=%s already exists", office.ID)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: EnsureDefault - failed to get office: %v", ErrInternal, err)
	}

	if _, err := s.officeRepo.Create(ctx, &office); err != nil {
		// параллельный старт другого экземпляра успел создать офис
		if errors.Is(err, domain.ErrValidation) {
			return nil
		}
		return fmt.Errorf("%w: EnsureDefault - failed to create office: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureDefault: office id=%s (%s, %s) created with car=%d, bike=%d",
		office.ID, office.Name, office.Location, office.CarCapacity, office.BikeCapacity)
	return nil
}
