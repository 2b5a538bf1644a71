package requests

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
)

// Service чтение Request Ledger: списки заявок сотрудника и администратора
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// ListByEmployee заявки сотрудника, новые первыми. Для неизвестного сотрудника - пустой список.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]models.ParkingRequestResponse, error) {
	s.logger.Info("ListByEmployee: emp_id=%s", employeeID)

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("emp_id", "Emp Id is required"))
	}

	list, err := s.requestRepo.List(ctx, domain.RequestFilter{EmployeeID: &employeeID})
	if err != nil {
		s.logger.Error("ListByEmployee: repository error for emp_id=%s: %v", employeeID, err)
		return nil, fmt.Errorf("%w: ListByEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEmployee: found %d request(s) for emp_id=%s", len(list), employeeID)
	return models.FromDomainList(list), nil
}

// ListByStatus список для администратора. Пустой статус - все заявки.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.ParkingRequestResponse, error) {
	s.logger.Info("ListByStatus: status=%q", status)

	filter := domain.RequestFilter{}
	if status != "" {
		st, err := domain.ParseRequestStatus(status)
		if err != nil {
			s.logger.Warn("ListByStatus: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		filter.Status = &st
	}

	list, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByStatus: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStatus: found %d request(s)", len(list))
	return models.FromDomainList(list), nil
}
