package submit_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Config параметры движка распределения
type Config struct {
	AutoApprove     bool
	Location        *time.Location // определяет "сегодня" при проверке даты
	DefaultOfficeID string
}

// UseCase Allocation Engine: решает при подаче, получает ли заявка место сразу,
// встаёт в лист ожидания или ждёт решения администратора
type UseCase struct {
	requestRepo  RequestRepository
	poolRepo     PoolRepository
	officeRepo   OfficeRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	poolRepo PoolRepository,
	officeRepo OfficeRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultOfficeID == "" {
		cfg.DefaultOfficeID = domain.DefaultOfficeID
	}
	return &UseCase{
		requestRepo:  requestRepo,
		poolRepo:     poolRepo,
		officeRepo:   officeRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет подачу заявки.
// Резервирование мест и запись в Ledger выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitRequest: emp_id=%s, office=%s, vehicle=%s, duration=%s, date=%s",
		req.EmployeeID, req.OfficeID, req.VehicleType, req.DurationType, req.ParkingDate.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных, до любой записи
	if err := validateRequest(req, now, uc.cfg.Location); err != nil {
		uc.logger.Warn("SubmitRequest: validation failed: %v", err)
		return nil, err
	}

	officeID := req.OfficeID
	if officeID == "" {
		officeID = uc.cfg.DefaultOfficeID
	}

	requestID := uuid.NewString()
	exhausted := false
	var result *domain.ParkingRequest

	// 2. Резервирование и запись заявки одной транзакцией
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// транзакция может быть повторена - собираем заявку заново
		pr := buildRequest(req, requestID, officeID, now)
		exhausted = false

		if _, err := uc.officeRepo.GetByID(txCtx, officeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("SubmitRequest: office id=%s not found", officeID)
				return ErrOfficeNotFound
			}
			return fmt.Errorf("%w: failed to get office: %w", ErrInternal, err)
		}

		if uc.cfg.AutoApprove {
			assignments, err := reservation.ReserveAll(txCtx, uc.poolRepo, pr.PoolKeys(), pr.ID)
			switch {
			case errors.Is(err, domain.ErrExhausted):
				exhausted = true
				pr.Status = domain.StatusWaitlist
			case err != nil:
				return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
			default:
				pr.Status = domain.StatusApproved
				pr.SlotNumber = ptr.Ptr(assignments[0].SlotNumber)
				pr.DecidedBy = ptr.Ptr(domain.AutoApproveActor)
				pr.DecidedAt = ptr.Ptr(now)
			}
		}

		created, err := uc.requestRepo.Create(txCtx, pr)
		if err != nil {
			return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrOfficeNotFound) {
			uc.logger.Error("SubmitRequest: emp_id=%s failed: %v", req.EmployeeID, err)
		}
		return nil, err
	}

	if exhausted {
		uc.metrics.ObserveExhausted()
	}
	uc.metrics.ObserveSubmission(string(result.Status))

	if err := uc.notifier.Notify(ctx, domain.RequestEvent(domain.EventRequestSubmitted, result, now)); err != nil {
		uc.logger.Warn("SubmitRequest: notify failed for request id=%s: %v", result.ID, err)
	}

	uc.logger.Info("SubmitRequest: request id=%s created with status=%s, slot=%s",
		result.ID, result.Status, result.SlotLabel())

	return &Response{Request: result}, nil
}

func buildRequest(req *Request, id, officeID string, now time.Time) *domain.ParkingRequest {
	pr := &domain.ParkingRequest{
		ID: id,
		Requester: domain.Requester{
			EmployeeID: req.EmployeeID,
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Team:       req.Team,
		},
		OfficeID:      officeID,
		VehicleType:   domain.VehicleType(req.VehicleType),
		VehicleNumber: req.VehicleNumber,
		DurationType:  domain.DurationType(req.DurationType),
		ParkingDate:   domain.NormalizeDate(req.ParkingDate),
		Description:   req.Description,
		Status:        domain.StatusPending,
		CreatedAt:     now,
	}
	if pr.DurationType == domain.DurationSingleDay && req.Shift != nil {
		pr.Shift = ptr.Ptr(domain.Shift(*req.Shift))
	}
	return pr
}
