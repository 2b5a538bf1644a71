package release_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/promote_waitlist"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/reservation"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase отмена одобренной заявки: места освобождаются, затем продвигается лист ожидания
type UseCase struct {
	requestRepo  RequestRepository
	poolRepo     PoolRepository
	promoter     Promoter
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	poolRepo PoolRepository,
	promoter Promoter,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		poolRepo:     poolRepo,
		promoter:     promoter,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute освобождает места заявки во всех её пулах и переводит её в cancelled.
// Продвижение листа ожидания выполняется после фиксации, по одному пулу за раз.
// Ошибка продвижения не отменяет освобождение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseRequest: request_id=%s, by=%s", req.RequestID, req.ReleasedBy)

	if err := validation.Struct(req); err != nil {
		uc.logger.Warn("ReleaseRequest: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := uc.timeProvider.Now()
	var result *domain.ParkingRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pr, err := uc.requestRepo.GetForUpdate(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		if !pr.Status.CanTransitionTo(domain.StatusCancelled) {
			return fmt.Errorf("%w: request id=%s is %s, only approved requests hold a slot", ErrInvalidTransition, pr.ID, pr.Status)
		}

		if err := reservation.ReleaseAll(txCtx, uc.poolRepo, pr.PoolKeys(), pr.ID); err != nil {
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}

		decision := domain.Decision{
			RequestID: pr.ID,
			Status:    domain.StatusCancelled,
			DecidedBy: ptr.Ptr(req.ReleasedBy),
			DecidedAt: now,
		}
		if err := uc.requestRepo.UpdateDecision(txCtx, decision); err != nil {
			return fmt.Errorf("%w: failed to update request: %w", ErrInternal, err)
		}

		pr.Status = domain.StatusCancelled
		pr.SlotNumber = nil
		pr.DecidedBy = decision.DecidedBy
		pr.DecidedAt = ptr.Ptr(now)
		pr.UpdatedAt = now
		result = pr
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			uc.logger.Warn("ReleaseRequest: request id=%s not found", req.RequestID)
		case errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("ReleaseRequest: %v", err)
		default:
			uc.logger.Error("ReleaseRequest: request id=%s failed: %v", req.RequestID, err)
		}
		return nil, err
	}

	if err := uc.notifier.Notify(ctx, domain.RequestEvent(domain.EventRequestCancelled, result, now)); err != nil {
		uc.logger.Warn("ReleaseRequest: notify failed for request id=%s: %v", result.ID, err)
	}

	promoted := make([]domain.ParkingRequest, 0)
	for _, key := range result.PoolKeys() {
		resp, err := uc.promoter.Execute(ctx, &promote_waitlist.Request{Key: key})
		if err != nil {
			uc.logger.Error("ReleaseRequest: promotion for pool=%s failed: %v", key, err)
		}
		if resp != nil {
			promoted = append(promoted, resp.Promoted...)
		}
	}

	uc.logger.Info("ReleaseRequest: request id=%s cancelled, %d request(s) promoted", result.ID, len(promoted))
	return &Response{Request: result, Promoted: promoted}, nil
}
