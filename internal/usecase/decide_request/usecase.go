package decide_request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase Approval Workflow: решение администратора approve/reject
type UseCase struct {
	requestRepo  RequestRepository
	poolRepo     PoolRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	poolRepo PoolRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		poolRepo:     poolRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет решение. Строка заявки блокируется на время транзакции,
// поэтому два решения по одной заявке не пересекаются: второе увидит итог первого.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideRequest: request_id=%s, status=%s, by=%s", req.RequestID, req.Status, req.DecidedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DecideRequest: validation failed: %v", err)
		return nil, err
	}

	target := domain.RequestStatus(req.Status)
	if target == domain.StatusApproved && req.RejectionReason != nil {
		uc.logger.Warn("DecideRequest: rejection_reason ignored for approval of request id=%s", req.RequestID)
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

		if !pr.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: request id=%s is %s, cannot become %s", ErrInvalidTransition, pr.ID, pr.Status, target)
		}

		decision := domain.Decision{
			RequestID: pr.ID,
			Status:    target,
			DecidedBy: ptr.Ptr(req.DecidedBy),
			DecidedAt: now,
		}

		switch target {
		case domain.StatusApproved:
			assignments, err := reservation.ReserveAll(txCtx, uc.poolRepo, pr.PoolKeys(), pr.ID)
			if err != nil {
				if errors.Is(err, domain.ErrExhausted) {
					return fmt.Errorf("%w: request id=%s: %v", ErrExhausted, pr.ID, err)
				}
				return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
			}
			decision.SlotNumber = ptr.Ptr(assignments[0].SlotNumber)
		case domain.StatusRejected:
			decision.RejectionReason = ptr.Ptr(strings.TrimSpace(*req.RejectionReason))
		}

		if err := uc.requestRepo.UpdateDecision(txCtx, decision); err != nil {
			return fmt.Errorf("%w: failed to update request: %w", ErrInternal, err)
		}

		pr.Status = decision.Status
		pr.SlotNumber = decision.SlotNumber
		pr.RejectionReason = decision.RejectionReason
		pr.DecidedBy = decision.DecidedBy
		pr.DecidedAt = ptr.Ptr(now)
		pr.UpdatedAt = now
		result = pr
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			uc.logger.Warn("DecideRequest: request id=%s not found", req.RequestID)
		case errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("DecideRequest: %v", err)
		case errors.Is(err, ErrExhausted):
			uc.metrics.ObserveExhausted()
			uc.logger.Warn("DecideRequest: no capacity for request id=%s, left unchanged", req.RequestID)
		default:
			uc.logger.Error("DecideRequest: request id=%s failed: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.metrics.ObserveDecision(string(result.Status))

	if err := uc.notifier.Notify(ctx, domain.RequestEvent(domain.EventRequestDecided, result, now)); err != nil {
		uc.logger.Warn("DecideRequest: notify failed for request id=%s: %v", result.ID, err)
	}

	uc.logger.Info("DecideRequest: request id=%s is now %s, slot=%s", result.ID, result.Status, result.SlotLabel())
	return &Response{Request: result}, nil
}
