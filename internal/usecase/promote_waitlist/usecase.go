package promote_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase продвижение листа ожидания одного пула
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

// Execute одобряет заявки из листа ожидания пула в порядке подачи, пока очередь
// не опустеет или пул снова не заполнится. Каждый кандидат - отдельная транзакция.
// Заявка на полный день, для которой нет места в другой смене, пропускается и остаётся в очереди.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	key := req.Key
	uc.logger.Info("PromoteWaitlist: pool=%s", key)

	candidates, err := uc.requestRepo.ListWaitlist(ctx, key)
	if err != nil {
		uc.logger.Error("PromoteWaitlist: failed to list waitlist for pool=%s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to list waitlist: %w", ErrInternal, err)
	}

	promoted := make([]domain.ParkingRequest, 0)

	for _, candidate := range candidates {
		pr, err := uc.promote(ctx, candidate.ID)
		switch {
		case err == nil:
			promoted = append(promoted, *pr)
			continue
		case errors.Is(err, errSkipped):
			continue
		case errors.Is(err, domain.ErrExhausted):
			pool, availErr := uc.poolRepo.Availability(ctx, key)
			if availErr != nil {
				uc.logger.Error("PromoteWaitlist: failed to read pool=%s: %v", key, availErr)
				return uc.finish(ctx, key, promoted), fmt.Errorf("%w: failed to read pool: %w", ErrInternal, availErr)
			}
			if pool.IsExhausted() {
				uc.logger.Info("PromoteWaitlist: pool=%s is full again", key)
				return uc.finish(ctx, key, promoted), nil
			}
			uc.logger.Info("PromoteWaitlist: request id=%s does not fit another shift, left in waitlist", candidate.ID)
			continue
		default:
			uc.logger.Error("PromoteWaitlist: request id=%s failed: %v", candidate.ID, err)
			return uc.finish(ctx, key, promoted), err
		}
	}

	return uc.finish(ctx, key, promoted), nil
}

func (uc *UseCase) promote(ctx context.Context, requestID string) (*domain.ParkingRequest, error) {
	var result *domain.ParkingRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()

		pr, err := uc.requestRepo.GetForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errSkipped
			}
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}
		// решение могло быть принято между чтением очереди и блокировкой
		if pr.Status != domain.StatusWaitlist {
			return errSkipped
		}

		assignments, err := reservation.ReserveAll(txCtx, uc.poolRepo, pr.PoolKeys(), pr.ID)
		if err != nil {
			if errors.Is(err, domain.ErrExhausted) {
				return err
			}
			return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
		}

		decision := domain.Decision{
			RequestID:  pr.ID,
			Status:     domain.StatusApproved,
			SlotNumber: ptr.Ptr(assignments[0].SlotNumber),
			DecidedBy:  ptr.Ptr(domain.PromotionActor),
			DecidedAt:  now,
		}
		if err := uc.requestRepo.UpdateDecision(txCtx, decision); err != nil {
			return fmt.Errorf("%w: failed to update request: %w", ErrInternal, err)
		}

		pr.Status = decision.Status
		pr.SlotNumber = decision.SlotNumber
		pr.DecidedBy = decision.DecidedBy
		pr.DecidedAt = ptr.Ptr(now)
		pr.UpdatedAt = now
		result = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCase) finish(ctx context.Context, key domain.PoolKey, promoted []domain.ParkingRequest) *Response {
	for i := range promoted {
		pr := &promoted[i]
		uc.metrics.ObservePromotion()

		at := time.Now()
		if pr.DecidedAt != nil {
			at = *pr.DecidedAt
		}
		if err := uc.notifier.Notify(ctx, domain.RequestEvent(domain.EventRequestPromoted, pr, at)); err != nil {
			uc.logger.Warn("PromoteWaitlist: notify failed for request id=%s: %v", pr.ID, err)
		}
		uc.logger.Info("PromoteWaitlist: request id=%s approved from waitlist, slot=%s", pr.ID, pr.SlotLabel())
	}

	if len(promoted) > 0 {
		uc.logger.Info("PromoteWaitlist: pool=%s promoted %d request(s)", key, len(promoted))
	}
	return &Response{Promoted: promoted}
}
