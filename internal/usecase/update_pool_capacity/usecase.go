package update_pool_capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/promote_waitlist"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

// UseCase изменение ёмкости пула. Рост ёмкости запускает продвижение листа ожидания.
type UseCase struct {
	poolRepo  PoolRepository
	promoter  Promoter
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(poolRepo PoolRepository, promoter Promoter, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		poolRepo:  poolRepo,
		promoter:  promoter,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет изменение ёмкости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdatePoolCapacity: office=%s, vehicle=%s, shift=%s, date=%s, capacity=%d",
		req.OfficeID, req.VehicleType, req.Shift, req.ParkingDate.Format(domain.DateFormat), req.Capacity)

	if err := validation.Struct(req); err != nil {
		uc.logger.Warn("UpdatePoolCapacity: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	key := req.key()
	var (
		pool     *domain.SlotPool
		previous int
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		pool, previous, err = uc.poolRepo.SetCapacity(txCtx, key, req.Capacity)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, domain.ErrNotFound):
			return ErrOfficeNotFound
		case errors.Is(err, domain.ErrValidation):
			return fmt.Errorf("%w: %v", ErrBelowOccupied, err)
		default:
			return fmt.Errorf("%w: failed to set capacity: %w", ErrInternal, err)
		}
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("UpdatePoolCapacity: pool=%s failed: %v", key, err)
		} else {
			uc.logger.Warn("UpdatePoolCapacity: pool=%s rejected: %v", key, err)
		}
		return nil, err
	}

	resp := &Response{Pool: pool, PreviousCapacity: previous, Promoted: []domain.ParkingRequest{}}

	if pool.Capacity > previous {
		promoted, err := uc.promoter.Execute(ctx, &promote_waitlist.Request{Key: key})
		if err != nil {
			uc.logger.Error("UpdatePoolCapacity: promotion for pool=%s failed: %v", key, err)
		}
		if promoted != nil && len(promoted.Promoted) > 0 {
			resp.Promoted = promoted.Promoted
			if fresh, err := uc.poolRepo.Availability(ctx, key); err == nil {
				resp.Pool = fresh
			} else {
				uc.logger.Warn("UpdatePoolCapacity: failed to re-read pool=%s: %v", key, err)
			}
		}
	}

	uc.logger.Info("UpdatePoolCapacity: pool=%s capacity %d -> %d, promoted=%d", key, previous, pool.Capacity, len(resp.Promoted))
	return resp, nil
}
