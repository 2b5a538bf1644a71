// Package reservation общий для движка шаг резервирования: заявка занимает место
// в каждом своём пуле, либо не занимает ни одного.
package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Registry часть Capacity Registry, нужная для резервирования
type Registry interface {
	Reserve(ctx context.Context, key domain.PoolKey, requestID string) (*domain.SlotAssignment, error)
	Release(ctx context.Context, key domain.PoolKey, requestID string) (bool, error)
}

// ReserveAll резервирует ключи по порядку. Если какой-то пул исчерпан, уже занятые места
// освобождаются в обратном порядке и возвращается ошибка, оборачивающая domain.ErrExhausted.
// Первым идёт основной номер места заявки.
func ReserveAll(ctx context.Context, registry Registry, keys []domain.PoolKey, requestID string) ([]domain.SlotAssignment, error) {
	assignments := make([]domain.SlotAssignment, 0, len(keys))

	for _, key := range keys {
		a, err := registry.Reserve(ctx, key, requestID)
		if err == nil {
			assignments = append(assignments, *a)
			continue
		}

		if releaseErr := releaseAll(ctx, registry, assignments); releaseErr != nil {
			return nil, errors.Join(err, releaseErr)
		}
		return nil, err
	}

	return assignments, nil
}

// ReleaseAll освобождает место заявки во всех её пулах. Повторный вызов безопасен.
func ReleaseAll(ctx context.Context, registry Registry, keys []domain.PoolKey, requestID string) error {
	for _, key := range keys {
		if _, err := registry.Release(ctx, key, requestID); err != nil {
			return fmt.Errorf("release %s: %w", key, err)
		}
	}
	return nil
}

func releaseAll(ctx context.Context, registry Registry, assignments []domain.SlotAssignment) error {
	for i := len(assignments) - 1; i >= 0; i-- {
		a := assignments[i]
		if _, err := registry.Release(ctx, a.Key, a.RequestID); err != nil {
			return fmt.Errorf("release partial %s: %w", a.Key, err)
		}
	}
	return nil
}
