package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository Capacity Registry поверх PostgreSQL.
// Строка slot_pools - единица блокировки: reserve/release/set capacity по одному ключу
// сериализуются через SELECT ... FOR UPDATE, разные ключи друг друга не блокируют.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пулов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve занимает наименьший свободный номер места в пуле.
// Вызывается только внутри транзакции: блокировка строки пула держится до её конца.
func (r *Repository) Reserve(ctx context.Context, key domain.PoolKey, requestID string) (*domain.SlotAssignment, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: Reserve - key=%s", ErrTransactionRequired, key)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ensurePool(ctx, executor, key); err != nil {
		return nil, fmt.Errorf("Reserve: %w", err)
	}

	pool, err := r.lockPool(ctx, executor, key)
	if err != nil {
		return nil, fmt.Errorf("Reserve: %w", err)
	}
	if pool.IsExhausted() {
		return nil, fmt.Errorf("%w: Reserve - key=%s capacity=%d", ErrPoolExhausted, key, pool.Capacity)
	}

	taken, err := r.activeSlots(ctx, executor, key)
	if err != nil {
		return nil, fmt.Errorf("Reserve: %w", err)
	}

	slot := domain.LowestFreeSlot(pool.Capacity, taken)
	if slot == 0 {
		return nil, fmt.Errorf("%w: Reserve - key=%s no free slot number", ErrPoolExhausted, key)
	}

	query, args, err := psqlbuilder.Insert("slot_assignments").
		Columns("office_id", "vehicle_type", "shift", "parking_date", "request_id", "slot_number").
		Values(key.OfficeID, string(key.VehicleType), string(key.Shift), key.Date, requestID, slot).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Reserve - insert assignment: %w", ErrExecQuery, err)
	}

	if err := r.shiftOccupied(ctx, executor, key, +1); err != nil {
		return nil, fmt.Errorf("Reserve: %w", err)
	}

	return &domain.SlotAssignment{Key: key, RequestID: requestID, SlotNumber: slot}, nil
}

// Release освобождает место заявки в пуле. Повторный вызов возвращает false без ошибки.
func (r *Repository) Release(ctx context.Context, key domain.PoolKey, requestID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := r.lockPool(ctx, executor, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("Release: %w", err)
	}

	query, args, err := psqlbuilder.Update("slot_assignments").
		Set("released_at", squirrel.Expr("now()")).
		Where(keyEq(key)).
		Where(squirrel.Eq{"request_id": requestID, "released_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Release - update assignment: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Release - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := r.shiftOccupied(ctx, executor, key, -1); err != nil {
		return false, fmt.Errorf("Release: %w", err)
	}

	return true, nil
}

// Availability ёмкость и занятость пула. Пул, который ещё не создан, имеет ёмкость офиса по умолчанию.
func (r *Repository) Availability(ctx context.Context, key domain.PoolKey) (*domain.SlotPool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("capacity", "occupied", "updated_at").
		From("slot_pools").
		Where(keyEq(key)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Availability - build select query: %v", ErrBuildQuery, err)
	}

	pool := &domain.SlotPool{Key: key}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&pool.Capacity, &pool.Occupied, &pool.UpdatedAt)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Availability - scan: %w", ErrScanRow, err)
	}

	capacity, err := r.defaultCapacity(ctx, executor, key)
	if err != nil {
		return nil, fmt.Errorf("Availability: %w", err)
	}
	pool.Capacity = capacity
	return pool, nil
}

// ListByDate все созданные пулы на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]domain.SlotPool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("office_id", "vehicle_type", "shift", "parking_date", "capacity", "occupied", "updated_at").
		From("slot_pools").
		Where(squirrel.Eq{"parking_date": domain.NormalizeDate(date)}).
		OrderBy("office_id", "vehicle_type", "shift").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	pools := make([]domain.SlotPool, 0)
	for rows.Next() {
		var p domain.SlotPool
		if err := rows.Scan(
			&p.Key.OfficeID,
			&p.Key.VehicleType,
			&p.Key.Shift,
			&p.Key.Date,
			&p.Capacity,
			&p.Occupied,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan: %w", ErrScanRow, err)
		}
		p.Key.Date = domain.NormalizeDate(p.Key.Date)
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows: %w", ErrScanRow, err)
	}

	return pools, nil
}

// SetCapacity меняет ёмкость одного пула и возвращает прежнее значение
func (r *Repository) SetCapacity(ctx context.Context, key domain.PoolKey, capacity int) (*domain.SlotPool, int, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, 0, fmt.Errorf("%w: SetCapacity - key=%s", ErrTransactionRequired, key)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ensurePool(ctx, executor, key); err != nil {
		return nil, 0, fmt.Errorf("SetCapacity: %w", err)
	}

	pool, err := r.lockPool(ctx, executor, key)
	if err != nil {
		return nil, 0, fmt.Errorf("SetCapacity: %w", err)
	}
	if capacity < pool.Occupied {
		return nil, 0, fmt.Errorf("%w: SetCapacity - key=%s capacity=%d occupied=%d",
			ErrCapacityBelowOccupied, key, capacity, pool.Occupied)
	}

	query, args, err := psqlbuilder.Update("slot_pools").
		Set("capacity", capacity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(keyEq(key)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: SetCapacity - build update query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: SetCapacity - execute update: %w", ErrExecQuery, err)
	}

	previous := pool.Capacity
	pool.Capacity = capacity
	return pool, previous, nil
}

// ensurePool создаёт строку пула с ёмкостью офиса по умолчанию, если её ещё нет
func (r *Repository) ensurePool(ctx context.Context, executor DBExecutor, key domain.PoolKey) error {
	source := psqlbuilder.Select().
		Column("id").
		Column("?", string(key.VehicleType)).
		Column("?", string(key.Shift)).
		Column("?::date", key.Date).
		Column(capacityColumn(key.VehicleType)).
		From("offices").
		Where(squirrel.Eq{"id": key.OfficeID})

	query, args, err := psqlbuilder.Insert("slot_pools").
		Columns("office_id", "vehicle_type", "shift", "parking_date", "capacity").
		Select(source).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ensurePool - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ensurePool - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// lockPool читает пул с блокировкой строки. Нет пула после ensurePool - значит нет офиса.
func (r *Repository) lockPool(ctx context.Context, executor DBExecutor, key domain.PoolKey) (*domain.SlotPool, error) {
	builder := psqlbuilder.Select("capacity", "occupied", "updated_at").
		From("slot_pools").
		Where(keyEq(key))
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: lockPool - build select query: %v", ErrBuildQuery, err)
	}

	pool := &domain.SlotPool{Key: key}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&pool.Capacity, &pool.Occupied, &pool.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: lockPool - key=%s: %w", ErrOfficeNotFound, key, err)
		}
		return nil, fmt.Errorf("%w: lockPool - scan: %w", ErrScanRow, err)
	}
	return pool, nil
}

func (r *Repository) activeSlots(ctx context.Context, executor DBExecutor, key domain.PoolKey) ([]int, error) {
	query, args, err := psqlbuilder.Select("slot_number").
		From("slot_assignments").
		Where(keyEq(key)).
		Where(squirrel.Eq{"released_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: activeSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: activeSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	taken := make([]int, 0)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: activeSlots - scan: %w", ErrScanRow, err)
		}
		taken = append(taken, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: activeSlots - rows: %w", ErrScanRow, err)
	}
	return taken, nil
}

func (r *Repository) shiftOccupied(ctx context.Context, executor DBExecutor, key domain.PoolKey, delta int) error {
	query, args, err := psqlbuilder.Update("slot_pools").
		Set("occupied", squirrel.Expr("occupied + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(keyEq(key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: shiftOccupied - build update query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: shiftOccupied - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) defaultCapacity(ctx context.Context, executor DBExecutor, key domain.PoolKey) (int, error) {
	query, args, err := psqlbuilder.Select(capacityColumn(key.VehicleType)).
		From("offices").
		Where(squirrel.Eq{"id": key.OfficeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: defaultCapacity - build select query: %v", ErrBuildQuery, err)
	}

	var capacity int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: defaultCapacity - office=%s", ErrOfficeNotFound, key.OfficeID)
		}
		return 0, fmt.Errorf("%w: defaultCapacity - scan: %w", ErrScanRow, err)
	}
	return capacity, nil
}

func keyEq(key domain.PoolKey) squirrel.Eq {
	return squirrel.Eq{
		"office_id":    key.OfficeID,
		"vehicle_type": string(key.VehicleType),
		"shift":        string(key.Shift),
		"parking_date": key.Date,
	}
}

func capacityColumn(vt domain.VehicleType) string {
	if vt == domain.VehicleBike {
		return "bike_capacity"
	}
	return "car_capacity"
}
