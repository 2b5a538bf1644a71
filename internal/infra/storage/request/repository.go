package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// selectColumns порядок должен совпадать со scanRequest
var selectColumns = []string{
	"r.id",
	"r.employee_id",
	"r.employee_name",
	"r.employee_email",
	"r.employee_phone",
	"r.employee_team",
	"r.office_id",
	"r.vehicle_type",
	"r.vehicle_number",
	"r.duration_type",
	"r.shift",
	"r.parking_date",
	"r.description",
	"r.status",
	"r.slot_number",
	"r.rejection_reason",
	"r.decided_by",
	"r.created_at",
	"r.decided_at",
	"r.updated_at",
	"COALESCE(o.name, '')",
}

// Repository Request Ledger поверх PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку. ID и CreatedAt задаёт вызывающий код.
func (r *Repository) Create(ctx context.Context, req *domain.ParkingRequest) (*domain.ParkingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var shift *string
	if req.Shift != nil {
		s := string(*req.Shift)
		shift = &s
	}

	query, args, err := psqlbuilder.Insert("parking_requests").
		Columns(
			"id",
			"employee_id",
			"employee_name",
			"employee_email",
			"employee_phone",
			"employee_team",
			"office_id",
			"vehicle_type",
			"vehicle_number",
			"duration_type",
			"shift",
			"parking_date",
			"description",
			"status",
			"slot_number",
			"decided_by",
			"created_at",
			"decided_at",
			"updated_at",
		).
		Values(
			req.ID,
			req.Requester.EmployeeID,
			req.Requester.Name,
			req.Requester.Email,
			req.Requester.Phone,
			req.Requester.Team,
			req.OfficeID,
			string(req.VehicleType),
			req.VehicleNumber,
			string(req.DurationType),
			shift,
			req.ParkingDate,
			req.Description,
			string(req.Status),
			req.SlotNumber,
			req.DecidedBy,
			req.CreatedAt,
			req.DecidedAt,
			req.CreatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.UpdatedAt = req.CreatedAt
	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ParkingRequest, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate получает заявку с блокировкой строки до конца транзакции.
// Так два решения по одной заявке выполняются строго по очереди.
func (r *Repository) GetForUpdate(ctx context.Context, id string) (*domain.ParkingRequest, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id string, lock bool) (*domain.ParkingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := baseSelect().Where(squirrel.Eq{"r.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("%w: GetByID - id=%s", ErrRequestNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %w", ErrScanRow, err)
	}

	return req, nil
}

// UpdateDecision записывает новый статус и связанные поля
func (r *Repository) UpdateDecision(ctx context.Context, d domain.Decision) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_requests").
		Set("status", string(d.Status)).
		Set("slot_number", d.SlotNumber).
		Set("rejection_reason", d.RejectionReason).
		Set("decided_by", d.DecidedBy).
		Set("decided_at", d.DecidedAt).
		Set("updated_at", d.DecidedAt).
		Where(squirrel.Eq{"id": d.RequestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: UpdateDecision - id=%s", ErrRequestNotFound, d.RequestID)
		}
		return fmt.Errorf("%w: UpdateDecision - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: UpdateDecision - id=%s", ErrRequestNotFound, d.RequestID)
	}

	return nil
}

// List возвращает заявки по фильтру, новые сначала
func (r *Repository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.ParkingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := baseSelect()
	if filter.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"r.employee_id": *filter.EmployeeID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": string(*filter.Status)})
	}
	if filter.OfficeID != nil {
		builder = builder.Where(squirrel.Eq{"r.office_id": *filter.OfficeID})
	}
	builder = builder.OrderBy("r.created_at DESC", "r.id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// ListWaitlist очередь ожидания пула: заявки в статусе waitlist, которые занимают этот пул,
// в порядке подачи. Заявка на полный день стоит в очереди каждой смены.
func (r *Repository) ListWaitlist(ctx context.Context, key domain.PoolKey) ([]domain.ParkingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{
			"r.status":       string(domain.StatusWaitlist),
			"r.office_id":    key.OfficeID,
			"r.vehicle_type": string(key.VehicleType),
			"r.parking_date": key.Date,
		}).
		Where(squirrel.Or{
			squirrel.Eq{"r.shift": string(key.Shift)},
			squirrel.Eq{"r.duration_type": string(domain.DurationFullDay)},
		}).
		OrderBy("r.created_at ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWaitlist - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListWaitlist", query, args)
}

// CountByStatus количество заявок по статусам. Статусы без заявок возвращаются с нулём.
func (r *Repository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("parking_requests").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(domain.StatusCounts, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var (
			status domain.RequestStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan: %w", ErrScanRow, err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows: %w", ErrScanRow, err)
	}

	return counts, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]domain.ParkingRequest, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.ParkingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
		}
		result = append(result, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows: %w", ErrScanRow, op, err)
	}

	return result, nil
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From("parking_requests r").
		LeftJoin("offices o ON o.id = r.office_id")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row scanner) (*domain.ParkingRequest, error) {
	var (
		req        domain.ParkingRequest
		shift      sql.NullString
		slotNumber sql.NullInt64
		decidedAt  sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.Requester.EmployeeID,
		&req.Requester.Name,
		&req.Requester.Email,
		&req.Requester.Phone,
		&req.Requester.Team,
		&req.OfficeID,
		&req.VehicleType,
		&req.VehicleNumber,
		&req.DurationType,
		&shift,
		&req.ParkingDate,
		&req.Description,
		&req.Status,
		&slotNumber,
		&req.RejectionReason,
		&req.DecidedBy,
		&req.CreatedAt,
		&decidedAt,
		&req.UpdatedAt,
		&req.OfficeName,
	)
	if err != nil {
		return nil, err
	}

	if shift.Valid {
		s := domain.Shift(shift.String)
		req.Shift = &s
	}
	if slotNumber.Valid {
		n := int(slotNumber.Int64)
		req.SlotNumber = &n
	}
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}

	return &req, nil
}

// isInvalidID id не является UUID: такой заявки быть не может
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeInvalidTextRepresentation
}
