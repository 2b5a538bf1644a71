package office

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

const uniqueViolation = "23505"

var columns = []string{"id", "name", "location", "car_capacity", "bike_capacity", "created_at"}

// Repository репозиторий офисов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офисов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создаёт офис. Занятый id - ErrOfficeExists.
func (r *Repository) Create(ctx context.Context, office *domain.Office) (*domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offices").
		Columns("id", "name", "location", "car_capacity", "bike_capacity").
		Values(office.ID, office.Name, office.Location, office.CarCapacity, office.BikeCapacity).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&office.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: Create - id=%s", ErrOfficeExists, office.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return office, nil
}

// GetByID получает офис по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("offices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	office, err := scanOffice(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetByID - id=%s", ErrOfficeNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %w", ErrScanRow, err)
	}

	return office, nil
}

// List возвращает все офисы по имени
func (r *Repository) List(ctx context.Context) ([]domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("offices").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	offices := make([]domain.Office, 0)
	for rows.Next() {
		office, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %w", ErrScanRow, err)
		}
		offices = append(offices, *office)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows: %w", ErrScanRow, err)
	}

	return offices, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOffice(row scanner) (*domain.Office, error) {
	var o domain.Office
	if err := row.Scan(&o.ID, &o.Name, &o.Location, &o.CarCapacity, &o.BikeCapacity, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
