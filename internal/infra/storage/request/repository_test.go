package request

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var rowColumns = []string{
	"id", "employee_id", "employee_name", "employee_email", "employee_phone", "employee_team",
	"office_id", "vehicle_type", "vehicle_number", "duration_type", "shift", "parking_date",
	"description", "status", "slot_number", "rejection_reason", "decided_by",
	"created_at", "decided_at", "updated_at", "office_name",
}

var testDate = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func approvedRow(id string, slot int) []driver.Value {
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "E100", "Asha", "asha@example.com", nil, "Platform",
		"default-office", "car", "TN01AB1234", "single_day", "morning", testDate,
		nil, "approved", int64(slot), nil, "auto-approve",
		created, created, created, "Main Office",
	}
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM parking_requests r LEFT JOIN offices o ON o.id = r.office_id WHERE r.id = \$1$`).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(approvedRow("req-1", 3)...))

	req, err := NewRepository(db).GetByID(context.Background(), "req-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, "C-3", req.SlotLabel())
	assert.Equal(t, domain.ShiftMorning, *req.Shift)
	assert.Equal(t, "Main Office", req.OfficeName)
	assert.Nil(t, req.Requester.Phone)
	assert.Equal(t, "Platform", *req.Requester.Team)
	require.NotNil(t, req.DecidedAt)
}

func TestRepository_GetForUpdate_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) WHERE r.id = \$1 FOR UPDATE OF r`).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(approvedRow("req-1", 1)...))

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	_, err = NewRepository(db).GetForUpdate(ctx, "req-1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM parking_requests").WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err = NewRepository(db).GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetByID_MalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM parking_requests").
		WithArgs("abc").
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	_, err = NewRepository(db).GetByID(context.Background(), "abc")

	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, ErrScanRow)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateDecision_MalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE parking_requests").
		WillReturnError(&pq.Error{Code: "22P02"})

	err = NewRepository(db).UpdateDecision(context.Background(), domain.Decision{
		RequestID: "abc",
		Status:    domain.StatusCancelled,
		DecidedAt: time.Now(),
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO parking_requests").
		WithArgs(
			"req-9", "E1", "Ravi", "ravi@example.com", nil, nil,
			"default-office", "bike", nil, "full_day", nil, testDate,
			nil, "waitlist", nil, nil, created, nil, created,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, err := NewRepository(db).Create(context.Background(), &domain.ParkingRequest{
		ID:           "req-9",
		Requester:    domain.Requester{EmployeeID: "E1", Name: "Ravi", Email: "ravi@example.com"},
		OfficeID:     "default-office",
		VehicleType:  domain.VehicleBike,
		DurationType: domain.DurationFullDay,
		ParkingDate:  testDate,
		Status:       domain.StatusWaitlist,
		CreatedAt:    created,
	})

	require.NoError(t, err)
	assert.Equal(t, created, req.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateDecision_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("UPDATE parking_requests SET status = \\$1").
		WithArgs("rejected", nil, "no capacity", "admin@example.com", now, now, "req-x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).UpdateDecision(context.Background(), domain.Decision{
		RequestID:       "req-x",
		Status:          domain.StatusRejected,
		RejectionReason: ptr.Ptr("no capacity"),
		DecidedBy:       ptr.Ptr("admin@example.com"),
		DecidedAt:       now,
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListWaitlist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	row := approvedRow("req-2", 0)
	row[13] = "waitlist"
	row[14] = nil

	mock.ExpectQuery(`WHERE (.+) AND \(r.shift = \$5 OR r.duration_type = \$6\) ORDER BY r.created_at ASC, r.id ASC`).
		WithArgs("default-office", testDate, "waitlist", "car", "morning", "full_day").
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(row...))

	list, err := NewRepository(db).ListWaitlist(context.Background(), domain.PoolKey{
		OfficeID: "default-office", VehicleType: domain.VehicleCar, Shift: domain.ShiftMorning, Date: testDate,
	})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].SlotNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM parking_requests GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 4).
			AddRow("approved", 2))

	counts, err := NewRepository(db).CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, counts[domain.StatusPending])
	assert.Equal(t, 2, counts[domain.StatusApproved])
	assert.Equal(t, 0, counts[domain.StatusWaitlist])
	assert.Len(t, counts, len(domain.AllStatuses))
}
