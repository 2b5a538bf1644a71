package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

const defaultMaxRetries = 3

// SQLSTATE, при которых serializable транзакцию имеет смысл повторить
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	ErrBeginTx  = errors.New("txmanager: failed to begin transaction")
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner *dbmetrics.DB или любая другая обёртка, умеющая открывать транзакции
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функцию в транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
}

func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, maxRetries: defaultMaxRetries}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При конфликте сериализации или дедлоке транзакция повторяется целиком, fn должна быть идемпотентной.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if err == nil || !IsRetryable(err) || dbmetrics.IsInTransaction(ctx) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в снимке REPEATABLE READ только на чтение
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable true для serialization_failure и deadlock_detected
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
