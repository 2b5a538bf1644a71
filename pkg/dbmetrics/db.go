package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, замеряющая длительность запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(defaultStatsInterval, stopCh)
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe(query, time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe(query, time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe(query, time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// BeginTx открывает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	sqlTx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &meteredTx{inner: &SqlTxWrapper{Tx: sqlTx}, parent: d}, nil
}

func (d *DB) observe(query string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueryDuration.WithLabelValues(operation(query)).Observe(time.Since(start).Seconds())
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	if d.metrics == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.Set(float64(stats.Idle))
			d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
		}
	}
}

// operation первое слово запроса в нижнем регистре: select, insert, update...
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

type meteredTx struct {
	inner  *SqlTxWrapper
	parent *DB
}

func (t *meteredTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.parent.observe(query, time.Now())
	return t.inner.ExecContext(ctx, query, args...)
}

func (t *meteredTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.parent.observe(query, time.Now())
	return t.inner.QueryContext(ctx, query, args...)
}

func (t *meteredTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.parent.observe(query, time.Now())
	return t.inner.QueryRowContext(ctx, query, args...)
}

func (t *meteredTx) Commit() error {
	return t.inner.Commit()
}

func (t *meteredTx) Rollback() error {
	return t.inner.Rollback()
}
