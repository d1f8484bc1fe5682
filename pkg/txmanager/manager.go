package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 20 * time.Millisecond

	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryRecorder приёмник метрик повторов
type RetryRecorder interface {
	IncTxRetry()
	IncTxRollback()
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Manager открывает транзакции и кладёт их в контекст
// Если в контексте уже есть транзакция, функция выполняется в ней
type Manager struct {
	db          TxBeginner
	maxAttempts int
	backoff     time.Duration
	recorder    RetryRecorder
	logger      Logger
}

type Option func(*Manager)

// WithMaxAttempts число попыток сериализуемой транзакции (включая первую)
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.backoff = d
	}
}

func WithRecorder(r RetryRecorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

func WithLogger(l Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *Manager {
	m := &Manager{
		db:          db,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции REPEATABLE READ только для чтения
// Все запросы fn видят один снимок; внутри уже открытой транзакции fn выполняется в ней
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}
	return m.run(dbmetrics.WithReadOnly(ctx), &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При ошибке сериализации (40001) или дедлоке (40P01) транзакция повторяется целиком,
// поэтому fn не должна иметь побочных эффектов вне БД
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		if attempt == m.maxAttempts {
			break
		}

		if m.recorder != nil {
			m.recorder.IncTxRetry()
		}
		if m.logger != nil {
			m.logger.Warn("DoSerializable: attempt %d/%d failed with retryable error: %v", attempt, m.maxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: %d attempts: %w", ErrRetriesExhausted, m.maxAttempts, err)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
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

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		if m.recorder != nil {
			m.recorder.IncTxRollback()
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}

	return nil
}

// IsRetryable сообщает, что ошибка вызвана конфликтом сериализации или дедлоком
func IsRetryable(err error) bool {
	return HasSQLState(err, sqlStateSerializationFailure, sqlStateDeadlockDetected)
}

// HasSQLState проверяет код ошибки PostgreSQL в цепочке err
func HasSQLState(err error, codes ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}
	return false
}
