package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
)

const (
	maxRetries   = 3
	retryBackoff = 50 * time.Millisecond

	// Коды ошибок PostgreSQL, при которых сериализуемую транзакцию можно повторить
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// ErrSerializationConflict возвращается, когда транзакция не прошла
// после всех повторов из-за конкурентных изменений.
// Вызывающая сторона должна показать пользователю "доступность изменилась, повторите".
var ErrSerializationConflict = errors.New("txmanager: serialization conflict, retry the operation")

// TransactionManager выполняет функции в сериализуемой транзакции
// поверх обёрнутого метриками соединения с БД
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE.
// Транзакция кладётся в контекст; репозитории подхватывают её через dbmetrics.GetExecutor.
// При конфликте сериализации (40001) или дедлоке (40P01) транзакция повторяется
// до maxRetries раз. Бизнес-ошибки не повторяются: с теми же данными результат тот же.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrSerializationConflict, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// IsRetryable сообщает, имеет ли смысл повторять транзакцию после этой ошибки
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}
	return false
}
