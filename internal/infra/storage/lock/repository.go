package lock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Repository репозиторий временных блокировок слотов
//
// Таблица temporary_locks хранит lock_date, start_time и duration как TEXT
// ("2024-01-15", "10:00", "60"). Все преобразования выполняются здесь через pkg/types:
// при чтении строки парсятся и валидируются, при записи сериализуются обратно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var lockColumns = []string{
	"id",
	"salon_id",
	"lock_date",
	"start_time",
	"duration",
	"created_at",
	"expires_at",
}

// Create сохраняет новую блокировку
// Повтор токена возвращает ErrLockExists
func (r *Repository) Create(ctx context.Context, l *domain.TemporaryLock) (*domain.TemporaryLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("temporary_locks").
		Columns("id", "salon_id", "lock_date", "start_time", "duration", "expires_at").
		Values(
			l.ID,
			l.SalonID,
			types.FormatDate(l.Date),
			l.StartTime.String(),
			types.FormatDurationMinutes(l.DurationMinutes),
			l.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if txmanager.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrLockExists, l.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	l.CreatedAt = createdAt.Time

	return l, nil
}

// GetActive получает действующую блокировку салона по токену
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetActive(ctx context.Context, id string, salonID int64, now time.Time) (*domain.TemporaryLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lockColumns...).
		From("temporary_locks").
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		Where(squirrel.Gt{"expires_at": now})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - %w", ErrScanRow, err)
	}

	return l, nil
}

// ListActiveByDate получает действующие блокировки салона на дату
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveByDate(ctx context.Context, salonID int64, date time.Time, now time.Time) ([]*domain.TemporaryLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lockColumns...).
		From("temporary_locks").
		Where(squirrel.Eq{"salon_id": salonID, "lock_date": types.FormatDate(date)}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	locks := make([]*domain.TemporaryLock, 0)
	for rows.Next() {
		l, err := scanLock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDate - %w", ErrScanRow, err)
		}
		locks = append(locks, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - rows error: %w", ErrScanRow, err)
	}

	return locks, nil
}

// ExtendExpiry продлевает действующую блокировку
func (r *Repository) ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("temporary_locks").
		Set("expires_at", expiresAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ExtendExpiry - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ExtendExpiry - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ExtendExpiry - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLockNotFound
	}

	return nil
}

// Delete удаляет блокировку по токену
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("temporary_locks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLockNotFound
	}

	return nil
}

// DeleteExpired удаляет все истёкшие блокировки и возвращает их количество
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("temporary_locks").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanLock читает строку и нормализует текстовые поля
func scanLock(row rowScanner) (*domain.TemporaryLock, error) {
	var l domain.TemporaryLock
	var lockDate, startTime, duration string
	var createdAt sql.NullTime

	if err := row.Scan(&l.ID, &l.SalonID, &lockDate, &startTime, &duration, &createdAt, &l.ExpiresAt); err != nil {
		return nil, err
	}

	return normalize(&l, lockDate, startTime, duration, createdAt.Time)
}

func normalize(l *domain.TemporaryLock, lockDate, startTime, duration string, createdAt time.Time) (*domain.TemporaryLock, error) {
	date, err := types.ParseDate(lockDate)
	if err != nil {
		return nil, fmt.Errorf("lock %s: lock_date: %w", l.ID, err)
	}
	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, fmt.Errorf("lock %s: start_time: %w", l.ID, err)
	}
	minutes, err := types.ParseDurationMinutes(duration)
	if err != nil {
		return nil, fmt.Errorf("lock %s: duration: %w", l.ID, err)
	}

	l.Date = date
	l.StartTime = start
	l.DurationMinutes = minutes
	l.CreatedAt = createdAt
	return l, nil
}
