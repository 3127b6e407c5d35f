package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func occupyingStatuses() []string {
	statuses := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Create создает новую запись
// Вызывается внутри транзакции подтверждения, после проверки пересечений
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"salon_id",
			"staff_id",
			"service_id",
			"customer_id",
			"start_time",
			"end_time",
			"status",
			"price",
		).
		Values(
			a.SalonID,
			a.StaffID,
			a.ServiceID,
			a.CustomerID,
			a.StartTime,
			a.EndTime,
			a.Status,
			a.Price,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return a, nil
}

// ListOccupying получает записи салона, занимающие время и пересекающиеся с [from, to)
func (r *Repository) ListOccupying(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"service_id",
		"customer_id",
		"start_time",
		"end_time",
		"status",
		"price",
		"created_at",
	).
		From("appointments").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"status": occupyingStatuses()}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		var customerID sql.NullInt64
		var createdAt sql.NullTime

		if err := rows.Scan(
			&a.ID,
			&a.SalonID,
			&a.StaffID,
			&a.ServiceID,
			&customerID,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.Price,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOccupying - scan row: %v", ErrScanRow, err)
		}

		if customerID.Valid {
			id := customerID.Int64
			a.CustomerID = &id
		}
		a.CreatedAt = createdAt.Time
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// HasStaffOverlap проверяет, есть ли у сотрудников записи, пересекающиеся с [start, end)
// Касание границ пересечением не считается.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) HasStaffOverlap(ctx context.Context, staffIDs []int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("appointments").
		Where("staff_id = ANY(?)", pq.Array(staffIDs)).
		Where(squirrel.Eq{"status": occupyingStatuses()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasStaffOverlap - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: HasStaffOverlap - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: HasStaffOverlap - rows error: %w", ErrScanRow, err)
	}

	return found, nil
}
