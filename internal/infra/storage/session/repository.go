package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий сессий бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую сессию
func (r *Repository) Create(ctx context.Context, s *domain.BookingSession) (*domain.BookingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_sessions").
		Columns("token", "salon_id", "state", "expires_at").
		Values(s.Token, s.SalonID, s.State, s.ExpiresAt).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByToken получает сессию по токену
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.BookingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"token",
		"salon_id",
		"state",
		"expires_at",
		"selected_slot",
		"customer_info",
		"created_at",
		"updated_at",
	).
		From("booking_sessions").
		Where(squirrel.Eq{"token": token})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSession
	var slotRaw, customerRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Token,
		&s.SalonID,
		&s.State,
		&s.ExpiresAt,
		&slotRaw,
		&customerRaw,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan session: %w", ErrScanRow, err)
	}

	if s.SelectedSlot, err = decodeSlot(slotRaw); err != nil {
		return nil, fmt.Errorf("%w: GetByToken - decode selected_slot: %v", ErrScanRow, err)
	}
	if s.CustomerInfo, err = decodeCustomer(customerRaw); err != nil {
		return nil, fmt.Errorf("%w: GetByToken - decode customer_info: %v", ErrScanRow, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// UpdateSelectedSlot переводит сессию в SLOT_SELECTED с новым слотом
// Обновление условное: сессия должна находиться в одном из состояний from.
// Если строка не обновлена, возвращается ErrStateChanged.
func (r *Repository) UpdateSelectedSlot(ctx context.Context, token string, slot *domain.SelectedSlot, from []domain.SessionState, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := encodeSlot(slot)
	if err != nil {
		return fmt.Errorf("%w: UpdateSelectedSlot - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("booking_sessions").
		Set("state", domain.SessionSlotSelected).
		Set("selected_slot", jsonArg(payload)).
		Set("updated_at", now).
		Where(squirrel.Eq{"token": token, "state": statesToStrings(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSelectedSlot - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, "UpdateSelectedSlot", query, args)
}

// MarkConfirmed переводит сессию из SLOT_SELECTED в CONFIRMED и сохраняет данные клиента
func (r *Repository) MarkConfirmed(ctx context.Context, token string, info *domain.CustomerInfo, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := encodeCustomer(info)
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("booking_sessions").
		Set("state", domain.SessionConfirmed).
		Set("customer_info", jsonArg(payload)).
		Set("updated_at", now).
		Where(squirrel.Eq{"token": token, "state": string(domain.SessionSlotSelected)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, "MarkConfirmed", query, args)
}

func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrStateChanged
	}

	return nil
}

// jsonArg передаёт JSON текстом: []byte драйвер отправил бы как bytea
func jsonArg(payload []byte) interface{} {
	if payload == nil {
		return nil
	}
	return string(payload)
}

func statesToStrings(states []domain.SessionState) []string {
	result := make([]string, len(states))
	for i, s := range states {
		result[i] = string(s)
	}
	return result
}
