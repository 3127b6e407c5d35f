package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий каталога салона: салон и настройки, услуги, категории,
// сотрудники, их навыки, рабочие часы и отпуска
type Repository struct {
	db              DBExecutor
	defaultTimezone string // подставляется салонам без часового пояса
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor, defaultTimezone string) *Repository {
	return &Repository{db: db, defaultTimezone: defaultTimezone}
}

// GetSalon получает салон вместе с настройками
// Если строки настроек нет, применяются значения по умолчанию
func (r *Repository) GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.timezone",
		"ss.work_start_hour",
		"ss.work_end_hour",
		"ss.slot_interval_minutes",
		"ss.min_booking_notice_minutes",
	).
		From("salons s").
		LeftJoin("salon_settings ss ON ss.salon_id = s.id").
		Where(squirrel.Eq{"s.id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - build select query: %v", ErrBuildQuery, err)
	}

	var salon domain.Salon
	var timezone sql.NullString
	var startHour, endHour, interval, notice sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&salon.ID,
		&salon.Name,
		&timezone,
		&startHour,
		&endHour,
		&interval,
		&notice,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - scan salon: %w", ErrScanRow, err)
	}

	salon.Timezone = timezone.String
	if salon.Timezone == "" {
		salon.Timezone = r.defaultTimezone
	}
	salon.Settings = domain.DefaultSalonSettings()
	if startHour.Valid {
		salon.Settings.WorkStartHour = int(startHour.Int64)
	}
	if endHour.Valid {
		salon.Settings.WorkEndHour = int(endHour.Int64)
	}
	if interval.Valid && interval.Int64 > 0 {
		salon.Settings.SlotIntervalMinutes = int(interval.Int64)
	}
	if notice.Valid {
		salon.Settings.MinBookingNoticeMinutes = int(notice.Int64)
	}

	return &salon, nil
}

// ListServices получает все услуги салона, включая неактивные
// Неактивные нужны для учёта вместимости категории по уже существующим записям
func (r *Repository) ListServices(ctx context.Context, salonID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"duration_minutes",
		"price",
		"category_id",
		"buffer_override",
		"capacity_override",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		var categoryID, bufferOverride, capacityOverride sql.NullInt64

		if err := rows.Scan(
			&s.ID,
			&s.SalonID,
			&s.Name,
			&s.DurationMinutes,
			&s.Price,
			&categoryID,
			&bufferOverride,
			&capacityOverride,
			&s.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}

		s.CategoryID = nullInt64(categoryID)
		s.BufferOverride = nullInt(bufferOverride)
		s.CapacityOverride = nullInt(capacityOverride)
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// ListCategories получает категории услуг салона
func (r *Repository) ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"sequential_required",
		"buffer_minutes",
		"capacity",
	).
		From("categories").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		var buffer, capacity sql.NullInt64

		if err := rows.Scan(&c.ID, &c.SalonID, &c.Name, &c.SequentialRequired, &buffer, &capacity); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %v", ErrScanRow, err)
		}

		c.BufferMinutes = nullInt(buffer)
		c.Capacity = nullInt(capacity)
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %w", ErrScanRow, err)
	}

	return categories, nil
}

// ListStaffServices получает активные навыки активных сотрудников салона для указанных услуг
// Пустой serviceIDs означает все услуги салона
func (r *Repository) ListStaffServices(ctx context.Context, salonID int64, serviceIDs []int64) ([]*domain.StaffService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"ss.staff_id",
		"ss.service_id",
		"ss.duration_override",
		"ss.price_override",
		"ss.is_active",
	).
		From("staff_services ss").
		Join("staff st ON st.id = ss.staff_id").
		Where(squirrel.Eq{"st.salon_id": salonID}).
		Where(squirrel.Eq{"st.is_active": true}).
		Where(squirrel.Eq{"ss.is_active": true}).
		OrderBy("ss.staff_id ASC", "ss.service_id ASC")

	if len(serviceIDs) > 0 {
		selectBuilder = selectBuilder.Where("ss.service_id = ANY(?)", pq.Array(serviceIDs))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.StaffService, 0)
	for rows.Next() {
		var ss domain.StaffService
		var durationOverride sql.NullInt64
		var priceOverride decimal.NullDecimal

		if err := rows.Scan(&ss.StaffID, &ss.ServiceID, &durationOverride, &priceOverride, &ss.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListStaffServices - scan row: %v", ErrScanRow, err)
		}

		ss.DurationOverride = nullInt(durationOverride)
		if priceOverride.Valid {
			price := priceOverride.Decimal
			ss.PriceOverride = &price
		}
		result = append(result, &ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffServices - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ListStaff получает активных сотрудников салона
func (r *Repository) ListStaff(ctx context.Context, salonID int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "is_active").
		From("staff").
		Where(squirrel.Eq{"salon_id": salonID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		var st domain.Staff
		if err := rows.Scan(&st.ID, &st.SalonID, &st.Name, &st.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows error: %w", ErrScanRow, err)
	}

	return staff, nil
}

// ListWorkingHours получает недельное расписание сотрудников
func (r *Repository) ListWorkingHours(ctx context.Context, staffIDs []int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "day_of_week", "start_hour", "end_hour").
		From("working_hours").
		Where("staff_id = ANY(?)", pq.Array(staffIDs)).
		OrderBy("staff_id ASC", "day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		var wh domain.WorkingHours
		if err := rows.Scan(&wh.StaffID, &wh.DayOfWeek, &wh.StartHour, &wh.EndHour); err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// ListLeaves получает отпуска сотрудников, пересекающиеся с периодом [from, to]
func (r *Repository) ListLeaves(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Leave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_date", "end_date").
		From("staff_leaves").
		Where("staff_id = ANY(?)", pq.Array(staffIDs)).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("staff_id ASC", "start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLeaves - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLeaves - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves := make([]*domain.Leave, 0)
	for rows.Next() {
		var l domain.Leave
		if err := rows.Scan(&l.ID, &l.StaffID, &l.StartDate, &l.EndDate); err != nil {
			return nil, fmt.Errorf("%w: ListLeaves - scan row: %v", ErrScanRow, err)
		}
		// DATE приходит как полночь UTC, календарная дата сохраняется
		l.StartDate = l.StartDate.UTC()
		l.EndDate = l.EndDate.UTC()
		leaves = append(leaves, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLeaves - rows error: %w", ErrScanRow, err)
	}

	return leaves, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
