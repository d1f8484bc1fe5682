package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	sqlStateUniqueViolation    = "23505"
	sqlStateExclusionViolation = "23P01"
)

var bookingColumns = []string{
	"id",
	"tenant_id",
	"contact_id",
	"booking_type_id",
	"reference_code",
	"start_time",
	"end_time",
	"status",
	"notes",
	"metadata",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// StatusTransition условная смена статуса: строка обновляется, только если текущий статус равен From
type StatusTransition struct {
	TenantID    int64
	BookingID   int64
	From        domain.BookingStatus
	To          domain.BookingStatus
	CancelledAt *time.Time
	Metadata    map[string]string // сливается с текущими метаданными
}

// Create создает новое бронирование
// Пересечение с активным бронированием того же типа (ограничение EXCLUDE) возвращает ErrSlotConflict,
// повтор кода бронирования возвращает ErrDuplicateReferenceCode
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := encodeMetadata(booking.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"contact_id",
			"booking_type_id",
			"reference_code",
			"start_time",
			"end_time",
			"status",
			"notes",
			"metadata",
		).
		Values(
			booking.TenantID,
			booking.ContactID,
			booking.BookingTypeID,
			booking.ReferenceCode,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
			metadata,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	switch {
	case err == nil:
		return booking, nil
	case txmanager.HasSQLState(err, sqlStateExclusionViolation):
		return nil, fmt.Errorf("%w: Create - type=%d start=%s: %w", ErrSlotConflict, booking.BookingTypeID, booking.StartTime, err)
	case txmanager.HasSQLState(err, sqlStateUniqueViolation):
		return nil, fmt.Errorf("%w: Create - code=%s: %w", ErrDuplicateReferenceCode, booking.ReferenceCode, err)
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
}

// GetByID получает бронирование арендатора по ID
// Внутри транзакции на запись строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveInRange возвращает активные бронирования типа, пересекающие [from, to)
// Условие совпадает с domain.Overlaps: start_time < to AND end_time > from.
// Внутри транзакции на запись найденные строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveInRange(ctx context.Context, bookingTypeID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_type_id": bookingTypeID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List получает бронирования арендатора с фильтрацией
// Без Status и IncludeInactive возвращаются только активные бронирования
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.BookingTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type_id": *filter.BookingTypeID})
	}
	if filter.ContactID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"contact_id": *filter.ContactID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LockBookingType берёт транзакционную advisory-блокировку на тип бронирования
// Сериализует все записи интервалов одного типа до конца транзакции
func (r *Repository) LockBookingType(ctx context.Context, bookingTypeID int64) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return fmt.Errorf("%w: LockBookingType - advisory lock requires a transaction", ErrTransaction)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", bookingTypeID); err != nil {
		return fmt.Errorf("%w: LockBookingType - type=%d: %w", ErrExecQuery, bookingTypeID, err)
	}

	return nil
}

// LockBookingTypeOf берёт advisory-блокировку на тип бронирования по id бронирования
// Первый запрос транзакции переноса: тип заранее неизвестен, поэтому чтение и блокировка идут одним выражением
func (r *Repository) LockBookingTypeOf(ctx context.Context, tenantID, bookingID int64) (int64, error) {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return 0, fmt.Errorf("%w: LockBookingTypeOf - advisory lock requires a transaction", ErrTransaction)
	}

	query, args, err := psqlbuilder.Select("b.booking_type_id").
		From("bookings b").
		JoinClause("CROSS JOIN LATERAL pg_advisory_xact_lock(b.booking_type_id)").
		Where(squirrel.Eq{"b.id": bookingID, "b.tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: LockBookingTypeOf - build select query: %v", ErrBuildQuery, err)
	}

	var bookingTypeID int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&bookingTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookingNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: LockBookingTypeOf - booking=%d: %w", ErrExecQuery, bookingID, err)
	}

	return bookingTypeID, nil
}

// ReferenceCodeExists проверяет, занят ли код бронирования
func (r *Repository) ReferenceCodeExists(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"reference_code": code}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ReferenceCodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ReferenceCodeExists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// UpdateInterval переносит бронирование на новый интервал
func (r *Repository) UpdateInterval(ctx context.Context, tenantID, id int64, start, end time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return booking, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrBookingNotFound
	case txmanager.HasSQLState(err, sqlStateExclusionViolation):
		return nil, fmt.Errorf("%w: UpdateInterval - id=%d: %w", ErrSlotConflict, id, err)
	default:
		return nil, fmt.Errorf("%w: UpdateInterval - execute update: %w", ErrExecQuery, err)
	}
}

// TransitionStatus выполняет условный UPDATE ... WHERE status = From
// Если ни одна строка не обновлена, возвращает ErrStatusChanged
func (r *Repository) TransitionStatus(ctx context.Context, t StatusTransition) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", t.To).
		Set("updated_at", squirrel.Expr("NOW()"))

	if t.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *t.CancelledAt)
	}
	if len(t.Metadata) > 0 {
		patch, err := encodeMetadata(t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: TransitionStatus - encode metadata: %v", ErrBuildQuery, err)
		}
		updateBuilder = updateBuilder.Set("metadata", squirrel.Expr("metadata || ?::jsonb", patch))
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": t.BookingID, "tenant_id": t.TenantID, "status": t.From}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		notes       sql.NullString
		metadata    []byte
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.ContactID,
		&booking.BookingTypeID,
		&booking.ReferenceCode,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&notes,
		&metadata,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	if booking.Metadata, err = decodeMetadata(metadata); err != nil {
		return nil, err
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func columnList() string {
	return strings.Join(bookingColumns, ", ")
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func encodeMetadata(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMetadata(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
