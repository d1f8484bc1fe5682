package bookingtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const sqlStateForeignKeyViolation = "23503"

// Repository репозиторий типов бронирования и их правил доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов бронирования
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тип бронирования
func (r *Repository) Create(ctx context.Context, bt *domain.BookingType) (*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_types").
		Columns("tenant_id", "name", "duration_minutes", "is_active").
		Values(bt.TenantID, bt.Name, bt.DurationMinutes, bt.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bt.ID, &bt.CreatedAt, &bt.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return bt, nil
}

// GetByID получает тип бронирования по ID
// Принадлежность арендатору проверяет вызывающий код
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "duration_minutes", "is_active", "created_at", "updated_at").
		From("booking_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var bt domain.BookingType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bt.ID,
		&bt.TenantID,
		&bt.Name,
		&bt.DurationMinutes,
		&bt.IsActive,
		&bt.CreatedAt,
		&bt.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking type: %w", ErrScanRow, err)
	}

	return &bt, nil
}

// ListByTenant получает все типы бронирования арендатора
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "duration_minutes", "is_active", "created_at", "updated_at").
		From("booking_types").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.BookingType, 0)
	for rows.Next() {
		var bt domain.BookingType
		if err := rows.Scan(&bt.ID, &bt.TenantID, &bt.Name, &bt.DurationMinutes, &bt.IsActive, &bt.CreatedAt, &bt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %w", ErrScanRow, err)
		}
		types = append(types, &bt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %w", ErrScanRow, err)
	}

	return types, nil
}

// Update обновляет имя, длительность и активность типа
// Существующие бронирования не пересчитываются
func (r *Repository) Update(ctx context.Context, bt *domain.BookingType) (*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_types").
		Set("name", bt.Name).
		Set("duration_minutes", bt.DurationMinutes).
		Set("is_active", bt.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bt.ID, "tenant_id": bt.TenantID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&bt.CreatedAt, &bt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return bt, nil
}

// HasBookings проверяет, есть ли у типа хоть одно бронирование в любом статусе
func (r *Repository) HasBookings(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"booking_type_id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasBookings - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasBookings - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// Delete удаляет тип бронирования вместе с правилами
// Если на тип ссылаются бронирования, возвращает ErrReferenced
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_types").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if txmanager.HasSQLState(err, sqlStateForeignKeyViolation) {
		return fmt.Errorf("%w: Delete - id=%d: %w", ErrReferenced, id, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingTypeNotFound
	}

	return nil
}
