package form

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий форм, привязанных к типам бронирования, и заявок по ним
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория форм
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListLinkedFormIDs ID форм, привязанных к типу бронирования
func (r *Repository) ListLinkedFormIDs(ctx context.Context, bookingTypeID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("form_id").
		From("booking_type_forms").
		Where(squirrel.Eq{"booking_type_id": bookingTypeID}).
		OrderBy("form_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinkedFormIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinkedFormIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListLinkedFormIDs - scan row: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLinkedFormIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// FormExists проверяет, что форма принадлежит арендатору
func (r *Repository) FormExists(ctx context.Context, tenantID, formID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("forms").
		Where(squirrel.Eq{"id": formID, "tenant_id": tenantID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: FormExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: FormExists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// LinkForm привязывает форму к типу бронирования, повторная привязка игнорируется
func (r *Repository) LinkForm(ctx context.Context, bookingTypeID, formID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_type_forms").
		Columns("booking_type_id", "form_id").
		Values(bookingTypeID, formID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LinkForm - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LinkForm - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// CreateSubmission создает заявку-заглушку по форме для нового бронирования
func (r *Repository) CreateSubmission(ctx context.Context, sub *domain.FormSubmission) (*domain.FormSubmission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := sub.Status
	if status == "" {
		status = domain.FormSubmissionPending
	}

	query, args, err := psqlbuilder.Insert("form_submissions").
		Columns("tenant_id", "form_id", "booking_id", "contact_id", "status").
		Values(sub.TenantID, sub.FormID, sub.BookingID, sub.ContactID, status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSubmission - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sub.ID, &sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSubmission - execute insert: %w", ErrExecQuery, err)
	}
	sub.Status = status

	return sub, nil
}
