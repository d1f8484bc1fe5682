package contact

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

const sqlStateUniqueViolation = "23505"

// Repository репозиторий контактов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория контактов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает контакт арендатора по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Contact, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"tenant_id": tenantID, "id": id})
}

// GetByEmail ищет контакт по email без учёта регистра
func (r *Repository) GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.Contact, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.And{
		squirrel.Eq{"tenant_id": tenantID},
		squirrel.Expr("lower(email) = lower(?)", email),
	})
}

// GetByPhone ищет контакт по телефону
func (r *Repository) GetByPhone(ctx context.Context, tenantID int64, phone string) (*domain.Contact, error) {
	return r.getOne(ctx, "GetByPhone", squirrel.Eq{"tenant_id": tenantID, "phone": phone})
}

// Create создает контакт
func (r *Repository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contacts").
		Columns("tenant_id", "name", "email", "phone").
		Values(contact.TenantID, contact.Name, contact.Email, contact.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&contact.ID, &contact.CreatedAt)
	if txmanager.HasSQLState(err, sqlStateUniqueViolation) {
		return nil, fmt.Errorf("%w: Create - tenant=%d: %w", ErrDuplicateContact, contact.TenantID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return contact, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "email", "phone", "created_at").
		From("contacts").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		contact domain.Contact
		email   sql.NullString
		phone   sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contact.ID,
		&contact.TenantID,
		&contact.Name,
		&email,
		&phone,
		&contact.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan contact: %w", ErrScanRow, op, err)
	}

	if email.Valid {
		contact.Email = &email.String
	}
	if phone.Valid {
		contact.Phone = &phone.String
	}

	return &contact, nil
}
