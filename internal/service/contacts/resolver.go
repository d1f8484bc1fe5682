package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	contactRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/contact"
)

// Resolver находит или создаёт контакт клиента в рамках арендатора
// Работает в транзакции вызывающего кода, если она есть в контексте
type Resolver struct {
	contactRepo ContactRepository
	logger      Logger
}

func NewResolver(contactRepo ContactRepository, logger Logger) *Resolver {
	return &Resolver{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Resolve ищет контакт по email, затем по телефону, иначе создаёт новый
// created = true, если контакт был создан этим вызовом
func (r *Resolver) Resolve(ctx context.Context, tenantID int64, customer domain.Customer) (*domain.Contact, bool, error) {
	email := customer.NormalizedEmail()
	phone := customer.NormalizedPhone()

	if email == nil && phone == nil {
		return nil, false, ErrInvalidCustomer
	}

	if email != nil {
		contact, err := r.contactRepo.GetByEmail(ctx, tenantID, *email)
		if err == nil {
			r.logger.Info("ResolveContact: tenant=%d matched contact id=%d by email", tenantID, contact.ID)
			return contact, false, nil
		}
		if !errors.Is(err, contactRepo.ErrContactNotFound) {
			r.logger.Error("ResolveContact: lookup by email failed for tenant=%d: %v", tenantID, err)
			return nil, false, fmt.Errorf("%w: Resolve - get by email: %w", ErrInternal, err)
		}
	}

	if phone != nil {
		contact, err := r.contactRepo.GetByPhone(ctx, tenantID, *phone)
		if err == nil {
			r.logger.Info("ResolveContact: tenant=%d matched contact id=%d by phone", tenantID, contact.ID)
			return contact, false, nil
		}
		if !errors.Is(err, contactRepo.ErrContactNotFound) {
			r.logger.Error("ResolveContact: lookup by phone failed for tenant=%d: %v", tenantID, err)
			return nil, false, fmt.Errorf("%w: Resolve - get by phone: %w", ErrInternal, err)
		}
	}

	created, err := r.contactRepo.Create(ctx, &domain.Contact{
		TenantID: tenantID,
		Name:     strings.TrimSpace(customer.Name),
		Email:    email,
		Phone:    phone,
	})
	if err != nil {
		r.logger.Error("ResolveContact: failed to create contact for tenant=%d: %v", tenantID, err)
		return nil, false, fmt.Errorf("%w: Resolve - create: %w", ErrInternal, err)
	}

	r.logger.Info("ResolveContact: tenant=%d created contact id=%d", tenantID, created.ID)
	return created, true, nil
}
