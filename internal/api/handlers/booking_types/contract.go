package booking_types

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes/models"
)

type BookingTypeService interface {
	Create(ctx context.Context, req *models.CreateBookingTypeRequest) (*models.BookingTypeResponse, error)
	GetByID(ctx context.Context, tenantID, id int64) (*models.BookingTypeResponse, error)
	List(ctx context.Context, tenantID int64) (*models.BookingTypeListResponse, error)
	Update(ctx context.Context, req *models.UpdateBookingTypeRequest) (*models.BookingTypeResponse, error)
	Delete(ctx context.Context, tenantID, id int64) error
	AddRule(ctx context.Context, req *models.AddRuleRequest) (*models.RuleResponse, error)
	DeleteRule(ctx context.Context, tenantID, bookingTypeID, ruleID int64) error
	ListRules(ctx context.Context, tenantID, bookingTypeID int64) ([]models.RuleResponse, error)
	LinkForm(ctx context.Context, tenantID, bookingTypeID, formID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
