package booking_types

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes/models"
)

const (
	msgInvalidBookingTypeID = "некорректный ID типа бронирования"
	msgInvalidRuleID        = "некорректный ID правила"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingTenantID      = "отсутствует ID арендатора"
	msgBookingTypeNotFound  = "тип бронирования не найден"
	msgRuleNotFound         = "правило доступности не найдено"
	msgFormNotFound         = "форма не найдена"
	msgHasBookings          = "на тип бронирования ссылаются бронирования"
)

// Handler управление типами бронирования, их правилами и формами
type Handler struct {
	service BookingTypeService
	logger  Logger
}

func NewHandler(service BookingTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/booking-types
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-types"

	tenantID, ok := h.tenant(w, r, op)
	if !ok {
		return
	}

	var req models.CreateBookingTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Booking type created successfully: id=%d, tenant_id=%d", op, result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/booking-types
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "GET /booking-types"

	tenantID, ok := h.tenant(w, r, op)
	if !ok {
		return
	}

	result, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Booking types retrieved successfully: tenant_id=%d, count=%d", op, tenantID, len(result.BookingTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/booking-types/{bookingTypeId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /booking-types/{id}"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), tenantID, typeID)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Booking type retrieved successfully: id=%d", op, typeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/booking-types/{bookingTypeId}
// Поля опциональны, обновляются только переданные
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /booking-types/{id}"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	var req models.UpdateBookingTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.BookingTypeID = typeID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Booking type updated successfully: id=%d", op, typeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/booking-types/{bookingTypeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /booking-types/{id}"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, typeID); err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Booking type deleted successfully: id=%d", op, typeID)
	w.WriteHeader(http.StatusNoContent)
}

// AddRule POST /api/v1/booking-types/{bookingTypeId}/rules
func (h *Handler) AddRule(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-types/{id}/rules"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	var req models.AddRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.BookingTypeID = typeID

	result, err := h.service.AddRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Rule added successfully: booking_type_id=%d, rule_id=%d", op, typeID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListRules GET /api/v1/booking-types/{bookingTypeId}/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	const op = "GET /booking-types/{id}/rules"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	rules, err := h.service.ListRules(r.Context(), tenantID, typeID)
	if err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RuleListResponse{Rules: rules})
}

// DeleteRule DELETE /api/v1/booking-types/{bookingTypeId}/rules/{ruleId}
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /booking-types/{id}/rules/{ruleId}"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("%s - Invalid rule ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.DeleteRule(r.Context(), tenantID, typeID, ruleID); err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Rule deleted successfully: booking_type_id=%d, rule_id=%d", op, typeID, ruleID)
	w.WriteHeader(http.StatusNoContent)
}

// LinkForm POST /api/v1/booking-types/{bookingTypeId}/forms
func (h *Handler) LinkForm(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-types/{id}/forms"

	tenantID, typeID, ok := h.tenantAndType(w, r, op)
	if !ok {
		return
	}

	var req LinkFormRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.FormID <= 0 {
		h.logger.Warn("%s - Invalid request body: form_id=%d, error=%v", op, req.FormID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.LinkForm(r.Context(), tenantID, typeID, req.FormID); err != nil {
		h.respondError(w, op, tenantID, err)
		return
	}

	h.logger.Info("%s - Form linked successfully: booking_type_id=%d, form_id=%d", op, typeID, req.FormID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) tenant(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", op)
		handlers.RespondUnauthorized(w, msgMissingTenantID)
	}
	return tenantID, ok
}

func (h *Handler) tenantAndType(w http.ResponseWriter, r *http.Request, op string) (int64, int64, bool) {
	typeID, err := handlers.PathInt64(r, "bookingTypeId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking type ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingTypeID)
		return 0, 0, false
	}

	tenantID, ok := h.tenant(w, r, op)
	if !ok {
		return 0, 0, false
	}
	return tenantID, typeID, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, tenantID int64, err error) {
	switch {
	case errors.Is(err, bookingtypes.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: tenant_id=%d, error=%v", op, tenantID, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, bookingtypes.ErrBookingTypeNotFound):
		h.logger.Warn("%s - Booking type not found: tenant_id=%d", op, tenantID)
		handlers.RespondNotFound(w, msgBookingTypeNotFound)

	case errors.Is(err, bookingtypes.ErrRuleNotFound):
		h.logger.Warn("%s - Rule not found: tenant_id=%d", op, tenantID)
		handlers.RespondNotFound(w, msgRuleNotFound)

	case errors.Is(err, bookingtypes.ErrFormNotFound):
		h.logger.Warn("%s - Form not found: tenant_id=%d", op, tenantID)
		handlers.RespondNotFound(w, msgFormNotFound)

	case errors.Is(err, bookingtypes.ErrHasBookings):
		h.logger.Warn("%s - Booking type has bookings: tenant_id=%d", op, tenantID)
		handlers.RespondConflict(w, msgHasBookings)

	default:
		h.logger.Error("%s - Internal error: tenant_id=%d, error=%v", op, tenantID, err)
		handlers.RespondInternalError(w)
	}
}
