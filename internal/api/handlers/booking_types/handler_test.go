package booking_types

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	created  *models.CreateBookingTypeRequest
	updated  *models.UpdateBookingTypeRequest
	rule     *models.AddRuleRequest
	linkedTo int64
	formID   int64
	err      error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateBookingTypeRequest) (*models.BookingTypeResponse, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingTypeResponse{ID: 1, TenantID: req.TenantID, Name: req.Name, DurationMinutes: req.DurationMinutes}, nil
}

func (f *fakeService) GetByID(_ context.Context, tenantID, id int64) (*models.BookingTypeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingTypeResponse{ID: id, TenantID: tenantID}, nil
}

func (f *fakeService) List(_ context.Context, tenantID int64) (*models.BookingTypeListResponse, error) {
	return &models.BookingTypeListResponse{BookingTypes: []models.BookingTypeResponse{{ID: 1, TenantID: tenantID}}}, f.err
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateBookingTypeRequest) (*models.BookingTypeResponse, error) {
	f.updated = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingTypeResponse{ID: req.BookingTypeID}, nil
}

func (f *fakeService) Delete(context.Context, int64, int64) error {
	return f.err
}

func (f *fakeService) AddRule(_ context.Context, req *models.AddRuleRequest) (*models.RuleResponse, error) {
	f.rule = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RuleResponse{ID: 5, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (f *fakeService) DeleteRule(context.Context, int64, int64, int64) error {
	return f.err
}

func (f *fakeService) ListRules(context.Context, int64, int64) ([]models.RuleResponse, error) {
	return []models.RuleResponse{{ID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}}, f.err
}

func (f *fakeService) LinkForm(_ context.Context, _, bookingTypeID, formID int64) error {
	f.linkedTo = bookingTypeID
	f.formID = formID
	return f.err
}

func serve(svc *fakeService, method, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/booking-types", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/booking-types", h.List).Methods(http.MethodGet)
	r.HandleFunc("/booking-types/{bookingTypeId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/booking-types/{bookingTypeId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/booking-types/{bookingTypeId}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/booking-types/{bookingTypeId}/rules", h.AddRule).Methods(http.MethodPost)
	r.HandleFunc("/booking-types/{bookingTypeId}/rules", h.ListRules).Methods(http.MethodGet)
	r.HandleFunc("/booking-types/{bookingTypeId}/rules/{ruleId}", h.DeleteRule).Methods(http.MethodDelete)
	r.HandleFunc("/booking-types/{bookingTypeId}/forms", h.LinkForm).Methods(http.MethodPost)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithTenantID(req.Context(), 7))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, http.MethodPost, "/booking-types", `{"name":"Consultation","durationMinutes":30}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), svc.created.TenantID)
	assert.Equal(t, "Consultation", svc.created.Name)
	assert.Contains(t, w.Body.String(), `"durationMinutes":30`)
}

func TestCreate_RejectsTenantInBody(t *testing.T) {
	w := serve(&fakeService{}, http.MethodPost, "/booking-types", `{"tenantId":2,"name":"x","durationMinutes":30}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_SetsPathIDs(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, http.MethodPut, "/booking-types/3", `{"isActive":false}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.updated.BookingTypeID)
	assert.Equal(t, int64(7), svc.updated.TenantID)
	require.NotNil(t, svc.updated.IsActive)
	assert.False(t, *svc.updated.IsActive)
	assert.Nil(t, svc.updated.Name)
}

func TestAddRule(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, http.MethodPost, "/booking-types/3/rules", `{"dayOfWeek":1,"startTime":"09:00","endTime":"12:00"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), svc.rule.BookingTypeID)
	assert.JSONEq(t, `{"id":5,"dayOfWeek":1,"startTime":"09:00","endTime":"12:00"}`, w.Body.String())
}

func TestListRules(t *testing.T) {
	w := serve(&fakeService{}, http.MethodGet, "/booking-types/3/rules", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rules":[{"id":5,"dayOfWeek":1,"startTime":"09:00","endTime":"12:00"}]}`, w.Body.String())
}

func TestLinkForm(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, http.MethodPost, "/booking-types/3/forms", `{"formId":9}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(3), svc.linkedTo)
	assert.Equal(t, int64(9), svc.formID)
}

func TestLinkForm_MissingFormID(t *testing.T) {
	w := serve(&fakeService{}, http.MethodPost, "/booking-types/3/forms", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		err    error
		want   int
	}{
		{"get not found", http.MethodGet, "/booking-types/3", bookingtypes.ErrBookingTypeNotFound, http.StatusNotFound},
		{"delete with bookings", http.MethodDelete, "/booking-types/3", bookingtypes.ErrHasBookings, http.StatusConflict},
		{"delete ok", http.MethodDelete, "/booking-types/3", nil, http.StatusNoContent},
		{"rule not found", http.MethodDelete, "/booking-types/3/rules/8", bookingtypes.ErrRuleNotFound, http.StatusNotFound},
		{"invalid rule id", http.MethodDelete, "/booking-types/3/rules/x", nil, http.StatusBadRequest},
		{"invalid type id", http.MethodGet, "/booking-types/0", nil, http.StatusBadRequest},
		{"internal", http.MethodGet, "/booking-types", bookingtypes.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.method, tt.target, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
