package update_booking_status

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
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: req.BookingID, Status: req.Status}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/10/status", strings.NewReader(body))
	req = req.WithContext(middleware.WithTenantID(req.Context(), 3))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.got.TenantID)
	assert.Equal(t, int64(10), svc.got.BookingID)
	assert.Equal(t, "confirmed", svc.got.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{err: bookings.ErrInvalidTransition, status: http.StatusConflict},
		{err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := serve(&fakeService{err: tt.err}, `{"status":"completed"}`)
		assert.Equal(t, tt.status, w.Code, "err %v", tt.err)
	}
}
