package get_available_dates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/booking-types/{bookingTypeId}/available-dates", NewHandler(uc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableDates.Response{
		BookingTypeID: 2,
		Timezone:      "Europe/Moscow",
		HorizonDays:   7,
		Dates: []domain.AvailableDate{
			{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), DayOfWeek: time.Monday},
		},
	}}

	w := serve(uc, "/booking-types/2/available-dates?horizonDays=7")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got.HorizonDays)
	assert.Equal(t, 7, *uc.got.HorizonDays)
	assert.JSONEq(t, `{
		"bookingTypeId": 2,
		"timezone": "Europe/Moscow",
		"horizonDays": 7,
		"dates": [{"date": "2024-06-03", "dayOfWeek": 1}]
	}`, w.Body.String())
}

func TestHandle_DefaultHorizon(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableDates.Response{BookingTypeID: 2, Dates: []domain.AvailableDate{}}}

	w := serve(uc, "/booking-types/2/available-dates")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.HorizonDays)
	assert.Contains(t, w.Body.String(), `"dates":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"invalid id", "/booking-types/x/available-dates", nil, http.StatusBadRequest},
		{"invalid horizon", "/booking-types/2/available-dates?horizonDays=week", nil, http.StatusBadRequest},
		{"horizon out of range", "/booking-types/2/available-dates?horizonDays=900", getAvailableDates.ErrInvalidHorizon, http.StatusBadRequest},
		{"not found", "/booking-types/2/available-dates", getAvailableDates.ErrBookingTypeNotFound, http.StatusNotFound},
		{"inactive", "/booking-types/2/available-dates", getAvailableDates.ErrBookingTypeInactive, http.StatusConflict},
		{"internal", "/booking-types/2/available-dates", getAvailableDates.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
