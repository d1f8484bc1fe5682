package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/booking-types/{bookingTypeId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		BookingTypeID:   2,
		Date:            time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Timezone:        "UTC",
		DurationMinutes: 30,
		Slots:           []domain.Slot{{Start: start, End: start.Add(30 * time.Minute)}},
	}}

	w := serve(uc, "/booking-types/2/available-slots?date=2024-06-03")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), uc.got.BookingTypeID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-03", body.Date)
	require.Len(t, body.Slots, 1)
	assert.True(t, start.Equal(body.Slots[0].Start))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad id", target: "/booking-types/x/available-slots?date=2024-06-03", status: http.StatusBadRequest},
		{name: "missing date", target: "/booking-types/2/available-slots", status: http.StatusBadRequest},
		{name: "bad date", target: "/booking-types/2/available-slots?date=03.06.2024", status: http.StatusBadRequest},
		{name: "not found", target: "/booking-types/2/available-slots?date=2024-06-03", err: getAvailableSlots.ErrBookingTypeNotFound, status: http.StatusNotFound},
		{name: "inactive", target: "/booking-types/2/available-slots?date=2024-06-03", err: getAvailableSlots.ErrBookingTypeInactive, status: http.StatusConflict},
		{name: "internal", target: "/booking-types/2/available-slots?date=2024-06-03", err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
