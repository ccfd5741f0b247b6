package get_booking_ics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/ics"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookings struct {
	booking *domain.Booking
	err     error
}

func (f fakeBookings) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return f.booking, f.err
}

type fakeEvents struct {
	cfg *domain.EventConfig
	err error
}

func (f fakeEvents) Get(ctx context.Context, id string) (*domain.EventConfig, error) {
	return f.cfg, f.err
}

func fixtures() (*domain.Booking, *domain.EventConfig) {
	b := &domain.Booking{
		ID:            "b-1",
		EventConfigID: "evt-1",
		Date:          time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeString("10:00"),
		EndTime:       types.MustTimeString("10:30"),
		Timezone:      "UTC",
		Status:        domain.StatusConfirmed,
		Attendees:     []domain.Attendee{{Name: "Ann", Email: "ann@example.com"}},
	}
	cfg := &domain.EventConfig{ID: "evt-1", Name: "Demo", Timezone: "UTC", DurationMinutes: 30}
	return b, cfg
}

func newEncoder() *ics.Encoder {
	enc := ics.NewEncoder("SMC", "scheduling.test")
	enc.Clock = func() time.Time { return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC) }
	return enc
}

func get(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1/ics", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ExportsCalendar(t *testing.T) {
	b, cfg := fixtures()
	h := NewHandler(fakeBookings{booking: b}, fakeEvents{cfg: cfg}, newEncoder(), logger.NewNop())

	rec := get(h)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="booking-b-1.ics"`, rec.Header().Get("Content-Disposition"))

	cal, err := ical.ParseCalendar(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)
	assert.Equal(t, "b-1@scheduling.test", cal.Events()[0].Id())
}

func TestHandle_Errors(t *testing.T) {
	b, cfg := fixtures()

	tests := []struct {
		name     string
		bookings fakeBookings
		events   fakeEvents
		code     int
	}{
		{name: "booking not found", bookings: fakeBookings{err: bookings.ErrBookingNotFound}, code: http.StatusNotFound},
		{name: "booking internal", bookings: fakeBookings{err: bookings.ErrInternal}, code: http.StatusInternalServerError},
		{name: "event not found", bookings: fakeBookings{booking: b}, events: fakeEvents{err: events.ErrEventNotFound}, code: http.StatusNotFound},
		{name: "event internal", bookings: fakeBookings{booking: b}, events: fakeEvents{err: events.ErrInternal}, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.events.err == nil {
				tt.events.cfg = cfg
			}
			rec := get(NewHandler(tt.bookings, tt.events, newEncoder(), logger.NewNop()))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
