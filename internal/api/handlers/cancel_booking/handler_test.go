package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	gotID     string
	gotReason string
	promoted  *models.PromotedEntry
	err       error
}

func (f *fakeService) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	f.gotID = id
	f.gotReason = req.Reason
	if f.err != nil {
		return nil, f.err
	}
	return &models.CancelBookingResponse{
		Booking:  models.BookingResponse{ID: id, Status: "cancelled"},
		Promoted: f.promoted,
	}, nil
}

func cancel(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_WithPromotion(t *testing.T) {
	svc := &fakeService{promoted: &models.PromotedEntry{ID: "w-1", Email: "bob@example.com", Status: "notified"}}
	h := NewHandler(svc, logger.NewNop())

	rec := cancel(h, "b-1", `{"reason":"sick"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b-1", svc.gotID)
	assert.Equal(t, "sick", svc.gotReason)

	var resp models.CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Booking.Status)
	require.NotNil(t, resp.Promoted)
	assert.Equal(t, "w-1", resp.Promoted.ID)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := cancel(NewHandler(svc, logger.NewNop()), "b-2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.gotReason)
	assert.NotContains(t, rec.Body.String(), "promoted")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "bad json", body: "{", code: http.StatusBadRequest},
		{name: "reason too long", body: `{"reason":"` + strings.Repeat("x", 501) + `"}`, code: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "invalid transition", err: bookings.ErrInvalidTransition, code: http.StatusConflict},
		{name: "invalid input", err: bookings.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "internal", err: bookings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cancel(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), "b-1", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
