package get_booking_ics

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
)

const (
	msgNotFound      = "бронирование не найдено"
	msgEventNotFound = "событие не найдено"
)

type Handler struct {
	bookings BookingService
	events   EventService
	encoder  Encoder
	logger   Logger
}

func NewHandler(bookings BookingService, events EventService, encoder Encoder, logger Logger) *Handler {
	return &Handler{
		bookings: bookings,
		events:   events,
		encoder:  encoder,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.bookings.Get(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id}/ics - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id}/ics - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	cfg, err := h.events.Get(r.Context(), booking.EventConfigID)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			h.logger.Warn("GET /bookings/{id}/ics - Event not found: booking_id=%s, event_id=%s", bookingID, booking.EventConfigID)
			handlers.RespondNotFound(w, msgEventNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id}/ics - Failed to get event: event_id=%s, error=%v", booking.EventConfigID, err)
		handlers.RespondInternalError(w)
		return
	}

	body := h.encoder.Generate(booking, cfg)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "booking-"+bookingID+".ics"))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("GET /bookings/{id}/ics - Failed to write response: booking_id=%s, error=%v", bookingID, err)
		return
	}

	h.logger.Info("GET /bookings/{id}/ics - Calendar exported: booking_id=%s", bookingID)
}
