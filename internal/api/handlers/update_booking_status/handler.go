package update_booking_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

const (
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "текущий статус бронирования не допускает это действие"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleMarkNoShow PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) HandleMarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /bookings/{id}/no-show", h.service.MarkNoShow)
}

// HandleUndoNoShow DELETE /api/v1/bookings/{bookingId}/no-show
func (h *Handler) HandleUndoNoShow(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /bookings/{id}/no-show", h.service.UndoNoShow)
}

// HandleComplete PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /bookings/{id}/complete", h.service.Complete)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	action func(ctx context.Context, id string) (*models.BookingResponse, error),
) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := action(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("%s - Failed to update status: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking status updated: booking_id=%s, status=%s", route, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
