package get_no_show_rate

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
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

// Handle GET /api/v1/bookings/no-show-rate
// Query params: eventId (опционально, без него считается по всем событиям)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := handlers.QueryString(r, "eventId")

	result, err := h.service.NoShowRate(r.Context(), eventID)
	if err != nil {
		h.logger.Error("GET /bookings/no-show-rate - Failed to compute rate: event_id=%s, error=%v", ptr.Value(eventID), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/no-show-rate - Rate computed: event_id=%s, rate=%d, total=%d",
		ptr.Value(eventID), result.Rate, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
