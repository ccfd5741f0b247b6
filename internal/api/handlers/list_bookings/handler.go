package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidView = "некорректное представление, ожидается upcoming, past, cancelled или all"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/bookings
// Query params: view (upcoming|past|cancelled|all), eventId, date (YYYY-MM-DD) - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	view, ok := domain.ParseBookingView(r.URL.Query().Get("view"))
	if !ok {
		h.logger.Warn("GET /bookings - Invalid view: %q", r.URL.Query().Get("view"))
		handlers.RespondBadRequest(w, msgInvalidView)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceReq := &models.ListBookingsRequest{
		View:          view,
		EventConfigID: handlers.QueryString(r, "eventId"),
		Date:          date,
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: view=%s, error=%v", view, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: view=%s, count=%d", view, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
