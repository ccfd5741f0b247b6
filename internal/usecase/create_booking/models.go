package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	EventConfigID string            // ID конфигурации события
	Date          time.Time         // Дата бронирования (без времени)
	StartTime     types.TimeString  // Время начала слота в часовом поясе события (например, "10:00")
	Attendees     []domain.Attendee // Участники (минимум один)
	Notes         string            // Дополнительные заметки (опционально)

	// AllowDuplicate разрешает создать бронирование, даже если у участника
	// уже есть бронирование этого события на эту дату
	AllowDuplicate bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                string
	EventConfigID     string
	Date              time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	Timezone          string
	Status            domain.BookingStatus
	Attendees         []domain.Attendee
	Notes             string
	RecurrenceGroupID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewResponse конвертирует бронирование в response
func NewResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                b.ID,
		EventConfigID:     b.EventConfigID,
		Date:              b.Date,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Timezone:          b.Timezone,
		Status:            b.Status,
		Attendees:         b.Attendees,
		Notes:             b.Notes,
		RecurrenceGroupID: b.RecurrenceGroupID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
