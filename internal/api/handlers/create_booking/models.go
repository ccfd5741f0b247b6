package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AttendeeRequest участник бронирования
type AttendeeRequest struct {
	Name      string            `json:"name" validate:"required"`
	Email     string            `json:"email" validate:"required,email"`
	Timezone  string            `json:"timezone,omitempty"`
	Responses map[string]string `json:"responses,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventConfigID  string            `json:"eventId" validate:"required"`
	Date           string            `json:"date" validate:"required"`      // "2025-10-15"
	StartTime      string            `json:"startTime" validate:"required"` // "10:00"
	Attendees      []AttendeeRequest `json:"attendees" validate:"required,min=1,dive"`
	Notes          string            `json:"notes,omitempty"`
	AllowDuplicate bool              `json:"allowDuplicate,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                string            `json:"id"`
	EventConfigID     string            `json:"eventId"`
	Date              string            `json:"date"`
	StartTime         string            `json:"startTime"`
	EndTime           string            `json:"endTime"`
	Timezone          string            `json:"timezone"`
	Status            string            `json:"status"`
	Attendees         []AttendeeRequest `json:"attendees"`
	Notes             *string           `json:"notes,omitempty"`
	RecurrenceGroupID *string           `json:"recurrenceGroupId,omitempty"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}

// ToDomainAttendees конвертирует участников запроса в domain модели
func ToDomainAttendees(in []AttendeeRequest) []domain.Attendee {
	out := make([]domain.Attendee, len(in))
	for i, a := range in {
		out[i] = domain.Attendee{
			Name:      a.Name,
			Email:     a.Email,
			Timezone:  a.Timezone,
			Responses: a.Responses,
		}
	}
	return out
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := calendar.ParseISODate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		EventConfigID:  r.EventConfigID,
		Date:           date,
		StartTime:      startTime,
		Attendees:      ToDomainAttendees(r.Attendees),
		Notes:          r.Notes,
		AllowDuplicate: r.AllowDuplicate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                resp.ID,
		EventConfigID:     resp.EventConfigID,
		Date:              calendar.FormatISODate(resp.Date),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		Timezone:          resp.Timezone,
		Status:            string(resp.Status),
		Attendees:         make([]AttendeeRequest, len(resp.Attendees)),
		RecurrenceGroupID: resp.RecurrenceGroupID,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
	for i, a := range resp.Attendees {
		out.Attendees[i] = AttendeeRequest{
			Name:      a.Name,
			Email:     a.Email,
			Timezone:  a.Timezone,
			Responses: a.Responses,
		}
	}
	if resp.Notes != "" {
		notes := resp.Notes
		out.Notes = &notes
	}
	return out
}
