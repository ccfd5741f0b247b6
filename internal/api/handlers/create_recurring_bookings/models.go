package create_recurring_bookings

import (
	"fmt"

	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateRecurringRequest HTTP request model.
// Даты задаются одним из способов: frequency+count, rrule или dates
type CreateRecurringRequest struct {
	EventConfigID  string                                 `json:"eventId" validate:"required"`
	StartDate      string                                 `json:"startDate"` // "2025-10-15"
	StartTime      string                                 `json:"startTime" validate:"required"`
	Attendees      []createBookingHandler.AttendeeRequest `json:"attendees" validate:"required,min=1,dive"`
	Notes          string                                 `json:"notes,omitempty"`
	Frequency      string                                 `json:"frequency,omitempty" validate:"omitempty,oneof=weekly biweekly monthly"`
	Count          int                                    `json:"count,omitempty"`
	RRule          string                                 `json:"rrule,omitempty"`
	Dates          []string                               `json:"dates,omitempty"`
	AllowDuplicate bool                                   `json:"allowDuplicate,omitempty"`
}

// RecurringResponse HTTP response model
type RecurringResponse struct {
	RecurrenceGroupID string                   `json:"recurrenceGroupId"`
	Bookings          []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringRequest) ToUseCaseRequest() (*createRecurring.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createRecurring.Request{
		EventConfigID:  r.EventConfigID,
		StartTime:      startTime,
		Attendees:      createBookingHandler.ToDomainAttendees(r.Attendees),
		Notes:          r.Notes,
		Frequency:      createRecurring.Frequency(r.Frequency),
		Count:          r.Count,
		RRule:          r.RRule,
		AllowDuplicate: r.AllowDuplicate,
	}

	if r.StartDate != "" {
		req.StartDate, err = calendar.ParseISODate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
	}

	for _, d := range r.Dates {
		date, err := calendar.ParseISODate(d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		req.Dates = append(req.Dates, date)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringResponse {
	return &RecurringResponse{
		RecurrenceGroupID: resp.RecurrenceGroupID,
		Bookings:          models.FromDomainBookingList(resp.Bookings).Bookings,
	}
}
