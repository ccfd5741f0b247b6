package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no_show"
)

// AllStatuses lists every booking status
var AllStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
	StatusRescheduled,
	StatusCompleted,
	StatusNoShow,
}

// ParseBookingStatus converts a string into a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusRescheduled:
		switch next {
		case StatusCancelled, StatusRescheduled, StatusCompleted, StatusNoShow:
			return true
		}
		return false
	case StatusNoShow:
		return next == StatusConfirmed
	case StatusCancelled, StatusCompleted:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle operation applies
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted:
		return true
	case StatusConfirmed, StatusRescheduled, StatusNoShow:
		return false
	default:
		return false
	}
}

// Attendee is a person attending a booking
type Attendee struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Timezone  string            `json:"timezone,omitempty"`
	Responses map[string]string `json:"responses,omitempty"`
}

// Booking represents a reservation of a slot of an event configuration
type Booking struct {
	ID            string
	EventConfigID string
	Date          time.Time // calendar date, midnight UTC
	StartTime     types.TimeString
	EndTime       types.TimeString
	Timezone      string
	Status        BookingStatus
	Attendees     []Attendee
	Notes         string

	CancelReason      *string
	RescheduleReason  *string
	RecurrenceGroupID *string
	CancelledAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Occupies returns true if the booking holds its slot (every status except cancelled)
func (b *Booking) Occupies() bool {
	return !b.IsCancelled()
}

// TimeRange returns the raw [start, end) interval of the booking
func (b *Booking) TimeRange() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// HasAttendeeEmail reports whether an attendee email matches, case-insensitively
func (b *Booking) HasAttendeeEmail(email string) bool {
	needle := strings.TrimSpace(email)
	for _, a := range b.Attendees {
		if strings.EqualFold(strings.TrimSpace(a.Email), needle) {
			return true
		}
	}
	return false
}

// CountsForNoShowRate reports whether the booking enters the no-show denominator
func (b *Booking) CountsForNoShowRate() bool {
	switch b.Status {
	case StatusConfirmed, StatusCompleted, StatusNoShow:
		return true
	case StatusCancelled, StatusRescheduled:
		return false
	default:
		return false
	}
}

// Clone returns a deep copy
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	out := *b
	out.Attendees = make([]Attendee, len(b.Attendees))
	for i, a := range b.Attendees {
		out.Attendees[i] = a
		if a.Responses != nil {
			out.Attendees[i].Responses = make(map[string]string, len(a.Responses))
			for k, v := range a.Responses {
				out.Attendees[i].Responses[k] = v
			}
		}
	}
	out.CancelReason = clonePtr(b.CancelReason)
	out.RescheduleReason = clonePtr(b.RescheduleReason)
	out.RecurrenceGroupID = clonePtr(b.RecurrenceGroupID)
	out.CancelledAt = clonePtr(b.CancelledAt)
	return &out
}

// BookingView is a predefined filter of the bookings list
type BookingView string

const (
	ViewUpcoming  BookingView = "upcoming"
	ViewPast      BookingView = "past"
	ViewCancelled BookingView = "cancelled"
	ViewAll       BookingView = "all"
)

// ParseBookingView converts a string into a view; empty means all
func ParseBookingView(s string) (BookingView, bool) {
	switch BookingView(s) {
	case "":
		return ViewAll, true
	case ViewUpcoming, ViewPast, ViewCancelled, ViewAll:
		return BookingView(s), true
	}
	return "", false
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	EventConfigID   *string    // опционально
	Date            *time.Time // конкретная дата (опционально)
	Status          *BookingStatus
	IncludeInactive bool // включать ли отменённые
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
