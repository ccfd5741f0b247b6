package create_recurring_bookings

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Frequency частота повторения серии
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Request модель запроса на создание серии бронирований.
// Даты задаются одним из способов: Frequency+Count, RRule или явным списком Dates
type Request struct {
	EventConfigID string
	StartDate     time.Time        // Дата первого повторения
	StartTime     types.TimeString // Время начала в часовом поясе события
	Attendees     []domain.Attendee
	Notes         string

	Frequency Frequency // weekly | biweekly | monthly
	Count     int       // Количество повторений (2..52)

	// RRule правило в формате RFC 5545 (например "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=6").
	// DTSTART берётся из StartDate
	RRule string

	Dates []time.Time // Явный список дат

	AllowDuplicate bool
}

// Response модель ответа с созданной серией
type Response struct {
	RecurrenceGroupID string
	Bookings          []*domain.Booking
}
