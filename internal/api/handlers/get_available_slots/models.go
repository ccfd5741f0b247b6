package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	EventConfigID   string          `json:"eventId"`
	Timezone        string          `json:"timezone"`
	DisplayTimezone string          `json:"displayTimezone"`
	Reason          string          `json:"reason"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // в часовом поясе события
	EndTime   string `json:"endTime"`

	DisplayDate      string `json:"displayDate"`
	DisplayStartTime string `json:"displayStartTime"`
	DisplayEndTime   string `json:"displayEndTime"`
	DisplayDayOffset int    `json:"displayDayOffset"` // -1, 0 или +1
}

// MonthAvailabilityResponse доступность дат месяца
type MonthAvailabilityResponse struct {
	EventConfigID string             `json:"eventId"`
	Month         string             `json:"month"` // "2025-10"
	Dates         []DateAvailability `json:"dates"`
}

// DateAvailability доступность одной даты
type DateAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// NextAvailableResponse ближайшая доступная дата
type NextAvailableResponse struct {
	EventConfigID string  `json:"eventId"`
	From          string  `json:"from"`
	Date          *string `json:"date"` // null, если ничего не найдено
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:        slot.Start.String(),
			EndTime:          slot.End.String(),
			DisplayDate:      calendar.FormatISODate(slot.DisplayDate),
			DisplayStartTime: slot.DisplayStart.String(),
			DisplayEndTime:   slot.DisplayEnd.String(),
			DisplayDayOffset: slot.DisplayDayOffset,
		}
	}

	return &AvailableSlotsResponse{
		Date:            calendar.FormatISODate(resp.Date),
		EventConfigID:   resp.EventConfigID,
		Timezone:        resp.Timezone,
		DisplayTimezone: resp.DisplayTimezone,
		Reason:          string(resp.Reason),
		Slots:           slots,
	}
}

// FromMonthResponse конвертирует доступность месяца в HTTP response
func FromMonthResponse(resp *getAvailableSlots.MonthResponse) *MonthAvailabilityResponse {
	dates := make([]DateAvailability, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = DateAvailability{
			Date:      calendar.FormatISODate(d.Date),
			Available: d.Available,
		}
	}
	return &MonthAvailabilityResponse{
		EventConfigID: resp.EventConfigID,
		Month:         time.Date(resp.Year, resp.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Dates:         dates,
	}
}

// FromNextAvailableResponse конвертирует ответ поиска ближайшей даты
func FromNextAvailableResponse(resp *getAvailableSlots.NextAvailableResponse) *NextAvailableResponse {
	out := &NextAvailableResponse{
		EventConfigID: resp.EventConfigID,
		From:          calendar.FormatISODate(resp.From),
	}
	if resp.Found {
		date := calendar.FormatISODate(resp.Date)
		out.Date = &date
	}
	return out
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(eventID, dateStr, timezone string) (*getAvailableSlots.Request, error) {
	date, err := calendar.ParseISODate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		EventConfigID: eventID,
		Date:          date,
		Timezone:      timezone,
	}, nil
}
