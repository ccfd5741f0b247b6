package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// RescheduleBookingRequest запрос на перенос бронирования
type RescheduleBookingRequest struct {
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	Reason    string           `json:"reason"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	View          domain.BookingView `json:"view"`
	EventConfigID *string            `json:"eventConfigId,omitempty"` // Фильтр по событию (опционально)
	Date          *time.Time         `json:"date,omitempty"`          // Фильтр по дате (опционально)
}

// Response модели

// AttendeeResponse участник бронирования
type AttendeeResponse struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Timezone  string            `json:"timezone,omitempty"`
	Responses map[string]string `json:"responses,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string             `json:"id"`
	EventConfigID string             `json:"eventConfigId"`
	Date          string             `json:"date"`      // "2025-10-15"
	StartTime     string             `json:"startTime"` // "10:00"
	EndTime       string             `json:"endTime"`   // "10:30"
	Timezone      string             `json:"timezone"`
	Status        string             `json:"status"`
	Attendees     []AttendeeResponse `json:"attendees"`
	Notes         *string            `json:"notes,omitempty"`

	CancelReason      *string `json:"cancelReason,omitempty"`
	RescheduleReason  *string `json:"rescheduleReason,omitempty"`
	RecurrenceGroupID *string `json:"recurrenceGroupId,omitempty"`
	CancelledAt       *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PromotedEntry запись листа ожидания, переведённая в notified после отмены
type PromotedEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// CancelBookingResponse ответ на отмену бронирования
type CancelBookingResponse struct {
	Booking  BookingResponse `json:"booking"`
	Promoted *PromotedEntry  `json:"promoted,omitempty"`
}

// NoShowRateResponse ответ с долей неявок
type NoShowRateResponse struct {
	EventConfigID *string `json:"eventConfigId,omitempty"`
	Rate          int     `json:"rate"` // проценты, округлённые до целого
	NoShows       int     `json:"noShows"`
	Total         int     `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		EventConfigID:     b.EventConfigID,
		Date:              b.Date.Format(domain.DateFormat),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		Timezone:          b.Timezone,
		Status:            string(b.Status),
		Attendees:         make([]AttendeeResponse, len(b.Attendees)),
		CancelReason:      b.CancelReason,
		RescheduleReason:  b.RescheduleReason,
		RecurrenceGroupID: b.RecurrenceGroupID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	for i, a := range b.Attendees {
		resp.Attendees[i] = AttendeeResponse{
			Name:      a.Name,
			Email:     a.Email,
			Timezone:  a.Timezone,
			Responses: a.Responses,
		}
	}

	if b.Notes != "" {
		notes := b.Notes
		resp.Notes = &notes
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainWaitlistEntry конвертирует продвинутую запись листа ожидания
func FromDomainWaitlistEntry(e *domain.WaitlistEntry) *PromotedEntry {
	if e == nil {
		return nil
	}
	return &PromotedEntry{
		ID:     e.ID,
		Name:   e.Name,
		Email:  e.Email,
		Status: string(e.Status),
	}
}
