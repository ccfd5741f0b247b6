package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// AddEntryRequest запрос на добавление в лист ожидания
type AddEntryRequest struct {
	EventConfigID string           `json:"eventConfigId"`
	Date          time.Time        `json:"date"`
	TimeSlot      domain.TimeRange `json:"timeSlot"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
}

// Response модели

// EntryResponse ответ с данными записи листа ожидания
type EntryResponse struct {
	ID            string    `json:"id"`
	EventConfigID string    `json:"eventConfigId"`
	Date          string    `json:"date"` // "2025-10-15"
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	NotifiedAt    *string   `json:"notifiedAt,omitempty"` // ISO 8601 format
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EntryListResponse ответ со списком записей
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:            e.ID,
		EventConfigID: e.EventConfigID,
		Date:          e.Date.Format(domain.DateFormat),
		StartTime:     e.TimeSlot.Start.String(),
		EndTime:       e.TimeSlot.End.String(),
		Name:          e.Name,
		Email:         e.Email,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	if e.NotifiedAt != nil {
		notified := e.NotifiedAt.Format(time.RFC3339)
		resp.NotifiedAt = &notified
	}

	return resp
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		if r := FromDomainEntry(e); r != nil {
			resp.Entries = append(resp.Entries, *r)
		}
	}
	return resp
}
