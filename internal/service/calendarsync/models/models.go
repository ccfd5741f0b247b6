package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ConnectRequest запрос на подключение внешнего календаря
type ConnectRequest struct {
	Provider       string `json:"provider" validate:"required,oneof=google outlook apple caldav"`
	SyncDirection  string `json:"syncDirection" validate:"omitempty,oneof=one_way two_way"` // по умолчанию one_way
	CheckConflicts bool   `json:"checkConflicts"`
}

// UpdateSettingsRequest запрос на изменение настроек синхронизации
// Все поля опциональны
type UpdateSettingsRequest struct {
	SyncDirection  *string `json:"syncDirection,omitempty" validate:"omitempty,oneof=one_way two_way"`
	CheckConflicts *bool   `json:"checkConflicts,omitempty"`
}

// Response модели

// ConnectionResponse ответ с данными подключения
type ConnectionResponse struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	SyncDirection  string    `json:"syncDirection"`
	CheckConflicts bool      `json:"checkConflicts"`
	Connected      bool      `json:"connected"`
	LastSyncedAt   *string   `json:"lastSyncedAt,omitempty"` // ISO 8601 format
	ImportedEvents int       `json:"importedEvents"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SyncResponse ответ на синхронизацию
type SyncResponse struct {
	Connection ConnectionResponse `json:"connection"`
	Synced     bool               `json:"synced"` // false, если подключение отключено
}

// ConnectionListResponse ответ со списком подключений
type ConnectionListResponse struct {
	Connections []ConnectionResponse `json:"connections"`
}

// FromDomainConnection конвертирует domain модель в DTO
func FromDomainConnection(c *domain.CalendarConnection) *ConnectionResponse {
	if c == nil {
		return nil
	}

	resp := &ConnectionResponse{
		ID:             c.ID,
		Provider:       string(c.Provider),
		SyncDirection:  string(c.SyncDirection),
		CheckConflicts: c.CheckConflicts,
		Connected:      c.Connected,
		ImportedEvents: c.ImportedEvents,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if c.LastSyncedAt != nil {
		synced := c.LastSyncedAt.Format(time.RFC3339)
		resp.LastSyncedAt = &synced
	}

	return resp
}

// FromDomainConnectionList конвертирует список domain моделей в DTO
func FromDomainConnectionList(conns []*domain.CalendarConnection) *ConnectionListResponse {
	resp := &ConnectionListResponse{
		Connections: make([]ConnectionResponse, 0, len(conns)),
	}
	for _, c := range conns {
		if r := FromDomainConnection(c); r != nil {
			resp.Connections = append(resp.Connections, *r)
		}
	}
	return resp
}
