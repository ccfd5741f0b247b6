package memory

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateConnection сохраняет новое подключение календаря
func (s *Store) CreateConnection(ctx context.Context, conn *domain.CalendarConnection) (*domain.CalendarConnection, error) {
	if conn == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := conn.Clone()
	created.ID = s.newID()
	now := s.now()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.connections = append(s.connections, created)
	return created.Clone(), nil
}

// GetConnection получает подключение по ID
func (s *Store) GetConnection(ctx context.Context, id string) (*domain.CalendarConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.connections {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, ErrConnectionNotFound
}

// UpdateConnection сохраняет изменённое подключение
func (s *Store) UpdateConnection(ctx context.Context, conn *domain.CalendarConnection) (*domain.CalendarConnection, error) {
	if conn == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.connections {
		if c.ID != conn.ID {
			continue
		}
		updated := conn.Clone()
		updated.CreatedAt = c.CreatedAt
		updated.UpdatedAt = s.now()
		s.connections[i] = updated
		return updated.Clone(), nil
	}
	return nil, ErrConnectionNotFound
}

// ListConnections возвращает все подключения
func (s *Store) ListConnections(ctx context.Context) ([]*domain.CalendarConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.CalendarConnection, len(s.connections))
	for i, c := range s.connections {
		out[i] = c.Clone()
	}
	return out, nil
}
