package memory

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateEvent сохраняет новую конфигурацию события
func (s *Store) CreateEvent(ctx context.Context, cfg *domain.EventConfig) (*domain.EventConfig, error) {
	if cfg == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := cfg.Clone()
	if created.ID == "" {
		created.ID = s.newID()
	} else if s.findEvent(created.ID) != nil {
		return nil, ErrDuplicateID
	}
	now := s.now()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.events = append(s.events, created)
	return created.Clone(), nil
}

// GetEvent получает конфигурацию по ID
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.EventConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.findEvent(id)
	if cfg == nil {
		return nil, ErrEventNotFound
	}
	return cfg.Clone(), nil
}

// UpdateEvent заменяет конфигурацию целиком
func (s *Store) UpdateEvent(ctx context.Context, cfg *domain.EventConfig) (*domain.EventConfig, error) {
	if cfg == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.events {
		if e.ID != cfg.ID {
			continue
		}
		updated := cfg.Clone()
		updated.CreatedAt = e.CreatedAt
		updated.UpdatedAt = s.now()
		s.events[i] = updated
		return updated.Clone(), nil
	}
	return nil, ErrEventNotFound
}

// ListEvents возвращает все конфигурации в порядке создания
func (s *Store) ListEvents(ctx context.Context) ([]*domain.EventConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.EventConfig, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out, nil
}

func (s *Store) findEvent(id string) *domain.EventConfig {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
