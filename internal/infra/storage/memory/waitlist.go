package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// CreateWaitlistEntry добавляет запись в лист ожидания
func (s *Store) CreateWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if entry == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := entry.Clone()
	created.ID = s.newID()
	created.Date = calendar.DateOf(created.Date)
	now := s.now()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now

	s.waitlist = append(s.waitlist, created)
	return created.Clone(), nil
}

// GetWaitlistEntry получает запись по ID
func (s *Store) GetWaitlistEntry(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.waitlist {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, ErrWaitlistEntryNotFound
}

// UpdateWaitlistEntry сохраняет изменённую запись
func (s *Store) UpdateWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if entry == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.waitlist {
		if e.ID != entry.ID {
			continue
		}
		updated := entry.Clone()
		updated.CreatedAt = e.CreatedAt
		updated.UpdatedAt = s.now()
		s.waitlist[i] = updated
		return updated.Clone(), nil
	}
	return nil, ErrWaitlistEntryNotFound
}

// DeleteWaitlistEntry физически удаляет запись
func (s *Store) DeleteWaitlistEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.waitlist {
		if e.ID == id {
			s.waitlist = append(s.waitlist[:i], s.waitlist[i+1:]...)
			return nil
		}
	}
	return ErrWaitlistEntryNotFound
}

// ListWaitlist возвращает записи события (опционально на дату) в порядке создания
func (s *Store) ListWaitlist(ctx context.Context, eventConfigID string, date *time.Time) ([]*domain.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.WaitlistEntry, 0)
	for _, e := range s.waitlist {
		if eventConfigID != "" && e.EventConfigID != eventConfigID {
			continue
		}
		if date != nil && !calendar.IsSameDay(e.Date, *date) {
			continue
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// PromoteNextWaiting атомарно находит самую раннюю (по CreatedAt) запись Waiting для пары
// событие+дата и переводит её в Notified. Возвращает nil, если ожидающих нет.
func (s *Store) PromoteNextWaiting(ctx context.Context, eventConfigID string, date time.Time) (*domain.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *domain.WaitlistEntry
	for _, e := range s.waitlist {
		if e.EventConfigID != eventConfigID || !calendar.IsSameDay(e.Date, date) || e.Status != domain.WaitlistWaiting {
			continue
		}
		if next == nil || e.CreatedAt.Before(next.CreatedAt) {
			next = e
		}
	}
	if next == nil {
		return nil, nil
	}

	now := s.now()
	next.Status = domain.WaitlistNotified
	next.NotifiedAt = &now
	next.UpdatedAt = now
	return next.Clone(), nil
}
