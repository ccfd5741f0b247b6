package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// CreateBooking добавляет бронирование. Назначает ID и метки времени.
// Проверки на дубликаты и пересечения здесь не выполняются - это ответственность вызывающего кода.
func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.prepareBooking(booking)
	s.bookings = append(s.bookings, created)
	return created.Clone(), nil
}

// CreateRecurringBatch добавляет серию бронирований под одним recurrenceGroupId.
// Вся серия вставляется под одной блокировкой, частичное состояние читателям не видно.
func (s *Store) CreateRecurringBatch(ctx context.Context, batch []*domain.Booking) ([]*domain.Booking, error) {
	if len(batch) < domain.MinRecurringOccurrences {
		return nil, fmt.Errorf("%w: got %d", ErrBatchTooSmall, len(batch))
	}
	for i, b := range batch {
		if b == nil {
			return nil, fmt.Errorf("%w: batch[%d]", ErrNilEntity, i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groupID := s.newID()
	prepared := make([]*domain.Booking, len(batch))
	for i, b := range batch {
		p := s.prepareBooking(b)
		gid := groupID
		p.RecurrenceGroupID = &gid
		prepared[i] = p
	}

	s.bookings = append(s.bookings, prepared...)

	out := make([]*domain.Booking, len(prepared))
	for i, p := range prepared {
		out[i] = p.Clone()
	}
	return out, nil
}

// prepareBooking копирует бронирование и заполняет служебные поля. Вызывается под s.mu
func (s *Store) prepareBooking(booking *domain.Booking) *domain.Booking {
	now := s.now()
	b := booking.Clone()
	b.ID = s.newID()
	b.Date = calendar.DateOf(b.Date)
	if b.Status == "" {
		b.Status = domain.StatusConfirmed
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	return b
}

// GetBooking получает бронирование по ID
func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.findBooking(id)
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b.Clone(), nil
}

// UpdateBooking сохраняет изменённое бронирование целиком и обновляет UpdatedAt
func (s *Store) UpdateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID != booking.ID {
			continue
		}
		updated := booking.Clone()
		updated.Date = calendar.DateOf(updated.Date)
		updated.CreatedAt = b.CreatedAt
		updated.UpdatedAt = s.now()
		s.bookings[i] = updated
		return updated.Clone(), nil
	}
	return nil, ErrBookingNotFound
}

// ListBookings возвращает бронирования по фильтру в порядке создания
func (s *Store) ListBookings(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.EventConfigID != nil && b.EventConfigID != *filter.EventConfigID {
			continue
		}
		if filter.Date != nil && !calendar.IsSameDay(b.Date, *filter.Date) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && b.IsCancelled() {
			continue
		}
		out = append(out, b.Clone())
	}
	return out, nil
}

// BookingsForDate возвращает все бронирования события на дату (включая отменённые)
func (s *Store) BookingsForDate(ctx context.Context, eventConfigID string, date time.Time) ([]*domain.Booking, error) {
	return s.ListBookings(ctx, domain.BookingsFilter{
		EventConfigID:   &eventConfigID,
		Date:            &date,
		IncludeInactive: true,
	})
}

// BookingsForEvent возвращает все бронирования события (включая отменённые)
func (s *Store) BookingsForEvent(ctx context.Context, eventConfigID string) ([]*domain.Booking, error) {
	return s.ListBookings(ctx, domain.BookingsFilter{
		EventConfigID:   &eventConfigID,
		IncludeInactive: true,
	})
}

// HasDuplicateBooking true, если на эту дату у события есть неотменённое бронирование
// с участником с таким же email (без учёта регистра)
func (s *Store) HasDuplicateBooking(ctx context.Context, email, eventConfigID string, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.EventConfigID != eventConfigID || b.IsCancelled() || !calendar.IsSameDay(b.Date, date) {
			continue
		}
		if b.HasAttendeeEmail(email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) findBooking(id string) *domain.Booking {
	for _, b := range s.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}
