// Package memory is the authoritative in-process store of event configurations,
// bookings, waitlist entries and calendar connections.
//
// All methods are safe for concurrent use. Values are copied on the way in and
// on the way out, so callers never share memory with the store.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Store хранилище всех коллекций сервиса
type Store struct {
	mu sync.RWMutex

	events      []*domain.EventConfig
	bookings    []*domain.Booking
	waitlist    []*domain.WaitlistEntry
	connections []*domain.CalendarConnection

	now   func() time.Time
	newID func() string
}

// Option настройка хранилища
type Option func(*Store)

// WithClock подменяет источник времени для меток created/updated
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore создает пустое хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State полный снимок содержимого хранилища
type State struct {
	Events      []*domain.EventConfig
	Bookings    []*domain.Booking
	Waitlist    []*domain.WaitlistEntry
	Connections []*domain.CalendarConnection
}

// Snapshot возвращает глубокую копию всех коллекций
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Events:      make([]*domain.EventConfig, len(s.events)),
		Bookings:    make([]*domain.Booking, len(s.bookings)),
		Waitlist:    make([]*domain.WaitlistEntry, len(s.waitlist)),
		Connections: make([]*domain.CalendarConnection, len(s.connections)),
	}
	for i, e := range s.events {
		st.Events[i] = e.Clone()
	}
	for i, b := range s.bookings {
		st.Bookings[i] = b.Clone()
	}
	for i, w := range s.waitlist {
		st.Waitlist[i] = w.Clone()
	}
	for i, c := range s.connections {
		st.Connections[i] = c.Clone()
	}
	return st
}

// Restore заменяет содержимое хранилища снимком
func (s *Store) Restore(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make([]*domain.EventConfig, 0, len(st.Events))
	for _, e := range st.Events {
		s.events = append(s.events, e.Clone())
	}
	s.bookings = make([]*domain.Booking, 0, len(st.Bookings))
	for _, b := range st.Bookings {
		s.bookings = append(s.bookings, b.Clone())
	}
	s.waitlist = make([]*domain.WaitlistEntry, 0, len(st.Waitlist))
	for _, w := range st.Waitlist {
		s.waitlist = append(s.waitlist, w.Clone())
	}
	s.connections = make([]*domain.CalendarConnection, 0, len(st.Connections))
	for _, c := range st.Connections {
		s.connections = append(s.connections, c.Clone())
	}
}
