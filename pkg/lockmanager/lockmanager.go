package lockmanager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

var (
	// ErrLockAborted возвращается, когда контекст отменён во время ожидания блокировки
	ErrLockAborted = errors.New("lockmanager: lock acquisition aborted")
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Manager выдаёт эксклюзивные блокировки по строковым ключам.
// Используется вместо сериализуемой транзакции: операции "прочитать брони -> проверить -> записать"
// для одной пары (событие, дата) выполняются строго последовательно.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New создает новый менеджер блокировок
func New() *Manager {
	return &Manager{locks: make(map[string]*entry)}
}

// Key формирует ключ блокировки из частей
func Key(parts ...string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "|"
		}
		key += p
	}
	return key
}

// DayKey ключ блокировки пары (событие, дата)
func DayKey(eventID string, date time.Time) string {
	return Key(eventID, calendar.FormatISODate(calendar.DateOf(date)))
}

// Do захватывает блокировки по всем ключам (в отсортированном порядке, чтобы не было deadlock),
// выполняет fn и освобождает блокировки
func (m *Manager) Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	ordered := uniqueSorted(keys)

	acquired := make([]string, 0, len(ordered))
	defer func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			m.release(acquired[i])
		}
	}()

	for _, key := range ordered {
		if err := m.acquire(ctx, key); err != nil {
			return err
		}
		acquired = append(acquired, key)
	}

	return fn(ctx)
}

func (m *Manager) acquire(ctx context.Context, key string) error {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
		return fmt.Errorf("%w: key=%s: %v", ErrLockAborted, key, ctx.Err())
	}
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.locks[key]
	if !ok {
		return
	}
	<-e.ch
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
