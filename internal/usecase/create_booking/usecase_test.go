package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	wednesday = time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
	now       = time.Date(2025, time.October, 14, 8, 0, 0, 0, time.UTC)
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordingMetrics struct {
	mu  sync.Mutex
	ops []error
}

func (m *recordingMetrics) BookingOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, err)
}

func testEvent() *domain.EventConfig {
	cfg := &domain.EventConfig{
		ID:                   "evt",
		Timezone:             "UTC",
		DurationMinutes:      30,
		BufferAfterMinutes:   15,
		SchedulingWindowDays: 60,
		MaxAttendees:         2,
	}
	cfg.WeeklySchedule[time.Wednesday] = domain.DaySchedule{
		Enabled: true,
		Ranges:  []domain.TimeRange{domain.MustTimeRange("09:00", "12:00")},
	}
	return cfg
}

func newUseCase(t *testing.T, cfg *domain.EventConfig) (*UseCase, *memory.Store, *recordingMetrics) {
	t.Helper()

	store := memory.NewStore()
	_, err := store.CreateEvent(context.Background(), cfg)
	require.NoError(t, err)

	metrics := &recordingMetrics{}
	uc := NewUseCase(store, store, lockmanager.New(), metrics, fixedClock{now: now}, logger.NewNop())
	return uc, store, metrics
}

func request(start, email string) *Request {
	return &Request{
		EventConfigID: "evt",
		Date:          wednesday,
		StartTime:     types.TimeString(start),
		Attendees:     []domain.Attendee{{Name: "Guest", Email: email}},
	}
}

func TestExecuteCreatesBooking(t *testing.T) {
	uc, _, metrics := newUseCase(t, testEvent())

	resp, err := uc.Execute(context.Background(), request("10:00", "ann@example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, []error{nil}, metrics.ops)
}

func TestExecuteRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, uc *UseCase)
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown event",
			req:     &Request{EventConfigID: "missing", Date: wednesday, StartTime: "10:00", Attendees: []domain.Attendee{{Name: "A", Email: "a@example.com"}}},
			wantErr: ErrEventNotFound,
		},
		{
			name:    "no attendees",
			req:     &Request{EventConfigID: "evt", Date: wednesday, StartTime: "10:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad email",
			req:     request("10:00", "not-an-email"),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			req:     request("10:0", "a@example.com"),
			wantErr: ErrInvalidInput,
		},
		{
			name: "too many attendees",
			req: &Request{
				EventConfigID: "evt",
				Date:          wednesday,
				StartTime:     "10:00",
				Attendees: []domain.Attendee{
					{Name: "A", Email: "a@example.com"},
					{Name: "B", Email: "b@example.com"},
					{Name: "C", Email: "c@example.com"},
				},
			},
			wantErr: ErrTooManyAttendees,
		},
		{
			name:    "not scheduled day",
			req:     &Request{EventConfigID: "evt", Date: wednesday.AddDate(0, 0, 1), StartTime: "10:00", Attendees: []domain.Attendee{{Name: "A", Email: "a@example.com"}}},
			wantErr: ErrDateUnavailable,
		},
		{
			name:    "off grid",
			req:     request("10:10", "a@example.com"),
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "outside window",
			req:     &Request{EventConfigID: "evt", Date: wednesday.AddDate(0, 0, -7), StartTime: "10:00", Attendees: []domain.Attendee{{Name: "A", Email: "a@example.com"}}},
			wantErr: ErrOutsideWindow,
		},
		{
			name: "duplicate attendee",
			prepare: func(t *testing.T, uc *UseCase) {
				_, err := uc.Execute(context.Background(), request("09:00", "Ann@Example.com"))
				require.NoError(t, err)
			},
			req:     request("11:00", "ann@example.com"),
			wantErr: ErrDuplicateBooking,
		},
		{
			name: "buffer conflict",
			prepare: func(t *testing.T, uc *UseCase) {
				_, err := uc.Execute(context.Background(), request("10:00", "first@example.com"))
				require.NoError(t, err)
			},
			req:     request("09:30", "second@example.com"),
			wantErr: ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newUseCase(t, testEvent())
			if tt.prepare != nil {
				tt.prepare(t, uc)
			}

			resp, err := uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecuteAllowDuplicate(t *testing.T) {
	uc, _, _ := newUseCase(t, testEvent())
	ctx := context.Background()

	_, err := uc.Execute(ctx, request("09:00", "ann@example.com"))
	require.NoError(t, err)

	req := request("11:00", "ann@example.com")
	req.AllowDuplicate = true
	_, err = uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecuteDailyLimit(t *testing.T) {
	cfg := testEvent()
	cfg.MaxBookingsPerDay = 1
	uc, _, _ := newUseCase(t, cfg)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request("09:00", "a@example.com"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request("11:00", "b@example.com"))
	assert.ErrorIs(t, err, ErrDayFull)
}

func TestExecuteTooLate(t *testing.T) {
	cfg := testEvent()
	cfg.MinimumNoticeMinutes = 60

	store := memory.NewStore()
	_, err := store.CreateEvent(context.Background(), cfg)
	require.NoError(t, err)

	clock := fixedClock{now: time.Date(2025, time.October, 15, 9, 30, 0, 0, time.UTC)}
	uc := NewUseCase(store, store, lockmanager.New(), nil, clock, logger.NewNop())

	_, err = uc.Execute(context.Background(), request("10:00", "a@example.com"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = uc.Execute(context.Background(), request("11:00", "a@example.com"))
	assert.NoError(t, err)
}

func TestExecuteConcurrentSameSlot(t *testing.T) {
	uc, store, _ := newUseCase(t, testEvent())

	const callers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request("10:00", "guest"+string(rune('a'+i))+"@example.com")
			_, err := uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)

	bookings, err := store.BookingsForDate(context.Background(), "evt", wednesday)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
