package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	baseTime = time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	day      = time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
)

// newTestStore хранилище с детерминированными ID и часами, которые сдвигаются на минуту при каждом вызове
func newTestStore() *Store {
	var (
		ids  int
		tick int
	)
	return NewStore(
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
		WithClock(func() time.Time {
			tick++
			return baseTime.Add(time.Duration(tick) * time.Minute)
		}),
	)
}

func booking(eventID, email, start, end string) *domain.Booking {
	return &domain.Booking{
		EventConfigID: eventID,
		Date:          day.Add(13 * time.Hour),
		StartTime:     types.TimeString(start),
		EndTime:       types.TimeString(end),
		Attendees:     []domain.Attendee{{Name: "Guest", Email: email}},
	}
}

func TestCreateBookingAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created, err := s.CreateBooking(ctx, booking("evt", "a@example.com", "10:00", "10:30"))
	require.NoError(t, err)

	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, day, created.Date)
	assert.False(t, created.CreatedAt.IsZero())

	// наружу отдаётся копия
	created.Status = domain.StatusCancelled
	stored, err := s.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	_, err = s.GetBooking(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = s.CreateBooking(ctx, nil)
	assert.ErrorIs(t, err, ErrNilEntity)
}

func TestCreateRecurringBatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.CreateRecurringBatch(ctx, []*domain.Booking{booking("evt", "a@example.com", "10:00", "10:30")})
	assert.ErrorIs(t, err, ErrBatchTooSmall)

	_, err = s.CreateRecurringBatch(ctx, []*domain.Booking{booking("evt", "a@example.com", "10:00", "10:30"), nil})
	assert.ErrorIs(t, err, ErrNilEntity)

	all, err := s.ListBookings(ctx, domain.BookingsFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected batch must not leave partial state")

	second := booking("evt", "a@example.com", "10:00", "10:30")
	second.Date = day.AddDate(0, 0, 7)
	created, err := s.CreateRecurringBatch(ctx, []*domain.Booking{booking("evt", "a@example.com", "10:00", "10:30"), second})
	require.NoError(t, err)
	require.Len(t, created, 2)

	require.NotNil(t, created[0].RecurrenceGroupID)
	assert.Equal(t, *created[0].RecurrenceGroupID, *created[1].RecurrenceGroupID)
	assert.NotEqual(t, created[0].ID, created[1].ID)
}

func TestListBookingsFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	first, err := s.CreateBooking(ctx, booking("evt", "a@example.com", "10:00", "10:30"))
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, booking("other", "b@example.com", "10:00", "10:30"))
	require.NoError(t, err)

	first.Status = domain.StatusCancelled
	_, err = s.UpdateBooking(ctx, first)
	require.NoError(t, err)

	eventID := "evt"
	active, err := s.ListBookings(ctx, domain.BookingsFilter{EventConfigID: &eventID})
	require.NoError(t, err)
	assert.Empty(t, active)

	forDate, err := s.BookingsForDate(ctx, "evt", day)
	require.NoError(t, err)
	assert.Len(t, forDate, 1)

	cancelled := domain.StatusCancelled
	byStatus, err := s.ListBookings(ctx, domain.BookingsFilter{Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, first.ID, byStatus[0].ID)
}

func TestHasDuplicateBooking(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created, err := s.CreateBooking(ctx, booking("evt", "Ann@Example.com", "10:00", "10:30"))
	require.NoError(t, err)

	dup, err := s.HasDuplicateBooking(ctx, "ann@example.com", "evt", day)
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = s.HasDuplicateBooking(ctx, "ann@example.com", "evt", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, dup)

	created.Status = domain.StatusCancelled
	_, err = s.UpdateBooking(ctx, created)
	require.NoError(t, err)

	dup, err = s.HasDuplicateBooking(ctx, "ann@example.com", "evt", day)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestPromoteNextWaitingFIFO(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	slot := domain.MustTimeRange("10:00", "10:30")
	for _, email := range []string{"first@example.com", "second@example.com"} {
		_, err := s.CreateWaitlistEntry(ctx, &domain.WaitlistEntry{
			EventConfigID: "evt",
			Date:          day,
			TimeSlot:      slot,
			Email:         email,
			Status:        domain.WaitlistWaiting,
		})
		require.NoError(t, err)
	}

	promoted, err := s.PromoteNextWaiting(ctx, "evt", day)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "first@example.com", promoted.Email)
	assert.Equal(t, domain.WaitlistNotified, promoted.Status)
	assert.NotNil(t, promoted.NotifiedAt)

	promoted, err = s.PromoteNextWaiting(ctx, "evt", day)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "second@example.com", promoted.Email)

	promoted, err = s.PromoteNextWaiting(ctx, "evt", day)
	require.NoError(t, err)
	assert.Nil(t, promoted)

	require.NoError(t, s.DeleteWaitlistEntry(ctx, "id-1"))
	assert.ErrorIs(t, s.DeleteWaitlistEntry(ctx, "id-1"), ErrWaitlistEntryNotFound)

	entries, err := s.ListWaitlist(ctx, "evt", &day)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEventsCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created, err := s.CreateEvent(ctx, &domain.EventConfig{ID: "intro", Name: "Intro call"})
	require.NoError(t, err)
	assert.Equal(t, "intro", created.ID)

	_, err = s.CreateEvent(ctx, &domain.EventConfig{ID: "intro"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	generated, err := s.CreateEvent(ctx, &domain.EventConfig{Name: "Demo"})
	require.NoError(t, err)
	assert.NotEmpty(t, generated.ID)

	created.Name = "Intro"
	updated, err := s.UpdateEvent(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Intro", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateEvent(ctx, &domain.EventConfig{ID: "missing"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	list, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.CreateEvent(ctx, &domain.EventConfig{ID: "evt", Name: "Call"})
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, booking("evt", "a@example.com", "10:00", "10:30"))
	require.NoError(t, err)
	_, err = s.CreateConnection(ctx, &domain.CalendarConnection{Provider: domain.ProviderGoogle, Connected: true})
	require.NoError(t, err)

	st := s.Snapshot()
	require.Len(t, st.Events, 1)
	require.Len(t, st.Bookings, 1)
	require.Len(t, st.Connections, 1)

	restored := NewStore()
	restored.Restore(st)

	// изменение снимка не влияет на хранилище
	st.Bookings[0].Status = domain.StatusCancelled

	got, err := restored.GetBooking(ctx, st.Bookings[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	events, err := restored.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
