package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	waitlistModels "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
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

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) NotifyNext(ctx context.Context, eventConfigID string, date time.Time) (*domain.WaitlistEntry, error) {
	n.calls++
	return nil, n.err
}

type fixture struct {
	store *memory.Store
	svc   *Service
}

func testEvent() *domain.EventConfig {
	cfg := &domain.EventConfig{
		ID:                   "evt",
		Timezone:             "UTC",
		DurationMinutes:      30,
		SchedulingWindowDays: 60,
		WaitlistEnabled:      true,
	}
	for wd := range cfg.WeeklySchedule {
		cfg.WeeklySchedule[wd] = domain.DaySchedule{
			Enabled: true,
			Ranges:  []domain.TimeRange{domain.MustTimeRange("09:00", "12:00")},
		}
	}
	return cfg
}

func newFixture(t *testing.T, notifier WaitlistNotifier) *fixture {
	t.Helper()

	store := memory.NewStore()
	_, err := store.CreateEvent(context.Background(), testEvent())
	require.NoError(t, err)

	svc := NewService(store, store, notifier, lockmanager.New(), nil, fixedClock{now: now}, time.UTC, logger.NewNop())
	return &fixture{store: store, svc: svc}
}

func (f *fixture) book(t *testing.T, date time.Time, start string, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	ts := types.MustTimeString(start)
	b, err := f.store.CreateBooking(context.Background(), &domain.Booking{
		EventConfigID: "evt",
		Date:          date,
		StartTime:     ts,
		EndTime:       ts.AddMinutes(30),
		Status:        status,
		Attendees:     []domain.Attendee{{Name: "Guest", Email: "guest@example.com"}},
	})
	require.NoError(t, err)
	return b
}

func TestCancelPromotesWaitlistOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.CreateEvent(ctx, testEvent())
	require.NoError(t, err)

	locks := lockmanager.New()
	clock := fixedClock{now: now}
	wl := waitlist.NewService(store, store, locks, nil, clock, logger.NewNop())
	svc := NewService(store, store, wl, locks, nil, clock, time.UTC, logger.NewNop())
	f := &fixture{store: store, svc: svc}

	booking := f.book(t, wednesday, "10:00", domain.StatusConfirmed)

	var entryIDs []string
	for _, name := range []string{"Alice", "Bob"} {
		entry, err := wl.AddEntry(ctx, &waitlistModels.AddEntryRequest{
			EventConfigID: "evt",
			Date:          wednesday,
			TimeSlot:      domain.MustTimeRange("10:00", "10:30"),
			Name:          name,
			Email:         name + "@example.com",
		})
		require.NoError(t, err)
		entryIDs = append(entryIDs, entry.ID)
	}

	resp, err := svc.Cancel(ctx, booking.ID, &models.CancelBookingRequest{Reason: "sick"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Booking.Status)
	require.NotNil(t, resp.Booking.CancelReason)
	assert.Equal(t, "sick", *resp.Booking.CancelReason)
	assert.NotNil(t, resp.Booking.CancelledAt)
	require.NotNil(t, resp.Promoted)
	assert.Equal(t, entryIDs[0], resp.Promoted.ID)

	alice, err := store.GetWaitlistEntry(ctx, entryIDs[0])
	require.NoError(t, err)
	bob, err := store.GetWaitlistEntry(ctx, entryIDs[1])
	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistNotified, alice.Status)
	assert.Equal(t, domain.WaitlistWaiting, bob.Status)

	// повторная отмена ничего не меняет и лист ожидания не трогает
	again, err := svc.Cancel(ctx, booking.ID, &models.CancelBookingRequest{})
	require.NoError(t, err)
	assert.Nil(t, again.Promoted)

	bob, err = store.GetWaitlistEntry(ctx, entryIDs[1])
	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistWaiting, bob.Status)
}

func TestCancelKeepsCancellationWhenPromotionFails(t *testing.T) {
	notifier := &countingNotifier{err: errors.New("boom")}
	f := newFixture(t, notifier)
	booking := f.book(t, wednesday, "10:00", domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Booking.Status)
	assert.Equal(t, 1, notifier.calls)
}

func TestCancelErrors(t *testing.T) {
	notifier := &countingNotifier{}
	f := newFixture(t, notifier)

	_, err := f.svc.Cancel(context.Background(), "missing", &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	completed := f.book(t, wednesday, "10:00", domain.StatusCompleted)
	_, err = f.svc.Cancel(context.Background(), completed.ID, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, notifier.calls)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t, &countingNotifier{})
	ctx := context.Background()

	booking := f.book(t, wednesday, "10:00", domain.StatusConfirmed)
	f.book(t, wednesday.AddDate(0, 0, 1), "11:00", domain.StatusConfirmed)

	// перенос на соседний слот того же дня не конфликтует сам с собой
	resp, err := f.svc.Reschedule(ctx, booking.ID, &models.RescheduleBookingRequest{
		Date:      wednesday,
		StartTime: "10:30",
		Reason:    "later",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, resp.ID)
	assert.Equal(t, "10:30", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)

	_, err = f.svc.Reschedule(ctx, booking.ID, &models.RescheduleBookingRequest{
		Date:      wednesday.AddDate(0, 0, 1),
		StartTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	resp, err = f.svc.Reschedule(ctx, booking.ID, &models.RescheduleBookingRequest{
		Date:      wednesday.AddDate(0, 0, 1),
		StartTime: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-16", resp.Date)

	_, err = f.svc.Reschedule(ctx, booking.ID, &models.RescheduleBookingRequest{Date: wednesday, StartTime: "9"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	cancelled := f.book(t, wednesday, "11:30", domain.StatusCancelled)
	_, err = f.svc.Reschedule(ctx, cancelled.ID, &models.RescheduleBookingRequest{Date: wednesday, StartTime: "09:00"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNoShowLifecycle(t *testing.T) {
	f := newFixture(t, &countingNotifier{})
	ctx := context.Background()
	booking := f.book(t, wednesday, "10:00", domain.StatusConfirmed)

	_, err := f.svc.UndoNoShow(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resp, err := f.svc.MarkNoShow(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)

	_, err = f.svc.Complete(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resp, err = f.svc.UndoNoShow(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	resp, err = f.svc.Complete(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	_, err = f.svc.MarkNoShow(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListViews(t *testing.T) {
	f := newFixture(t, &countingNotifier{})
	ctx := context.Background()

	yesterday := wednesday.AddDate(0, 0, -2)
	past := f.book(t, yesterday, "10:00", domain.StatusCompleted)
	laterToday := f.book(t, wednesday, "11:00", domain.StatusConfirmed)
	earlierToday := f.book(t, wednesday, "09:00", domain.StatusConfirmed)
	cancelled := f.book(t, wednesday, "10:00", domain.StatusCancelled)

	ids := func(resp *models.BookingListResponse) []string {
		out := make([]string, len(resp.Bookings))
		for i, b := range resp.Bookings {
			out[i] = b.ID
		}
		return out
	}

	upcoming, err := f.svc.List(ctx, &models.ListBookingsRequest{View: domain.ViewUpcoming})
	require.NoError(t, err)
	assert.Equal(t, []string{earlierToday.ID, laterToday.ID}, ids(upcoming))

	pastView, err := f.svc.List(ctx, &models.ListBookingsRequest{View: domain.ViewPast})
	require.NoError(t, err)
	assert.Equal(t, []string{past.ID}, ids(pastView))

	cancelledView, err := f.svc.List(ctx, &models.ListBookingsRequest{View: domain.ViewCancelled})
	require.NoError(t, err)
	assert.Equal(t, []string{cancelled.ID}, ids(cancelledView))

	all, err := f.svc.List(ctx, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{laterToday.ID, cancelled.ID, earlierToday.ID, past.ID}, ids(all))

	date := wednesday
	byDate, err := f.svc.List(ctx, &models.ListBookingsRequest{View: domain.ViewAll, Date: &date})
	require.NoError(t, err)
	assert.Len(t, byDate.Bookings, 3)
}

func TestNoShowRate(t *testing.T) {
	f := newFixture(t, &countingNotifier{})
	ctx := context.Background()
	past := wednesday.AddDate(0, 0, -3)

	f.book(t, past, "09:00", domain.StatusNoShow)
	f.book(t, past, "09:30", domain.StatusCompleted)
	f.book(t, past, "10:00", domain.StatusConfirmed)
	f.book(t, past, "10:30", domain.StatusCancelled)
	f.book(t, past, "11:00", domain.StatusRescheduled)
	// сегодняшние и будущие не учитываются
	f.book(t, wednesday, "09:00", domain.StatusNoShow)

	eventID := "evt"
	resp, err := f.svc.NoShowRate(ctx, &eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NoShows)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 33, resp.Rate)

	other := "other"
	resp, err = f.svc.NoShowRate(ctx, &other)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Rate)
	assert.Equal(t, 0, resp.Total)
}

func TestNoShowPercent(t *testing.T) {
	assert.Equal(t, 0, NoShowPercent(0, 0))
	assert.Equal(t, 67, NoShowPercent(2, 3))
	assert.Equal(t, 50, NoShowPercent(1, 2))
	assert.Equal(t, 100, NoShowPercent(4, 4))
}

func TestHasDuplicateAndLookups(t *testing.T) {
	f := newFixture(t, &countingNotifier{})
	ctx := context.Background()
	booking := f.book(t, wednesday, "10:00", domain.StatusConfirmed)

	dup, err := f.svc.HasDuplicate(ctx, "GUEST@example.com", "evt", wednesday.Add(15*time.Hour))
	require.NoError(t, err)
	assert.True(t, dup)

	got, err := f.svc.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", got.Date)

	forDate, err := f.svc.ForDate(ctx, "evt", wednesday)
	require.NoError(t, err)
	assert.Len(t, forDate.Bookings, 1)

	forEvent, err := f.svc.ForEvent(ctx, "evt")
	require.NoError(t, err)
	assert.Len(t, forEvent.Bookings, 1)

	_, err = f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
