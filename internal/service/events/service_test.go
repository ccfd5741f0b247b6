package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newService() *Service {
	return NewService(memory.NewStore(), logger.NewNop())
}

func workday() map[string]domain.DaySchedule {
	return map[string]domain.DaySchedule{
		"monday":    {Enabled: true, Ranges: []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")}},
		"Wednesday": {Enabled: true, Ranges: []domain.TimeRange{domain.MustTimeRange("09:00", "12:00"), domain.MustTimeRange("13:00", "17:00")}},
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newService()

	resp, err := svc.Create(context.Background(), &models.CreateEventRequest{
		Name:           "  Intro call ",
		WeeklySchedule: workday(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Intro call", resp.Name)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultSchedulingWindowDays, resp.SchedulingWindowDays)
	assert.Equal(t, domain.LocationCustom, resp.Location.Type)

	require.Len(t, resp.WeeklySchedule, 7)
	assert.True(t, resp.WeeklySchedule["monday"].Enabled)
	assert.Len(t, resp.WeeklySchedule["wednesday"].Ranges, 2)
	assert.False(t, resp.WeeklySchedule["sunday"].Enabled)
	assert.NotNil(t, resp.WeeklySchedule["sunday"].Ranges)
}

func TestCreate_StoresDomainSchedule(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &models.CreateEventRequest{
		ID:             "evt-1",
		Name:           "Demo",
		Timezone:       "America/New_York",
		WeeklySchedule: workday(),
		DateOverrides: []models.DateOverrideRequest{
			{Date: "2025-10-15", Ranges: nil},
			{Date: "2025-10-20", Ranges: []domain.TimeRange{domain.MustTimeRange("10:00", "11:00")}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", resp.ID)

	cfg, err := svc.Get(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, cfg.WeeklySchedule[time.Monday].Enabled)
	assert.True(t, cfg.WeeklySchedule[time.Wednesday].Enabled)
	assert.False(t, cfg.WeeklySchedule[time.Tuesday].Enabled)
	require.Len(t, cfg.DateOverrides, 2)
	assert.Empty(t, cfg.DateOverrides[0].Ranges)

	require.Len(t, resp.DateOverrides, 2)
	assert.Equal(t, "2025-10-15", resp.DateOverrides[0].Date)
	assert.NotNil(t, resp.DateOverrides[0].Ranges)
}

func TestCreate_DuplicateID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEventRequest{ID: "evt-1", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateEventRequest{ID: "evt-1", Name: "B"})
	assert.ErrorIs(t, err, ErrEventAlreadyExists)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateEventRequest
	}{
		{
			name: "empty name",
			req:  models.CreateEventRequest{Name: "   "},
		},
		{
			name: "unknown timezone",
			req:  models.CreateEventRequest{Name: "A", Timezone: "Mars/Olympus"},
		},
		{
			name: "duration too short",
			req:  models.CreateEventRequest{Name: "A", DurationMinutes: 3},
		},
		{
			name: "negative buffer",
			req:  models.CreateEventRequest{Name: "A", BufferBeforeMinutes: -5},
		},
		{
			name: "negative daily limit",
			req:  models.CreateEventRequest{Name: "A", MaxBookingsPerDay: -1},
		},
		{
			name: "window too long",
			req:  models.CreateEventRequest{Name: "A", SchedulingWindowDays: 400},
		},
		{
			name: "unknown location type",
			req:  models.CreateEventRequest{Name: "A", Location: domain.Location{Type: "teleport"}},
		},
		{
			name: "unknown weekday",
			req: models.CreateEventRequest{Name: "A", WeeklySchedule: map[string]domain.DaySchedule{
				"funday": {Enabled: true},
			}},
		},
		{
			name: "overlapping ranges",
			req: models.CreateEventRequest{Name: "A", WeeklySchedule: map[string]domain.DaySchedule{
				"monday": {Enabled: true, Ranges: []domain.TimeRange{
					domain.MustTimeRange("09:00", "12:00"),
					domain.MustTimeRange("11:00", "13:00"),
				}},
			}},
		},
		{
			name: "bad override date",
			req: models.CreateEventRequest{Name: "A", DateOverrides: []models.DateOverrideRequest{
				{Date: "15.10.2025"},
			}},
		},
		{
			name: "duplicate override",
			req: models.CreateEventRequest{Name: "A", DateOverrides: []models.DateOverrideRequest{
				{Date: "2025-10-15"},
				{Date: "2025-10-15"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_Partial(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEventRequest{
		ID:             "evt-1",
		Name:           "Demo",
		WeeklySchedule: workday(),
	})
	require.NoError(t, err)

	duration := 45
	resp, err := svc.Update(ctx, "evt-1", &models.UpdateEventRequest{DurationMinutes: &duration})
	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, "Demo", resp.Name)
	assert.True(t, resp.WeeklySchedule["monday"].Enabled)
}

func TestUpdate_InvalidLeavesStoredConfig(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEventRequest{ID: "evt-1", Name: "Demo"})
	require.NoError(t, err)

	tz := "Nowhere/City"
	_, err = svc.Update(ctx, "evt-1", &models.UpdateEventRequest{Timezone: &tz})
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := svc.GetByID(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimezone, got.Timezone)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService()

	name := "x"
	_, err := svc.Update(context.Background(), "missing", &models.UpdateEventRequest{Name: &name})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetAndList(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Events)

	for _, id := range []string{"a", "b"} {
		_, err := svc.Create(ctx, &models.CreateEventRequest{ID: id, Name: id})
		require.NoError(t, err)
	}

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Events, 2)
	assert.Equal(t, "a", list.Events[0].ID)
	assert.Equal(t, "b", list.Events[1].ID)
}
