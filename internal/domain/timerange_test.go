package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange("09:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, 180, r.DurationMinutes())
	assert.Equal(t, "09:00-12:00", r.String())

	_, err = NewTimeRange("12:00", "12:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange("25:00", "26:00")
	assert.Error(t, err)
}

func TestTimeRangeOverlaps(t *testing.T) {
	base := MustTimeRange("10:00", "11:00")

	assert.True(t, base.Overlaps(MustTimeRange("10:30", "11:30")))
	assert.True(t, base.Overlaps(MustTimeRange("09:00", "12:00")))
	assert.False(t, base.Overlaps(MustTimeRange("11:00", "12:00")))
	assert.False(t, base.Overlaps(MustTimeRange("09:00", "10:00")))

	assert.True(t, base.Contains("10:00"))
	assert.False(t, base.Contains("11:00"))

	// буфер уходит за полночь
	assert.True(t, MinutesOverlap(23*60+30, 24*60+15, 24*60, 24*60+30))
}

func TestWaitlistStatusTransitions(t *testing.T) {
	assert.True(t, WaitlistWaiting.CanTransitionTo(WaitlistNotified))
	assert.True(t, WaitlistWaiting.CanTransitionTo(WaitlistRejected))
	assert.True(t, WaitlistNotified.CanTransitionTo(WaitlistApproved))
	assert.True(t, WaitlistNotified.CanTransitionTo(WaitlistExpired))
	assert.False(t, WaitlistNotified.CanTransitionTo(WaitlistWaiting))
	assert.False(t, WaitlistApproved.CanTransitionTo(WaitlistRejected))
	assert.False(t, WaitlistExpired.CanTransitionTo(WaitlistNotified))

	assert.True(t, WaitlistRejected.IsResolved())
	assert.False(t, WaitlistNotified.IsResolved())
}

func TestEventOpenRanges(t *testing.T) {
	wednesday := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
	thursday := wednesday.AddDate(0, 0, 1)
	friday := wednesday.AddDate(0, 0, 2)

	cfg := &EventConfig{
		DateOverrides: []DateOverride{
			{Date: thursday},
			{Date: friday, Ranges: []TimeRange{MustTimeRange("14:00", "15:00")}},
		},
	}
	cfg.WeeklySchedule[time.Wednesday] = DaySchedule{Enabled: true, Ranges: []TimeRange{MustTimeRange("09:00", "17:00")}}
	cfg.WeeklySchedule[time.Thursday] = DaySchedule{Enabled: true, Ranges: []TimeRange{MustTimeRange("09:00", "17:00")}}

	ranges, overridden, ok := cfg.OpenRanges(wednesday)
	assert.True(t, ok)
	assert.False(t, overridden)
	assert.Len(t, ranges, 1)

	_, overridden, ok = cfg.OpenRanges(thursday)
	assert.False(t, ok)
	assert.True(t, overridden)

	ranges, overridden, ok = cfg.OpenRanges(friday)
	assert.True(t, ok)
	assert.True(t, overridden)
	assert.Equal(t, MustTimeRange("14:00", "15:00"), ranges[0])

	_, _, ok = cfg.OpenRanges(wednesday.AddDate(0, 0, 3))
	assert.False(t, ok)

	assert.Equal(t, 1, cfg.AttendeeLimit())
	assert.False(t, cfg.HasDailyLimit())
}

func TestLocationLabel(t *testing.T) {
	assert.Equal(t, "Video call: https://meet.example.com/x", Location{Type: LocationVideo, Details: "https://meet.example.com/x"}.Label())
	assert.Equal(t, "Phone call", Location{Type: LocationPhone}.Label())
	assert.Equal(t, "Room 4", Location{Type: LocationInPerson, Details: "Room 4"}.Label())
}
