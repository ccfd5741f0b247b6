package tzconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestConvertTime(t *testing.T) {
	day := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		t          types.TimeString
		from, to   string
		wantTime   types.TimeString
		wantDate   time.Time
		wantOffset int
	}{
		{
			name:     "same day",
			t:        "10:00",
			from:     "America/New_York",
			to:       "UTC",
			wantTime: "15:00",
			wantDate: day,
		},
		{
			name:       "rolls forward",
			t:          "22:00",
			from:       "America/New_York",
			to:         "UTC",
			wantTime:   "03:00",
			wantDate:   day.AddDate(0, 0, 1),
			wantOffset: 1,
		},
		{
			name:       "rolls back",
			t:          "08:00",
			from:       "Asia/Tokyo",
			to:         "UTC",
			wantTime:   "23:00",
			wantDate:   day.AddDate(0, 0, -1),
			wantOffset: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertTime(tt.t, tt.from, tt.to, day)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, got.Time)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantOffset, got.DayOffset)
		})
	}
}

func TestConvertTimeUsesDateOffset(t *testing.T) {
	summer := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	got, err := ConvertTime("10:00", "America/New_York", "UTC", summer)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), got.Time)
}

func TestLoadLocationUnknown(t *testing.T) {
	_, err := LoadLocation("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownZone)

	_, err = ConvertTime("10:00", "UTC", "Mars/Olympus_Mons", time.Now())
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestFormatOffset(t *testing.T) {
	ny, err := LoadLocation("America/New_York")
	require.NoError(t, err)
	kolkata, err := LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, "-04:00", FormatOffset(ny, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-05:00", FormatOffset(ny, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "+05:30", FormatOffset(kolkata, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "+00:00", FormatOffset(time.UTC, time.Now()))
}
