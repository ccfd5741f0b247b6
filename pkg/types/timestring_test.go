package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "ab:cd", "12:300"}

	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestTimeStringArithmetic(t *testing.T) {
	ts := MustTimeString("23:30")

	assert.Equal(t, 23*60+30, ts.Minutes())
	assert.Equal(t, TimeString("00:15"), ts.AddMinutes(45))
	assert.Equal(t, TimeString("23:00"), MustTimeString("00:30").AddMinutes(-90))
	assert.True(t, MustTimeString("09:00").IsBefore("10:00"))
	assert.True(t, MustTimeString("10:01").IsAfter("10:00"))
	assert.Equal(t, TimeString("01:05"), NewTimeStringFromMinutes(24*60+65))
}

func TestTimeStringOn(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	got := MustTimeString("10:15").On(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2025, time.October, 15, 7, 15, 0, 0, time.UTC), got.UTC())
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringUnmarshalJSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"09:00"}`), &payload))
	assert.Equal(t, TimeString("09:00"), payload.Start)

	err := json.Unmarshal([]byte(`{"start":"9am"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
