package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	// postgres отдает time с секундами
	ts, err = NewTimeStringFromString("17:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:30"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("niet een tijd")
	assert.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), NewTimeStringFromMinutes(0))
	assert.Equal(t, TimeString("09:05"), NewTimeStringFromMinutes(545))
	assert.Equal(t, TimeString("17:30"), NewTimeStringFromMinutes(1050))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("17:00"))
	assert.True(t, TimeString("17:30").IsAfter("09:00"))
}

func TestTimeStringOnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)

	at := TimeString("13:45").OnDate(date, loc)

	assert.Equal(t, 13, at.Hour())
	assert.Equal(t, 45, at.Minute())
	assert.Equal(t, date.Year(), at.Year())
	assert.Equal(t, loc, at.Location())
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("12:30:00"))
	assert.Equal(t, TimeString("12:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 14, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:05"), ts)

	assert.Error(t, ts.Scan(42))
}
