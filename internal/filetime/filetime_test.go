package filetime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullTimestamp(t *testing.T) {
	testCases := []struct {
		name string
		ft   Filetime
	}{
		{name: "zero value", ft: Filetime{}},
		{name: "Null", ft: Null()},
		{name: "epoch calendar tuple", ft: mustCalendar(t, 1601, time.January, 1, 0, 0, 0)},
		{name: "epoch time", ft: FromTime(Epoch)},
		{name: "zero ticks", ft: FromTicks(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.ft.IsNull())
			ticks, err := tc.ft.Ticks()
			require.NoError(t, err)
			assert.Equal(t, uint64(0), ticks)
			assert.True(t, tc.ft.Time().Equal(Epoch))
		})
	}
}

func TestTicksRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		ticks uint64
		want  time.Time
	}{
		{
			name:  "unix epoch",
			ticks: 116444736000000000,
			want:  time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "one tick",
			ticks: 1,
			want:  Epoch.Add(100 * time.Nanosecond),
		},
		{
			name:  "directory fixture",
			ticks: 0x01D92433C2B823C0,
			want:  time.Date(2023, time.January, 9, 14, 7, 51, 292000000, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ft := FromTicks(tc.ticks)
			assert.True(t, ft.Time().Equal(tc.want), "got %s want %s", ft, tc.want)

			ticks, err := ft.Ticks()
			require.NoError(t, err)
			assert.Equal(t, tc.ticks, ticks)
		})
	}
}

func mustCalendar(t *testing.T, year int, month time.Month, day, hour, minute, second int) Filetime {
	t.Helper()
	ft, err := FromCalendar(year, month, day, hour, minute, second)
	require.NoError(t, err)
	return ft
}

func TestFromCalendar(t *testing.T) {
	ft := mustCalendar(t, 1970, time.January, 1, 0, 0, 1)
	ticks, err := ft.Ticks()
	require.NoError(t, err)
	assert.Equal(t, uint64(116444736000000000+TicksPerSecond), ticks)
	assert.False(t, ft.IsNull())

	leap := mustCalendar(t, 2024, time.February, 29, 23, 59, 59)
	assert.True(t, leap.Time().Equal(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)))
}

func TestFromCalendarRejectsInvalidFields(t *testing.T) {
	testCases := []struct {
		name                      string
		year                      int
		month                     time.Month
		day, hour, minute, second int
	}{
		{name: "every field overflowing", year: 2023, month: 13, day: 32, hour: 25, minute: 61, second: 61},
		{name: "month zero", year: 2023, month: 0, day: 1},
		{name: "day zero", year: 2023, month: time.January, day: 0},
		{name: "february 29 outside a leap year", year: 2023, month: time.February, day: 29},
		{name: "april 31", year: 2023, month: time.April, day: 31},
		{name: "hour 24", year: 2023, month: time.January, day: 1, hour: 24},
		{name: "negative minute", year: 2023, month: time.January, day: 1, minute: -1},
		{name: "second 60", year: 2023, month: time.January, day: 1, second: 60},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ft, err := FromCalendar(tc.year, tc.month, tc.day, tc.hour, tc.minute, tc.second)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
			assert.True(t, ft.IsNull())
		})
	}
}

func TestFromTimeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(1970, time.January, 1, 2, 0, 0, 0, loc)

	ticks, err := FromTime(local).Ticks()
	require.NoError(t, err)
	assert.Equal(t, uint64(116444736000000000), ticks)
	assert.Equal(t, time.UTC, FromTime(local).Time().Location())
}

func TestTicksBeforeEpoch(t *testing.T) {
	ft := FromTime(time.Date(1600, time.December, 31, 23, 59, 59, 0, time.UTC))

	_, err := ft.Ticks()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestEqual(t *testing.T) {
	assert.True(t, Null().Equal(FromTime(Epoch)))
	assert.True(t, FromTicks(0x01D92433C2B823C0).Equal(FromTicks(0x01D92433C2B823C0)))
	assert.False(t, FromTicks(1).Equal(Null()))
}
