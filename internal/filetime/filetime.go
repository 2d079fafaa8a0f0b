// Package filetime converts between calendar time and the FILETIME tick count
// used by compound file directory entries: the number of 100-nanosecond
// intervals since 1601-01-01T00:00:00Z.
package filetime

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TicksPerSecond is the number of FILETIME ticks in one second.
	TicksPerSecond = 10_000_000

	// epochToUnix is the number of seconds between 1601-01-01 and 1970-01-01.
	epochToUnix = 11_644_473_600

	nanosPerTick = 100
)

// ErrOutOfRange is returned when an instant cannot be expressed as a tick count.
var ErrOutOfRange = errors.New("filetime: instant outside representable range")

// Epoch is 1601-01-01T00:00:00Z, the zero tick and the null timestamp.
var Epoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// Filetime is a UTC instant stored in a directory entry.
// The zero value is the null timestamp.
type Filetime struct {
	t time.Time
}

// Null returns the null timestamp.
func Null() Filetime {
	return Filetime{}
}

// FromCalendar builds a UTC timestamp from calendar fields. The tuple
// 1601-01-01 00:00:00 yields the null timestamp. Fields outside their
// calendar range, such as month 13 or February 30, return ErrOutOfRange.
func FromCalendar(year int, month time.Month, day, hour, minute, second int) (Filetime, error) {
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	y, m, d := t.Date()
	if y != year || m != month || d != day || t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return Null(), fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d:%02d is not a calendar time",
			ErrOutOfRange, year, int(month), day, hour, minute, second)
	}
	return FromTime(t), nil
}

// FromTime converts t to UTC, truncated to whole ticks.
func FromTime(t time.Time) Filetime {
	if t.IsZero() || t.Equal(Epoch) {
		return Null()
	}
	return Filetime{t: t.UTC().Truncate(nanosPerTick)}
}

// FromTicks is the inverse of Ticks.
func FromTicks(ticks uint64) Filetime {
	if ticks == 0 {
		return Null()
	}
	secs := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	return Filetime{t: time.Unix(int64(secs)-epochToUnix, int64(rem)*nanosPerTick).UTC()}
}

// IsNull reports whether f is the null timestamp.
func (f Filetime) IsNull() bool {
	return f.t.IsZero() || f.t.Equal(Epoch)
}

// Time returns the instant as a UTC time.Time.
func (f Filetime) Time() time.Time {
	if f.t.IsZero() {
		return Epoch
	}
	return f.t
}

// Ticks returns the number of 100 ns intervals since the epoch.
func (f Filetime) Ticks() (uint64, error) {
	if f.IsNull() {
		return 0, nil
	}
	if f.t.Before(Epoch) {
		return 0, fmt.Errorf("%w: %s precedes %s", ErrOutOfRange, f.t.Format(time.RFC3339), Epoch.Format(time.RFC3339))
	}

	secs := uint64(f.t.Unix() + epochToUnix)
	if secs > (^uint64(0)-TicksPerSecond)/TicksPerSecond {
		return 0, fmt.Errorf("%w: %s overflows 64-bit tick count", ErrOutOfRange, f.t.Format(time.RFC3339))
	}
	return secs*TicksPerSecond + uint64(f.t.Nanosecond())/nanosPerTick, nil
}

// Equal reports whether f and g are the same instant.
func (f Filetime) Equal(g Filetime) bool {
	return f.Time().Equal(g.Time())
}

func (f Filetime) String() string {
	return f.Time().Format(time.RFC3339Nano)
}
