package clock

import "time"

// DefaultOffset is the fixed shift applied to wall-clock time (Moscow, UTC+3).
// It is a plain offset, DST is never applied.
const DefaultOffset = 3 * time.Hour

// Clock produces "now" with a fixed offset baked into the wall clock.
// The returned instants carry time.UTC as location so their fields
// (Hour, Weekday, ...) read as the shifted local time.
type Clock struct {
	offset time.Duration
	now    func() time.Time
}

// New returns a clock shifted by offset over the system time.
func New(offset time.Duration) Clock {
	return Clock{offset: offset, now: time.Now}
}

// WithSource returns a clock shifted by offset over now.
func WithSource(offset time.Duration, now func() time.Time) Clock {
	return Clock{offset: offset, now: now}
}

// Fixed returns a clock that always reports t. t is used as-is, without offset.
func Fixed(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }}
}

// Now returns the current shifted instant.
func (c Clock) Now() time.Time {
	now := c.now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Add(c.offset)
}

// Instant returns the current real instant in UTC, without the shift.
// Run audit timestamps use it.
func (c Clock) Instant() time.Time {
	now := c.now
	if now == nil {
		now = time.Now
	}
	return now().UTC()
}

// Offset reports the configured shift.
func (c Clock) Offset() time.Duration { return c.offset }

// Weekday maps t to 1..7 with Monday=1 and Sunday=7.
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Normalize moves raw onto ref's calendar date, keeping raw's hour, minute and second.
// Grid cells only carry a time of day, their date part is meaningless.
func Normalize(raw, ref time.Time) time.Time {
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		raw.Hour(), raw.Minute(), raw.Second(),
		0, ref.Location(),
	)
}
