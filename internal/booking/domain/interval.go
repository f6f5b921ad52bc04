package domain

import "time"

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates the window [start, end), normalised to UTC.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidWindow
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// IntervalFor creates the window that starts at start and lasts duration.
func IntervalFor(start time.Time, duration time.Duration) (Interval, error) {
	return NewInterval(start, start.Add(duration))
}

// Overlaps reports whether the two windows share at least one instant.
// Adjacent windows, where one ends exactly when the other starts, do not.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns the length of the window.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return i.Start.Format(time.RFC3339) + "/" + i.End.Format(time.RFC3339)
}
