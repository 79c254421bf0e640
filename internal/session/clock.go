package session

import "time"

// Clock supplies the calendar day used to partition session keys.
// Injectable so tests can pin or roll the day.
type Clock interface {
	// Today returns the current day as an ISO date string ("2026-08-28").
	// ISO dates compare chronologically as plain strings, which PruneBefore
	// relies on.
	Today() string
}

// SystemClock reports the host's local calendar day.
type SystemClock struct{}

// Today implements Clock.
func (SystemClock) Today() string {
	return time.Now().Format(time.DateOnly)
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() string

// Today implements Clock.
func (f ClockFunc) Today() string { return f() }
