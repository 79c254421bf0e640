package domain

// UserID identifies a user as reported by the chat transport.
type UserID int64

// NoPick is the Picked value of a session whose card has not been chosen yet.
const NoPick = -1

// DrawChoice is one face-down card offered to the user: an index into the
// card catalog plus an independently rolled orientation.
type DrawChoice struct {
	AssetIndex int
	Reversed   bool
}

// Orientation returns the draw's orientation as a content-facing value.
func (c DrawChoice) Orientation() Orientation {
	if c.Reversed {
		return OrientationReversed
	}
	return OrientationUpright
}

// SessionKey partitions sessions by user and calendar day. A key that has
// no entry for "today" is indistinguishable from a fresh user, so day
// rollover needs no explicit expiry.
type SessionKey struct {
	UserID UserID
	Day    string // ISO date, e.g. "2026-08-28"
}

// Session is the per-user-per-day record of an in-progress or completed
// draw/pick interaction. It is owned exclusively by the session engine;
// callers only ever see value copies.
type Session struct {
	Key     SessionKey
	Sphere  Sphere
	Choices [3]DrawChoice
	Picked  int // index into Choices, or NoPick
}

// HasPicked reports whether the single irreversible pick has happened.
func (s Session) HasPicked() bool {
	return s.Picked != NoPick
}

// PickedChoice returns the chosen draw. Only meaningful after HasPicked.
func (s Session) PickedChoice() DrawChoice {
	return s.Choices[s.Picked]
}
