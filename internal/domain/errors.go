// Package domain defines the core reading entities and errors.
package domain

import "errors"

// User-facing recoverable errors. The transport reports these back as
// guidance messages; session state is never mutated on their account.
var (
	// ErrNoActiveSession is returned when a pick or reveal arrives with no
	// session started for the (user, day) key.
	ErrNoActiveSession = errors.New("no active session for today")

	// ErrAlreadyPicked is returned when a second pick arrives after the
	// first succeeded. The original pick stands; a repeat never re-draws.
	ErrAlreadyPicked = errors.New("card already picked today")

	// ErrInvalidChoice is returned when a pick index is outside {0,1,2}.
	ErrInvalidChoice = errors.New("invalid card choice")

	// ErrInvalidSphere is returned when a sphere key is not one of
	// work/love/health/general.
	ErrInvalidSphere = errors.New("invalid sphere")
)
