package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one continuous span of detected user activity.
// A session with a zero EndedAt is open: activity is presumed still ongoing
// and the record contributes zero minutes to any aggregation.
type Session struct {
	// ID is assigned by the store on creation and never changes.
	ID uuid.UUID

	// UserID identifies the owner; sessions are never shared between users.
	UserID uuid.UUID

	// StartedAt is set at creation and immutable thereafter.
	StartedAt time.Time

	// EndedAt is zero while the session is open.
	EndedAt time.Time

	// DurationMinutes is meaningful only once EndedAt is set. It is computed
	// as the interval length rounded to the nearest whole minute and is never
	// re-rounded afterwards.
	DurationMinutes int

	// PagePath is the last-known location the user was viewing. It may be
	// updated any number of times while the session is open.
	PagePath string
}

// IsOpen reports whether the session has no recorded end time.
func (s Session) IsOpen() bool {
	return s.EndedAt.IsZero()
}

// Duration returns the recorded interval length, or zero for open sessions.
func (s Session) Duration() time.Duration {
	if s.IsOpen() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Close sets the end timestamp and the derived minute count. Closing an
// already-closed session is a no-op; session records mutate at most once.
func (s *Session) Close(endedAt time.Time) {
	if !s.IsOpen() {
		return
	}
	s.EndedAt = endedAt
	s.DurationMinutes = durationMinutes(s.StartedAt, endedAt)
}

// durationMinutes converts an interval to whole minutes, rounded half away
// from zero and clamped to zero for inverted intervals.
func durationMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}
