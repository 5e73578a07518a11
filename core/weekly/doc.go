// Package weekly reconstructs per-day and per-week engagement totals from raw
// session records.
//
// Aggregate is a pure function over its inputs: give it everything the store
// holds for one user, a signed week offset, and a reference clock, and it
// returns a fixed seven-slot time series of minutes per day plus a week
// total. It owns no mutable state and may be invoked concurrently from any
// number of readers without coordination.
//
//	sessions, err := store.ListByUser(ctx, userID)
//	if err != nil {
//		return err
//	}
//	report := weekly.Aggregate(sessions, 0, time.Now())
//	title := weekly.Label(0, report.WeekStart) // "This Week"
//
// Two attribution rules are deliberate simplifications and must be preserved
// for output stability: a session belongs entirely to the calendar date it
// started on (never split across day or week boundaries), and a session with
// no recorded end contributes zero minutes no matter how long ago it started.
// The second rule undercounts rather than overcounts when a close write never
// reached storage.
package weekly
