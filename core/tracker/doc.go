// Package tracker detects and records spans of user activity as session
// records: open a session when the application becomes active, keep it alive
// on input, close it after an inactivity window or when the application is
// hidden or unloaded.
//
// # Core Components
//
//   - Session: the persisted interval record (open until EndedAt is set)
//   - Tracker: the lifecycle manager owning the single "current session" pointer
//   - Store: the persistence gateway interface (create, patch-by-ID, list-by-user)
//   - MemoryStore: an in-process Store for tests and local hosts
//
// # Usage
//
// Construct one Tracker per user per process and wire the host's activity
// signals to it:
//
//	trk, err := tracker.New(store, userID,
//		tracker.WithInactivityTimeout(5*time.Minute),
//		tracker.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	// Application became active, or any tracked input event:
//	trk.Start("/courses/42")
//
//	// Visible location changed:
//	trk.UpdatePage("/courses/42/lessons/3")
//
//	// Application hidden:
//	trk.End()
//
//	// Process teardown (best-effort):
//	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
//	defer cancel()
//	trk.Stop(ctx)
//
// All three lifecycle operations are idempotent with respect to repeated
// calls in the same state, return nothing, and never propagate storage
// failures: the tracker logs and swallows them. In the worst case the user
// sees empty time charts; the host application never degrades because of
// tracker failures.
//
// # State Machine
//
// The tracker has exactly two states. Idle means no open session; Active
// means one open session with the inactivity timer armed. Start moves Idle
// to Active (and is the keep-alive timer rearm while Active), the timer or
// End moves Active back to Idle. The only externally meaningful distinction
// is whether an open interval is attributable to the user right now.
//
// # Multi-Process Caveat
//
// The single-open-session invariant holds per Tracker instance, not across
// processes or devices: two simultaneously open application instances write
// two independent open sessions. Readers tolerate the resulting overlap by
// summing minutes; double-counting across devices is an accepted limitation.
// Constructing two trackers for the same user in one process is likewise a
// caller error the tracker does not guard against.
package tracker
