package tracker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/engagement/pkg/async"
	"github.com/dmitrymomot/engagement/pkg/logger"
)

// Tracker is the session lifecycle manager. One instance runs per user per
// process and owns the single "current session" pointer: at most one session
// record is open at any instant from its point of view.
//
// The host wires its activity signals to three idempotent operations:
//
//   - Start: application became active, or any tracked input event. While a
//     session is already open this is the keep-alive path and only rearms the
//     inactivity timer — no storage write.
//   - UpdatePage: the visible location changed. Starts a session if none is open.
//   - End: the application was hidden or is unloading, or the inactivity
//     window elapsed (internal). Ending with no open session is a no-op.
//
// Storage writes are best-effort and fire-and-forget: each one runs through a
// future that the tracker deliberately does not await, and failures are
// logged and swallowed. The tracker never blocks or panics into the host.
type Tracker struct {
	store        Store
	userID       uuid.UUID
	timeout      time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time

	timer  idleTimer
	writes sync.WaitGroup

	mu      sync.Mutex
	current *activeSession
	gen     uint64 // bumped on every timer arm; stale callbacks check it
}

// activeSession is the tracker's in-memory view of the open session. The
// record ID stays zero until the asynchronous create resolves; page updates
// and an early End coalesce here and flush once the ID is known.
type activeSession struct {
	id        uuid.UUID
	startedAt time.Time
	pagePath  string
	pageDirty bool
	ended     bool
	endedAt   time.Time
}

// New creates a tracker for one user backed by the given store.
func New(store Store, userID uuid.UUID, opts ...Option) (*Tracker, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if userID == uuid.Nil {
		return nil, ErrMissingUserID
	}

	t := &Tracker{
		store:        store,
		userID:       userID,
		timeout:      DefaultInactivityTimeout,
		writeTimeout: DefaultWriteTimeout,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// NewFromConfig creates a tracker from configuration. Additional options
// override config values.
func NewFromConfig(cfg Config, store Store, userID uuid.UUID, opts ...Option) (*Tracker, error) {
	allOpts := append([]Option{
		WithInactivityTimeout(cfg.InactivityTimeout),
		WithWriteTimeout(cfg.WriteTimeout),
	}, opts...)
	return New(store, userID, allOpts...)
}

// Start opens a session at the given page if none is open, or rearms the
// inactivity timer if one is. The latter is the high-frequency keep-alive
// path: input events cost one timer rearm and nothing else.
func (t *Tracker) Start(pagePath string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.armTimerLocked()
		return
	}
	t.startLocked(pagePath)
}

// UpdatePage records a location change on the current session, starting a
// session first if none is open.
func (t *Tracker) UpdatePage(pagePath string) {
	t.mu.Lock()
	sess := t.current
	if sess == nil {
		t.startLocked(pagePath)
		t.mu.Unlock()
		return
	}

	sess.pagePath = pagePath
	if sess.id == uuid.Nil {
		// Create still in flight; the completion path flushes the path.
		sess.pageDirty = true
		t.mu.Unlock()
		return
	}
	id := sess.id
	t.mu.Unlock()

	t.submitUpdatePage(id, pagePath)
}

// End closes the current session, if any. Repeated calls are no-ops: exactly
// one close mutation is issued per open session.
func (t *Tracker) End() {
	t.mu.Lock()
	id, startedAt, endedAt, ok := t.endLocked()
	t.mu.Unlock()
	if !ok {
		return
	}

	if id != uuid.Nil {
		t.submitClose(id, startedAt, endedAt)
	}
	// Unknown ID: the create-completion path issues the close.
}

// Stop performs a best-effort teardown for the host's unload path: it ends
// the current session and waits, bounded by ctx, for outstanding storage
// writes to drain. Writes still in flight when ctx expires are abandoned
// silently; the row stays open in storage and readers count it as zero.
func (t *Tracker) Stop(ctx context.Context) {
	t.End()

	done := make(chan struct{})
	go func() {
		t.writes.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.logger.Warn("session writes abandoned at teardown",
			logger.Component("tracker"), logger.UserID(t.userID), logger.Error(ctx.Err()))
	}
}

// startLocked opens a new in-memory session, arms the timer, and issues the
// create write. Caller holds t.mu.
func (t *Tracker) startLocked(pagePath string) {
	sess := &activeSession{startedAt: t.now(), pagePath: pagePath}
	t.current = sess
	t.armTimerLocked()

	record := &Session{
		UserID:    t.userID,
		StartedAt: sess.startedAt,
		PagePath:  pagePath,
	}

	t.submit("create", func(ctx context.Context) error {
		if err := t.store.Create(ctx, record); err != nil {
			t.mu.Lock()
			if t.current == sess {
				// Leave the pointer unset so the next Start retries.
				t.current = nil
				t.timer.Cancel()
			}
			t.mu.Unlock()
			return err
		}

		t.mu.Lock()
		sess.id = record.ID
		flushPage := sess.pageDirty && !sess.ended
		sess.pageDirty = false
		id, page := sess.id, sess.pagePath
		ended, startedAt, endedAt := sess.ended, sess.startedAt, sess.endedAt
		t.mu.Unlock()

		if ended {
			t.submitClose(id, startedAt, endedAt)
			return nil
		}
		if flushPage {
			t.submitUpdatePage(id, page)
		}
		return nil
	})
}

// endLocked clears the current-session pointer and cancels the timer.
// Caller holds t.mu.
func (t *Tracker) endLocked() (id uuid.UUID, startedAt, endedAt time.Time, ok bool) {
	sess := t.current
	if sess == nil {
		return uuid.Nil, time.Time{}, time.Time{}, false
	}
	t.current = nil
	t.timer.Cancel()

	sess.ended = true
	sess.endedAt = t.now()
	return sess.id, sess.startedAt, sess.endedAt, true
}

// armTimerLocked rearms the inactivity timeout for the current session. Every
// arm bumps the generation, so a callback that already fired and is waiting on
// the mutex while a keep-alive rearms loses: the rearm always wins, as if the
// pending callback had been dequeued. Caller holds t.mu.
func (t *Tracker) armTimerLocked() {
	t.gen++
	gen := t.gen
	t.timer.Cancel()
	t.timer.Schedule(t.timeout, func() {
		t.onIdleTimeout(gen)
	})
}

// onIdleTimeout closes the session the timer was armed for. A generation
// mismatch means the timer was rearmed (keep-alive) or the session ended or
// was replaced; the callback is stale and does nothing.
func (t *Tracker) onIdleTimeout(gen uint64) {
	t.mu.Lock()
	if t.gen != gen {
		t.mu.Unlock()
		return
	}
	id, startedAt, endedAt, ok := t.endLocked()
	t.mu.Unlock()
	if !ok {
		return
	}

	t.logger.Info("session closed on inactivity",
		logger.Component("tracker"), logger.UserID(t.userID), logger.SessionID(id))

	if id != uuid.Nil {
		t.submitClose(id, startedAt, endedAt)
	}
}

func (t *Tracker) submitUpdatePage(id uuid.UUID, pagePath string) {
	t.submit("update_page", func(ctx context.Context) error {
		return t.store.UpdatePage(ctx, id, pagePath)
	})
}

func (t *Tracker) submitClose(id uuid.UUID, startedAt, endedAt time.Time) {
	minutes := durationMinutes(startedAt, endedAt)
	t.submit("close", func(ctx context.Context) error {
		return t.store.Close(ctx, id, endedAt, minutes)
	})
}

// submit issues a best-effort storage write. The returned future is
// deliberately discarded by all callers: failures terminate at this boundary,
// logged and swallowed, so the host's input handling never observes them.
func (t *Tracker) submit(op string, fn func(context.Context) error) *async.Future {
	t.writes.Add(1)

	return async.Exec(context.Background(), func(ctx context.Context) error {
		defer t.writes.Done()

		ctx, cancel := context.WithTimeout(ctx, t.writeTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			t.logger.Error("session storage write failed",
				logger.Component("tracker"), logger.Op(op), logger.UserID(t.userID), logger.Error(err))
			return err
		}
		return nil
	})
}
