package tracker

import (
	"sync"
	"time"
)

// idleTimer is an explicit handle around the inactivity timeout. Rearming is
// always a visible Cancel-then-Schedule pair rather than an implicit
// reassignment, which makes the cancellation contract auditable.
type idleTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arms the timer to invoke fn after d. Any previously scheduled
// callback is stopped first.
func (t *idleTimer) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, fn)
}

// Cancel stops the pending callback, if any. Cancelling an unarmed timer is a
// no-op. A callback that has already started running is not interrupted;
// callers guard against that with their own state checks.
func (t *idleTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
