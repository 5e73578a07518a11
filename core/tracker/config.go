package tracker

import (
	"log/slog"
	"time"
)

const (
	// DefaultInactivityTimeout is the window without tracked input after
	// which the current session is closed.
	DefaultInactivityTimeout = 5 * time.Minute

	// DefaultWriteTimeout bounds each best-effort storage write.
	DefaultWriteTimeout = 10 * time.Second
)

// Config holds tracker configuration, loadable from the environment.
type Config struct {
	InactivityTimeout time.Duration `env:"TRACKER_INACTIVITY_TIMEOUT" envDefault:"5m"`
	WriteTimeout      time.Duration `env:"TRACKER_WRITE_TIMEOUT" envDefault:"10s"`
}

// Option is a functional option for configuring the tracker.
type Option func(*Tracker)

// WithInactivityTimeout sets the window without tracked input after which
// the current session is closed. Zero or negative values keep the default.
func WithInactivityTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithWriteTimeout bounds each fire-and-forget storage write.
// Zero or negative values keep the default.
func WithWriteTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.writeTimeout = d
		}
	}
}

// WithClock overrides the clock used for session timestamps. Tests use it to
// assert minute-scale durations without waiting out the real window; the
// inactivity timer itself still runs on wall-clock time.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger configures structured logging for swallowed storage failures.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}
