package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence gateway for session records.
// Implementations must handle concurrent access safely.
//
// The write half is an append/close-once log: Create inserts a new open row,
// UpdatePage and Close patch it by ID, and nothing is ever deleted or merged.
// ListByUser serves readers such as the weekly aggregator; the returned slice
// is unordered (ordering is the reader's responsibility).
type Store interface {
	// Create inserts a new session row and assigns sess.ID.
	Create(ctx context.Context, sess *Session) error

	// UpdatePage patches the last-known page path of an open session.
	UpdatePage(ctx context.Context, id uuid.UUID, pagePath string) error

	// Close records the end timestamp and the precomputed minute count.
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMinutes int) error

	// ListByUser returns all session rows for the given user, unordered.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)
}
