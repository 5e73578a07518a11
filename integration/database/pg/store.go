package pg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/engagement/core/tracker"
)

// Store implements tracker.Store on top of a PostgreSQL pool. Rows are an
// append/close-once log: inserts and patches by ID only, no deletes.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a session store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a new open session row and assigns its ID.
func (s *Store) Create(ctx context.Context, sess *tracker.Session) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO engagement_sessions (user_id, session_start, page_path)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sess.UserID, sess.StartedAt, sess.PagePath,
	).Scan(&sess.ID)
}

// UpdatePage patches the page path of an open session.
func (s *Store) UpdatePage(ctx context.Context, id uuid.UUID, pagePath string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE engagement_sessions
		 SET page_path = $2
		 WHERE id = $1 AND session_end IS NULL`,
		id, pagePath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missReason(ctx, id)
	}
	return nil
}

// Close records the end of a session. Rows close at most once.
func (s *Store) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMinutes int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE engagement_sessions
		 SET session_end = $2, duration_minutes = $3
		 WHERE id = $1 AND session_end IS NULL`,
		id, endedAt, durationMinutes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missReason(ctx, id)
	}
	return nil
}

// ListByUser returns all session rows for the user, unordered.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, session_start, session_end, duration_minutes, page_path
		 FROM engagement_sessions
		 WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.Session
	for rows.Next() {
		var (
			sess    tracker.Session
			endedAt *time.Time
			minutes *int
		)
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.StartedAt, &endedAt, &minutes, &sess.PagePath); err != nil {
			return nil, err
		}
		if endedAt != nil {
			sess.EndedAt = *endedAt
		}
		if minutes != nil {
			sess.DurationMinutes = *minutes
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// missReason distinguishes a patch that matched nothing: the row is either
// already closed or does not exist.
func (s *Store) missReason(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM engagement_sessions WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return tracker.ErrSessionClosed
	}
	return tracker.ErrSessionNotFound
}
