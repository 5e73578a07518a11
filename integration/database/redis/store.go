package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/engagement/core/tracker"
)

const (
	sessionKeyPrefix = "engagement:session:"
	userKeyPrefix    = "engagement:user:"
)

// Store implements tracker.Store on Redis: one hash per session plus a
// per-user set indexing the session IDs. Timestamps are stored as
// RFC 3339 strings; an absent session_end field marks an open session.
type Store struct {
	client *redis.Client
}

// NewStore creates a session store backed by the given client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// patchOpenScript patches hash fields only while the session is open, so the
// open-check and the write are one atomic step server-side. Returns "missing"
// when the hash does not exist and "closed" when an end is already recorded.
var patchOpenScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return "missing"
end
if redis.call("HEXISTS", KEYS[1], "session_end") == 1 then
	return "closed"
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return "ok"`)

func userKey(userID uuid.UUID) string {
	return userKeyPrefix + userID.String() + ":sessions"
}

// Create inserts a new open session hash and indexes it for the user.
// The store assigns the identifier.
func (s *Store) Create(ctx context.Context, sess *tracker.Session) error {
	id := uuid.New()

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(id),
		"user_id", sess.UserID.String(),
		"session_start", sess.StartedAt.Format(time.RFC3339Nano),
		"page_path", sess.PagePath,
	)
	pipe.SAdd(ctx, userKey(sess.UserID), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	sess.ID = id
	return nil
}

// UpdatePage patches the page path of an open session.
func (s *Store) UpdatePage(ctx context.Context, id uuid.UUID, pagePath string) error {
	return s.patchOpen(ctx, id, "page_path", pagePath)
}

// Close records the end of a session. Rows close at most once.
func (s *Store) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMinutes int) error {
	return s.patchOpen(ctx, id,
		"session_end", endedAt.Format(time.RFC3339Nano),
		"duration_minutes", strconv.Itoa(durationMinutes),
	)
}

// ListByUser returns all session rows for the user, unordered.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Session, error) {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, raw := range ids {
		cmds[i] = pipe.HGetAll(ctx, sessionKeyPrefix+raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	out := make([]tracker.Session, 0, len(ids))
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			// Index member without a hash; skip rather than fail the read.
			continue
		}
		sess, err := parseSession(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

// patchOpen runs the open-guarded HSET and maps the script's verdict onto the
// store error taxonomy.
func (s *Store) patchOpen(ctx context.Context, id uuid.UUID, fieldValues ...any) error {
	res, err := patchOpenScript.Run(ctx, s.client, []string{sessionKey(id)}, fieldValues...).Text()
	if err != nil {
		return err
	}
	switch res {
	case "missing":
		return tracker.ErrSessionNotFound
	case "closed":
		return tracker.ErrSessionClosed
	}
	return nil
}

func parseSession(rawID string, fields map[string]string) (tracker.Session, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return tracker.Session{}, err
	}
	userID, err := uuid.Parse(fields["user_id"])
	if err != nil {
		return tracker.Session{}, err
	}
	startedAt, err := time.Parse(time.RFC3339Nano, fields["session_start"])
	if err != nil {
		return tracker.Session{}, err
	}

	sess := tracker.Session{
		ID:        id,
		UserID:    userID,
		StartedAt: startedAt,
		PagePath:  fields["page_path"],
	}

	if raw, ok := fields["session_end"]; ok {
		endedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return tracker.Session{}, err
		}
		sess.EndedAt = endedAt
	}
	if raw, ok := fields["duration_minutes"]; ok {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return tracker.Session{}, err
		}
		sess.DurationMinutes = minutes
	}
	return sess, nil
}
