package redis_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engagement/core/tracker"
	"github.com/dmitrymomot/engagement/integration/database/redis"
)

func newTestStore(t *testing.T) *redis.Store {
	t.Helper()
	m := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewStore(client)
}

func createSession(t *testing.T, store *redis.Store, userID uuid.UUID) *tracker.Session {
	t.Helper()
	sess := &tracker.Session{
		UserID:    userID,
		StartedAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		PagePath:  "/courses/42",
	}
	require.NoError(t, store.Create(context.Background(), sess))
	require.NotEqual(t, uuid.Nil, sess.ID)
	return sess
}

func TestStoreCreateAndList(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	userID := uuid.New()
	sess := createSession(t, store, userID)

	sessions, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, sess.ID, sessions[0].ID)
	assert.Equal(t, userID, sessions[0].UserID)
	assert.Equal(t, "/courses/42", sessions[0].PagePath)
	assert.True(t, sessions[0].StartedAt.Equal(sess.StartedAt))
	assert.True(t, sessions[0].IsOpen())
}

func TestStoreUpdatePage(t *testing.T) {
	t.Parallel()

	t.Run("patches an open session", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		userID := uuid.New()
		sess := createSession(t, store, userID)

		require.NoError(t, store.UpdatePage(context.Background(), sess.ID, "/profile"))

		sessions, err := store.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "/profile", sessions[0].PagePath)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		err := store.UpdatePage(context.Background(), uuid.New(), "/profile")
		require.ErrorIs(t, err, tracker.ErrSessionNotFound)
	})

	t.Run("closed session", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		sess := createSession(t, store, uuid.New())
		endedAt := sess.StartedAt.Add(25 * time.Minute)
		require.NoError(t, store.Close(context.Background(), sess.ID, endedAt, 25))

		err := store.UpdatePage(context.Background(), sess.ID, "/profile")
		require.ErrorIs(t, err, tracker.ErrSessionClosed)
	})
}

func TestStoreClose(t *testing.T) {
	t.Parallel()

	t.Run("records end and duration", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		userID := uuid.New()
		sess := createSession(t, store, userID)
		endedAt := sess.StartedAt.Add(25 * time.Minute)

		require.NoError(t, store.Close(context.Background(), sess.ID, endedAt, 25))

		sessions, err := store.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.False(t, sessions[0].IsOpen())
		assert.True(t, sessions[0].EndedAt.Equal(endedAt))
		assert.Equal(t, 25, sessions[0].DurationMinutes)
	})

	t.Run("closes at most once", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		userID := uuid.New()
		sess := createSession(t, store, userID)
		endedAt := sess.StartedAt.Add(25 * time.Minute)

		require.NoError(t, store.Close(context.Background(), sess.ID, endedAt, 25))

		err := store.Close(context.Background(), sess.ID, endedAt.Add(time.Minute), 26)
		require.ErrorIs(t, err, tracker.ErrSessionClosed)

		// The first close wins; the row is untouched by the rejected retry.
		sessions, err := store.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.True(t, sessions[0].EndedAt.Equal(endedAt))
		assert.Equal(t, 25, sessions[0].DurationMinutes)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		err := store.Close(context.Background(), uuid.New(), time.Now(), 5)
		require.ErrorIs(t, err, tracker.ErrSessionNotFound)
	})
}
