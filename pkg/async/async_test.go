package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engagement/pkg/async"
)

func TestExec(t *testing.T) {
	t.Parallel()

	t.Run("successful operation resolves nil", func(t *testing.T) {
		t.Parallel()

		fut := async.Exec(context.Background(), func(ctx context.Context) error {
			return nil
		})

		require.NoError(t, fut.Await())
		assert.True(t, fut.IsComplete())
	})

	t.Run("operation error is preserved", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("gateway down")
		fut := async.Exec(context.Background(), func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, fut.Await(), wantErr)
	})

	t.Run("pre-cancelled context skips execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		fut := async.Exec(ctx, func(ctx context.Context) error {
			ran = true
			return nil
		})

		assert.ErrorIs(t, fut.Await(), context.Canceled)
		assert.False(t, ran)
	})
}

func TestFutureAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrTimeout when operation is slow", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		fut := async.Exec(context.Background(), func(ctx context.Context) error {
			<-release
			return nil
		})

		err := fut.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.False(t, fut.IsComplete())

		close(release)
		require.NoError(t, fut.Await())
	})

	t.Run("returns result when operation finishes in time", func(t *testing.T) {
		t.Parallel()

		fut := async.Exec(context.Background(), func(ctx context.Context) error {
			return nil
		})

		require.NoError(t, fut.AwaitWithTimeout(time.Second))
	})
}

func TestFutureIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fut := async.Exec(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	})

	assert.False(t, fut.IsComplete())
	close(release)
	require.NoError(t, fut.Await())
	assert.True(t, fut.IsComplete())
}
