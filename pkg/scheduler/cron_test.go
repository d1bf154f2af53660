package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	calls  int
	maxAge time.Duration
	err    error
}

func (f *fakeReconciler) Reconcile(_ context.Context, maxAge time.Duration) (int, error) {
	f.calls++
	f.maxAge = maxAge
	return 1, f.err
}

func TestCronReconciler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Run Passes Threshold", func(t *testing.T) {
		rec := &fakeReconciler{}
		r, err := NewCronReconciler("@every 5m", rec, 20*time.Minute, logger)
		require.NoError(t, err)

		r.Run()

		assert.Equal(t, 1, rec.calls)
		assert.Equal(t, 20*time.Minute, rec.maxAge)
	})

	t.Run("Run Survives Errors", func(t *testing.T) {
		rec := &fakeReconciler{err: errors.New("query failed")}
		r, err := NewCronReconciler("*/5 * * * *", rec, time.Minute, logger)
		require.NoError(t, err)

		assert.NotPanics(t, r.Run)
		assert.Equal(t, 1, rec.calls)
	})

	t.Run("Invalid Schedule", func(t *testing.T) {
		_, err := NewCronReconciler("every five minutes", &fakeReconciler{}, time.Minute, logger)
		assert.Error(t, err)
	})

	t.Run("Start And Stop", func(t *testing.T) {
		r, err := NewCronReconciler("@every 1h", &fakeReconciler{}, time.Minute, logger)
		require.NoError(t, err)

		r.Start()
		select {
		case <-r.Stop().Done():
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop")
		}
	})
}
