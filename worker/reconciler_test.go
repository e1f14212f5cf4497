package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReconciler struct {
	calls    atomic.Int64
	repaired int64
	err      error
}

func (c *countingReconciler) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	c.calls.Add(1)
	return c.repaired, c.err
}

func TestReconcilerRunsImmediatelyAndPeriodically(t *testing.T) {
	counter := &countingReconciler{repaired: 3}
	r := NewReconciler(counter, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return counter.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}

func TestReconcilerStopsOnCancel(t *testing.T) {
	counter := &countingReconciler{}
	r := NewReconciler(counter, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	// The first pass runs immediately, before the first tick.
	require.Eventually(t, func() bool {
		return counter.calls.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, int64(1), counter.calls.Load())
}
