package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerPublishesUntilStopped(t *testing.T) {
	var calls atomic.Int64
	got := make(chan int64, 64)

	p := NewPoller(func(context.Context) (int64, error) {
		return calls.Add(1), nil
	}, func(n int64) { got <- n }, 5*time.Millisecond, nil)

	p.Start(context.Background())
	p.Start(context.Background())
	assert.True(t, p.Running())

	require.Equal(t, int64(1), <-got)
	require.Equal(t, int64(2), <-got)

	p.Stop()
	assert.False(t, p.Running())
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load())

	p.Stop()
}

func TestPollerSkipsFailedFetch(t *testing.T) {
	var calls atomic.Int64
	got := make(chan int64, 64)

	p := NewPoller(func(context.Context) (int64, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("backend down")
		}
		return 7, nil
	}, func(n int64) { got <- n }, 5*time.Millisecond, nil)

	p.Start(context.Background())
	defer p.Stop()

	select {
	case n := <-got:
		assert.Equal(t, int64(7), n)
		assert.GreaterOrEqual(t, calls.Load(), int64(2))
	case <-time.After(time.Second):
		t.Fatal("no count published")
	}
}

func TestPollerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(func(context.Context) (int64, error) { return 0, nil }, func(int64) {}, time.Hour, nil)
	p.Start(ctx)
	cancel()
	p.Stop()
	assert.False(t, p.Running())
}
