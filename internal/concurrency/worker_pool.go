package concurrency

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type WorkerFn func(ctx context.Context, index int)

// ForEach runs fn for every index in [0, tasks) on at most limit goroutines
// and waits for all of them. Workers stop taking new indexes once ctx is done.
func ForEach(ctx context.Context, limit, tasks int, fn WorkerFn) {
	if tasks <= 0 {
		return
	}
	if limit <= 0 || limit > tasks {
		limit = tasks
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range next {
				fn(ctx, idx)
			}
		}()
	}

feed:
	for i := 0; i < tasks; i++ {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()
}

// Task is one fetch of a joined batch.
type Task func(ctx context.Context) error

// Joined runs every task concurrently and waits for all of them. The first
// failure cancels the others and is the batch's error.
func Joined(ctx context.Context, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}

// Fetch adapts a typed fetch into a Task that stores its value in dst.
func Fetch[T any](dst *T, fn func(ctx context.Context) (T, error)) Task {
	return func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
