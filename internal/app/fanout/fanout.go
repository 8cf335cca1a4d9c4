// Package fanout runs a function across a slice of items using a fixed pool
// of worker goroutines, preserving input order in the results.
//
// It exists for application-layer orchestration such as counting tasks per
// list, where a page of N entities needs N repository calls that are
// independent and safe to issue concurrently. The helper manages the worker
// pool, cancellation, and first-error propagation; callers supply a plain
// func and get back an ordered slice.
package fanout

import (
	"context"
	"sync"
)

// Map runs fn over every item using at most workers goroutines and returns
// the results in input order.
//
// The first error wins: remaining undispatched items are skipped, the shared
// context passed to fn is canceled, and Map returns that error after all
// in-flight calls finish. Canceling ctx has the same effect and surfaces as
// ctx.Err(). On error the partial results are discarded and Map returns nil.
//
// workers must be >= 1; values above len(items) are clamped. An empty input
// returns an empty non-nil slice without spawning any goroutines.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}
	if workers > len(items) {
		workers = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	results := make([]R, len(items))
	indexes := make(chan int)

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				val, err := fn(ctx, items[idx])
				if err != nil {
					fail(err)
					return
				}
				results[idx] = val
			}
		}()
	}

	// Dispatch until the input drains or a failure cancels the context.
	// The ctx.Done branch also unblocks the send when every worker has
	// already exited on error.
dispatch:
	for i := range items {
		select {
		case indexes <- i:
		case <-ctx.Done():
			fail(ctx.Err())
			break dispatch
		}
	}
	close(indexes)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
