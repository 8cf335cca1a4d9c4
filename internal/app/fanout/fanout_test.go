package fanout_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskboard/internal/app/fanout"
)

func TestMap_EmptyInput(t *testing.T) {
	t.Parallel()

	out, err := fanout.Map(context.Background(), 4, []int{}, func(_ context.Context, _ int) (string, error) {
		t.Fatal("fn must not be called for empty input")
		return "", nil
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMap_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Later items finish first so ordering cannot come from completion order.
	delays := []time.Duration{
		30 * time.Millisecond,
		20 * time.Millisecond,
		10 * time.Millisecond,
	}

	out, err := fanout.Map(context.Background(), 3, delays, func(_ context.Context, d time.Duration) (time.Duration, error) {
		time.Sleep(d)
		return d, nil
	})

	require.NoError(t, err)
	assert.Equal(t, delays, out)
}

func TestMap_FirstErrorWins(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	var calls atomic.Int32

	out, err := fanout.Map(context.Background(), 1, items, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 2 {
			return 0, errBoom
		}
		return n, nil
	})

	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, out)

	// Single worker fails on the second item, so the remaining six are
	// never dispatched.
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestMap_ErrorCancelsSharedContext(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	started := make(chan struct{})
	sawCancel := make(chan struct{})

	// The failing call waits until its sibling is running, so both items are
	// guaranteed to be in flight when the cancellation fires.
	_, err := fanout.Map(context.Background(), 2, []int{1, 2}, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			close(started)
			select {
			case <-ctx.Done():
				close(sawCancel)
				return 0, ctx.Err()
			case <-time.After(2 * time.Second):
				return n, nil
			}
		}
		<-started
		return 0, errBoom
	})

	require.ErrorIs(t, err, errBoom)

	select {
	case <-sawCancel:
	default:
		t.Fatal("sibling call never observed cancellation")
	}
}

func TestMap_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32

	out, err := fanout.Map(ctx, 2, []int{1, 2, 3, 4}, func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return n, ctx.Err()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)

	// At most the initially dispatched items run; the dispatcher stops as
	// soon as it sees the canceled context.
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestMap_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const workers = 3
	const totalItems = 15

	var peak, active atomic.Int32

	items := make([]int, totalItems)
	for i := range items {
		items[i] = i
	}

	out, err := fanout.Map(context.Background(), workers, items, func(_ context.Context, n int) (int, error) {
		cur := active.Add(1)
		defer active.Add(-1)

		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		return n, nil
	})

	require.NoError(t, err)
	require.Len(t, out, totalItems)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestMap_WorkersClampedToItems(t *testing.T) {
	t.Parallel()

	out, err := fanout.Map(context.Background(), 100, []int{1, 2}, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, out)
}
