package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut_PreservesInputOrder(t *testing.T) {
	inputs := []int{5, 3, 1, 4, 2}

	outcomes := FanOut(context.Background(), inputs, 3, func(_ context.Context, n int) (string, error) {
		// Finish in reverse-ish order to prove ordering is by index,
		// not by completion.
		time.Sleep(time.Duration(n) * time.Millisecond)
		return fmt.Sprintf("item-%d", n), nil
	})

	require.Len(t, outcomes, len(inputs))
	for i, out := range outcomes {
		assert.Equal(t, i, out.Index)
		assert.Equal(t, fmt.Sprintf("item-%d", inputs[i]), out.Value)
		assert.NoError(t, out.Err)
	}
}

func TestFanOut_ItemFailureDoesNotStopOthers(t *testing.T) {
	boom := errors.New("scoring failed")
	inputs := []int{0, 1, 2, 3}

	outcomes := FanOut(context.Background(), inputs, 2, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n * 10, nil
	})

	require.Len(t, outcomes, 4)
	assert.ErrorIs(t, outcomes[2].Err, boom)

	for _, i := range []int{0, 1, 3} {
		assert.NoError(t, outcomes[i].Err)
		assert.Equal(t, i*10, outcomes[i].Value)
	}
}

func TestFanOut_RespectsWorkerBound(t *testing.T) {
	const workers = 3

	var current, peak atomic.Int32

	inputs := make([]int, 20)
	outcomes := FanOut(context.Background(), inputs, workers, func(_ context.Context, _ int) (struct{}, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		current.Add(-1)
		return struct{}{}, nil
	})

	require.Len(t, outcomes, 20)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestFanOut_EmptyInputs(t *testing.T) {
	outcomes := FanOut(context.Background(), nil, 4, func(_ context.Context, _ int) (int, error) {
		t.Fatal("work must not run for empty input")
		return 0, nil
	})

	assert.Nil(t, outcomes)
}

func TestFanOut_ZeroWorkersClampedToOne(t *testing.T) {
	var mu sync.Mutex
	running := 0

	outcomes := FanOut(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, n int) (int, error) {
		mu.Lock()
		running++
		assert.Equal(t, 1, running, "serial execution expected")
		mu.Unlock()

		time.Sleep(2 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return n, nil
	})

	require.Len(t, outcomes, 3)
	for i, out := range outcomes {
		assert.NoError(t, out.Err)
		assert.Equal(t, i+1, out.Value)
	}
}

func TestFanOut_CancelledContextMarksRemainder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	var once sync.Once

	outcomes := FanOut(ctx, make([]int, 8), 1, func(ctx context.Context, _ int) (int, error) {
		once.Do(func() {
			close(started)
			cancel()
		})
		<-ctx.Done()
		return 0, ctx.Err()
	})

	<-started
	require.Len(t, outcomes, 8)

	cancelled := 0
	for _, out := range outcomes {
		if errors.Is(out.Err, context.Canceled) {
			cancelled++
		}
	}

	assert.Equal(t, len(outcomes), cancelled, "every outcome observes cancellation")
}
