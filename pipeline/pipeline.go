package pipeline

import (
	"context"
	"sync"
)

// Outcome pairs one input's result with its position in the input
// slice. FanOut returns outcomes in input order regardless of
// completion order.
type Outcome[Out any] struct {
	Err   error
	Value Out
	Index int
}

// Work is the per-item function a fan-out applies.
type Work[In, Out any] func(ctx context.Context, in In) (Out, error)

// FanOut applies work to every input with at most workers goroutines
// in flight. Item failures land in their Outcome and never stop the
// other items; ctx cancellation marks the not-yet-started remainder
// with ctx.Err(). Blocking per-item calls (the scorer, the source) are
// expected here, which is why the bound matters.
func FanOut[In, Out any](ctx context.Context, inputs []In, workers int, work Work[In, Out]) []Outcome[Out] {
	if len(inputs) == 0 {
		return nil
	}

	if workers <= 0 {
		workers = 1
	}

	if workers > len(inputs) {
		workers = len(inputs)
	}

	outcomes := make([]Outcome[Out], len(inputs))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)

		go func(idx int, in In) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				outcomes[idx] = Outcome[Out]{Err: ctx.Err(), Index: idx}
				return
			}

			if ctx.Err() != nil {
				outcomes[idx] = Outcome[Out]{Err: ctx.Err(), Index: idx}
				return
			}

			out, err := work(ctx, in)
			outcomes[idx] = Outcome[Out]{Value: out, Err: err, Index: idx}
		}(i, input)
	}

	wg.Wait()

	return outcomes
}
