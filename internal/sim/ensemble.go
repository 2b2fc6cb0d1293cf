package sim

import (
	"context"
	"sync"
)

// RunAll runs independent engines concurrently for the same duration.
// Engines must not share a body. Results are returned in input order; the
// first error encountered in that order is returned alongside them.
func RunAll(ctx context.Context, engines []*Engine, duration float64) ([]*Result, error) {
	results := make([]*Result, len(engines))
	errs := make([]error, len(engines))

	var wg sync.WaitGroup
	for i, e := range engines {
		wg.Add(1)
		go func(idx int, e *Engine) {
			defer wg.Done()
			results[idx], errs[idx] = e.Run(ctx, duration)
		}(i, e)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
