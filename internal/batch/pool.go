package batch

import (
	"context"
	"sync"
)

// Run dispatches n work items across at most workers concurrent goroutines
// and blocks until every dispatched item has finished. Items are identified
// by index; fn is called exactly once per dispatched index and must handle
// its own failures. No ordering is guaranteed between items.
//
// When ctx is cancelled no further items are dispatched; items already
// running are left to observe ctx themselves. Run returns ctx.Err() if any
// items went undispatched, nil otherwise.
func Run(ctx context.Context, workers, n int, fn func(ctx context.Context, index int)) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	var err error
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case sem <- struct{}{}:
			// A slot freeing up and cancellation can race; re-check so a
			// cancelled batch never dispatches another item.
			if ctxErr := ctx.Err(); ctxErr != nil {
				<-sem
				err = ctxErr
			}
		}
		if err != nil {
			break
		}

		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, index)
		}(i)
	}

	wg.Wait()
	return err
}
