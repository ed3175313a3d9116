package downloader

import (
	"context"

	"github.com/brogergvhs/xkcdget/internal/comics"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps concurrent comic fetches. It is a courtesy limit towards
// the upstream site and must not be raised from configuration.
const MaxWorkers = 10

func clampWorkers(n int) int {
	if n < 1 || n > MaxWorkers {
		return MaxWorkers
	}

	return n
}

// runPool calls fn once per id with at most workers calls in flight.
// Tasks never fail the group, so one bad comic cannot cancel the rest.
func runPool(ctx context.Context, workers int, ids []int, fn func(ctx context.Context, id int) comics.Outcome) []comics.Outcome {
	out := make([]comics.Outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(clampWorkers(workers))

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			out[i] = fn(ctx, id)
			return nil
		})
	}

	_ = g.Wait()
	return out
}
