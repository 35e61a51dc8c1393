package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// sequentialThreshold is the list size below which Apply stays on one goroutine
const sequentialThreshold = 100

// Apply returns the items matching f, in their original order. envOf maps
// each item to the environment the filter sees (ReleaseEnv, HubEnv, ...).
// The first evaluation error stops the run.
func Apply[T any](ctx context.Context, f *Filter, items []T, envOf func(T) Env) ([]T, error) {
	if f == nil {
		return items, nil
	}
	if len(items) == 0 {
		return []T{}, nil
	}

	matched := make([]bool, len(items))

	if len(items) < sequentialThreshold {
		for i, item := range items {
			ok, err := f.Match(envOf(item))
			if err != nil {
				return nil, err
			}
			matched[i] = ok
		}
		return collect(items, matched), nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(items); start += sequentialThreshold {
		end := min(start+sequentialThreshold, len(items))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				ok, err := f.Match(envOf(items[i]))
				if err != nil {
					return err
				}
				matched[i] = ok
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return collect(items, matched), nil
}

func collect[T any](items []T, matched []bool) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if matched[i] {
			out = append(out, item)
		}
	}
	return out
}
