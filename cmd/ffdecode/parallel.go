//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEachFile runs fn on every file with at most workers in flight and
// returns results in input order. Each fn opens its own container, so
// no container is shared between goroutines.
func forEachFile[T any](ctx context.Context, files []string, workers int, fn func(ctx context.Context, path string) (T, error)) ([]T, error) {
	results := make([]T, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
