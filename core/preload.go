package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Preload fetches every configured data source concurrently and returns
// the decoded documents keyed by source name. The first failure cancels
// the remaining fetches.
func (a *App) Preload(ctx context.Context) (map[string]any, error) {
	names := make([]string, 0, len(a.Config.Sources))
	for name := range a.Config.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu      sync.Mutex
		results = make(map[string]any, len(names))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		file := a.Config.Sources[name]
		g.Go(func() error {
			data, err := a.Fetcher.Fetch(gctx, file).Await(gctx)
			if err != nil {
				return fmt.Errorf("source %s (%s): %w", name, file, err)
			}
			mu.Lock()
			results[name] = data
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
