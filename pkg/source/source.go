// Package source gathers task lists from every configured task service.
package source

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

// Source delivers the open tasks of a service, grouped by list title.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (model.TaskGroup, error)
}

// Collect fetches all sources concurrently and merges their lists. Lists with
// the same title from different sources are concatenated in source order.
// The first failing source cancels the rest.
func Collect(ctx context.Context, sources []Source) (model.TaskGroup, error) {
	results := make([]model.TaskGroup, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			groups, err := src.Fetch(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			for title, tasks := range groups {
				for _, task := range tasks {
					if _, ok := task[model.KeySource]; !ok {
						task[model.KeySource] = src.Name()
					}
					if _, ok := task[model.KeyListTitle]; !ok {
						task[model.KeyListTitle] = title
					}
				}
			}
			results[i] = groups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(model.TaskGroup)
	for _, groups := range results {
		merged.Merge(groups)
	}
	return merged, nil
}
