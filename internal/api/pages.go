package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PageSizeMax is the hard upstream limit on items per page.
const PageSizeMax = 10

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items  []T
	Number int
	Count  int
}

// PageFunc fetches one page of a resource. pageSize is always within 1..PageSizeMax.
type PageFunc[T any] func(ctx context.Context, page, pageSize int) (Page[T], error)

// FetchAll retrieves every page of a paginated resource. Page 1 is fetched
// first to learn the total page count; the remaining pages are fetched
// concurrently and reassembled in ascending page order, so the result is
// deterministic regardless of completion order. Any page failure fails the
// whole call — a partial collection would silently corrupt downstream
// frequency and record computations.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	first, err := fetch(ctx, 1, PageSizeMax)
	if err != nil {
		return nil, err
	}
	if first.Count <= 1 {
		return first.Items, nil
	}

	pages := make([][]T, first.Count+1)
	pages[1] = first.Items

	g, gctx := errgroup.WithContext(ctx)
	for n := 2; n <= first.Count; n++ {
		g.Go(func() error {
			p, err := fetch(gctx, n, PageSizeMax)
			if err != nil {
				return err
			}
			pages[n] = p.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []T
	for _, p := range pages[1:] {
		all = append(all, p...)
	}
	return all, nil
}
