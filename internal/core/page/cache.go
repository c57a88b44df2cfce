package page

import (
	"context"

	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/pkg/kv"
)

// DefaultCachePages bounds how many pages a CachedFetcher retains.
const DefaultCachePages = 64

// CachedFetcher is a read-through cache in front of another Fetcher. Only
// successful results are stored. Callers still derive a fresh view from each
// returned page.
type CachedFetcher struct {
	next  Fetcher
	pages *kv.Store[Request, Result]
}

// NewCachedFetcher wraps next, keeping at most capacity pages. A capacity of
// zero or less falls back to DefaultCachePages.
func NewCachedFetcher(next Fetcher, capacity int) *CachedFetcher {
	if capacity <= 0 {
		capacity = DefaultCachePages
	}
	return &CachedFetcher{
		next:  next,
		pages: kv.NewBounded[Request, Result](capacity),
	}
}

func (c *CachedFetcher) Fetch(ctx context.Context, req Request) (Result, error) {
	if res, ok := c.pages.Get(req); ok {
		return res, nil
	}

	res, err := c.next.Fetch(ctx, req)
	if err != nil {
		return Result{}, err
	}

	c.pages.Set(req, res)
	return res, nil
}

// Invalidate drops every cached page and invalidates the wrapped fetcher
// when it caches too.
func (c *CachedFetcher) Invalidate() {
	n := c.pages.Len()
	c.pages.Clear()
	if inv, ok := c.next.(Invalidator); ok {
		inv.Invalidate()
	}
	l := logging.Component("page-cache")
	l.Debug().Int("pages", n).Msg("cache invalidated")
}

// Len returns the number of cached pages.
func (c *CachedFetcher) Len() int {
	return c.pages.Len()
}

// Invalidator is implemented by fetchers that hold cached pages.
type Invalidator interface {
	Invalidate()
}

// Invalidate clears f's cache if it has one.
func Invalidate(f Fetcher) {
	if inv, ok := f.(Invalidator); ok {
		inv.Invalidate()
		return
	}
	l := logging.Component("page-cache")
	l.Debug().Msg("fetcher has no cache to invalidate")
}
