package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/harborlight/storefront-backend/pkg/pagination"
)

// LoaderFunc fetches one page of products for a pager.
type LoaderFunc func(ctx context.Context, page, pageSize int) (pagination.Result[Product], error)

// ResetFunc runs before a refresh reload, typically to drop the catalog
// cache so the reload hits the feed.
type ResetFunc func(ctx context.Context) error

// PagerState is a snapshot of accumulated pages.
type PagerState struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
	HasMore    bool      `json:"has_more"`
}

// Pager accumulates catalog pages for incremental browsing. Loading page 1
// replaces the product list; later pages append. Overlapping loads resolve
// last-request-wins: a load that was superseded while in flight leaves the
// state untouched.
type Pager struct {
	load     LoaderFunc
	reset    ResetFunc
	pageSize int

	mu    sync.Mutex
	gen   uint64
	state PagerState
}

// NewPager builds a pager over the given loader. reset may be nil when
// Refresh should reload without clearing anything.
func NewPager(load LoaderFunc, reset ResetFunc, pageSize int) (*Pager, error) {
	if load == nil {
		return nil, fmt.Errorf("page loader required")
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Pager{
		load:     load,
		reset:    reset,
		pageSize: pageSize,
		state:    PagerState{Page: 1, PageSize: pageSize},
	}, nil
}

// LoadPage fetches the given page. Page 1 replaces the accumulated products;
// any other page appends to them.
func (p *Pager) LoadPage(ctx context.Context, page int) (PagerState, error) {
	if page < 1 {
		page = 1
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	result, err := p.load(ctx, page, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return p.state, nil
	}
	if err != nil {
		return p.state, err
	}

	if result.Page == 1 {
		p.state.Products = result.Items
	} else {
		p.state.Products = append(p.state.Products, result.Items...)
	}
	p.state.Page = result.Page
	p.state.PageSize = result.PageSize
	p.state.Total = result.Total
	p.state.TotalPages = result.TotalPages
	p.state.HasMore = result.HasMore
	return p.state, nil
}

// LoadMore fetches the next page when one exists.
func (p *Pager) LoadMore(ctx context.Context) (PagerState, error) {
	p.mu.Lock()
	if !p.state.HasMore {
		state := p.state
		p.mu.Unlock()
		return state, nil
	}
	next := p.state.Page + 1
	p.mu.Unlock()

	return p.LoadPage(ctx, next)
}

// Refresh resets upstream state and reloads from page 1.
func (p *Pager) Refresh(ctx context.Context) (PagerState, error) {
	if p.reset != nil {
		if err := p.reset(ctx); err != nil {
			return p.State(), err
		}
	}
	return p.LoadPage(ctx, 1)
}

// State returns the current snapshot.
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
