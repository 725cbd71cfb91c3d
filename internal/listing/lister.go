package listing

import (
	"context"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/pkg/pagination"
)

// Store is the persistence contract a Lister runs against. Count and Find are
// always called with the same predicate within a single List call, which is
// what keeps the pagination metadata honest.
type Store[T any] interface {
	Count(ctx context.Context, p Predicate) (int, error)
	Find(ctx context.Context, p Predicate, order OrderSpec, limit, offset int) ([]T, error)
}

// Result is one page of records plus the metadata describing the full window.
type Result[T any] struct {
	Items []T
	Meta  pagination.Meta
}

// Lister executes the full list pipeline for one resource kind: baseline
// visibility, filter validation, sort resolution, window calculation, then a
// count and a page fetch against the merged predicate.
type Lister[T any] struct {
	cfg   Config
	store Store[T]
}

// NewLister builds a Lister from a per-resource config and store.
func NewLister[T any](cfg Config, store Store[T]) *Lister[T] {
	return &Lister[T]{cfg: cfg, store: store}
}

// Config exposes the lister's policy, mainly for handlers that need the
// default limit when parsing pagination input.
func (l *Lister[T]) Config() Config { return l.cfg }

// List runs one list request on behalf of role.
//
// All input validation happens before the store is touched: a request with an
// unknown filter field, a bad sort, or a non-positive window never generates a
// query. A page beyond the last one is not an error; it returns an empty item
// slice with truthful totals.
func (l *Lister[T]) List(ctx context.Context, role sec.UserRole, req Request) (*Result[T], error) {
	predicate, err := BuildPredicate(l.cfg, BasePredicate(l.cfg.Kind, role), req.Filters)
	if err != nil {
		return nil, err
	}

	order, err := ResolveSort(l.cfg, req.SortBy, req.Order)
	if err != nil {
		return nil, err
	}

	page, limit := req.Page, req.Limit
	if page == 0 {
		page = pagination.DefaultPage
	}
	if limit == 0 {
		limit = l.cfg.DefaultLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}
	meta, err := pagination.Paginate(page, limit, 0)
	if err != nil {
		return nil, apperr.InvalidPagination()
	}

	return l.listPage(ctx, predicate, order, meta)
}

// ListForced runs a fixed, caller-independent listing (featured shelf,
// category browse) against an explicit predicate and order, bypassing the
// request-parsing stages but keeping the count/find discipline.
func (l *Lister[T]) ListForced(ctx context.Context, p Predicate, order OrderSpec, page, limit int) (*Result[T], error) {
	if page == 0 {
		page = pagination.DefaultPage
	}
	if limit == 0 {
		limit = l.cfg.DefaultLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}
	meta, err := pagination.Paginate(page, limit, 0)
	if err != nil {
		return nil, apperr.InvalidPagination()
	}
	return l.listPage(ctx, p, order, meta)
}

func (l *Lister[T]) listPage(ctx context.Context, p Predicate, order OrderSpec, meta pagination.Meta) (*Result[T], error) {
	total, err := l.store.Count(ctx, p)
	if err != nil {
		return nil, storeErr(err)
	}
	meta = meta.WithTotal(total)

	if total == 0 || meta.Offset() >= total {
		return &Result[T]{Items: []T{}, Meta: meta}, nil
	}

	items, err := l.store.Find(ctx, p, order, meta.Limit, meta.Offset())
	if err != nil {
		return nil, storeErr(err)
	}
	if items == nil {
		items = []T{}
	}
	return &Result[T]{Items: items, Meta: meta}, nil
}

// storeErr keeps already-classified errors intact and treats anything
// unclassified from the store as a backend availability problem.
func storeErr(err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.BackendUnavailable(err)
}
