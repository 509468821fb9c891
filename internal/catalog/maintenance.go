package catalog

import (
	"context"
	"errors"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

const reindexBatch = 100

// ErrNoIndex is returned by Reindex when the service has no search index.
var ErrNoIndex = errors.New("search index is not configured")

// Reindex pushes every live property to the search index and returns how many were sent.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, ErrNoIndex
	}
	indexed := 0
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		q := pagination.Resolve(page, reindexBatch, pagination.DefaultSortField, "asc")
		props, total, err := s.store.FindProperties(ctx, filter.And{}, q)
		if err != nil {
			return indexed, s.fail(ctx, "reindex", err)
		}
		aggs, err := s.assemble(ctx, s.store, props)
		if err != nil {
			return indexed, s.fail(ctx, "reindex", err)
		}
		for i := range aggs {
			agg := &aggs[i]
			if err := s.index.IndexProperty(ctx, &agg.Property, agg.Tags, agg.AllImages()); err != nil {
				return indexed, err
			}
			indexed++
		}
		if len(props) == 0 || int64(q.Offset+len(props)) >= total {
			break
		}
	}
	s.log(ctx).Info("Search index rebuilt", "properties", indexed)
	return indexed, nil
}

// ExpireFeatured clears the featured flag on listings whose featured window has passed.
func (s *Service) ExpireFeatured(ctx context.Context) (int64, error) {
	n, err := s.store.ExpireFeatured(ctx, s.now())
	if err != nil {
		return 0, s.fail(ctx, "expire featured", err)
	}
	if n > 0 {
		s.log(ctx).Info("Expired featured listings", "count", n)
	}
	return n, nil
}
