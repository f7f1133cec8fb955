package storefront

import (
	"context"
	"errors"
	"log/slog"

	"appwatch/internal/domain/entity"
)

// LookupClient is the single-region lookup capability consumed by the
// Resolver. *Client implements it; tests substitute fakes.
type LookupClient interface {
	Lookup(ctx context.Context, appID, region string) (*entity.AppRelease, error)
}

// Resolver resolves an application's current release by querying an ordered
// region list and accepting the first region that returns a record.
type Resolver struct {
	client  LookupClient
	regions []string
	limit   int
}

// NewResolver creates a Resolver over the given region priority list.
//
// limit truncates the list to its first limit entries, trading lookup cost
// for coverage; 0 (or a value at or beyond the list length) searches the
// full list. An empty regions slice falls back to DefaultRegions.
func NewResolver(client LookupClient, regions []string, limit int) *Resolver {
	if len(regions) == 0 {
		regions = DefaultRegions
	}
	return &Resolver{
		client:  client,
		regions: regions,
		limit:   limit,
	}
}

// Resolve returns the release for the first region that matches appID.
//
// Iteration short-circuits on the first hit; regions after it are never
// queried. A transport failure for one region is treated as a miss for that
// region only and the loop continues. Exhausting the list returns
// entity.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, appID string) (*entity.AppRelease, error) {
	if appID == "" {
		return nil, entity.ErrInvalidInput
	}

	regions := r.regions
	if r.limit > 0 && r.limit < len(regions) {
		regions = regions[:r.limit]
	}

	for _, region := range regions {
		release, err := r.client.Lookup(ctx, appID, region)
		if err == nil {
			slog.Debug("app resolved",
				slog.String("app_id", appID),
				slog.String("region", region),
				slog.String("version", release.Version))
			return release, nil
		}

		if errors.Is(err, ErrAppNotFound) {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		slog.Warn("storefront lookup failed, trying next region",
			slog.String("app_id", appID),
			slog.String("region", region),
			slog.Any("error", err))
	}

	return nil, entity.ErrNotFound
}
