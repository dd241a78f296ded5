package app

import (
	"context"
	"fmt"
	"time"

	"goodhouse/internal/catalog"
	"goodhouse/internal/domain"
)

const (
	listingsCacheKey = "listings:all"

	DefaultPageLimit = 24
	MaxPageLimit     = 100
)

// ListingService serves the browse and details reads. The listing set is
// the static catalog, followed by approved submissions and then persisted
// scraped records. repo and cache may be nil.
type ListingService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
	static   []domain.Property
}

func NewListingService(r domain.Repository, c domain.Cache, ttl time.Duration) *ListingService {
	return &ListingService{repo: r, cache: c, cacheTTL: ttl, static: catalog.Properties()}
}

func (s *ListingService) ListListings(ctx context.Context, q domain.ListingsQuery) (domain.ListingsPage, error) {
	all, err := s.all(ctx)
	if err != nil {
		return domain.ListingsPage{}, err
	}
	matched := ApplyFilter(all, q.Filter)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	off := q.Offset
	if off < 0 {
		off = 0
	}
	if off > len(matched) {
		off = len(matched)
	}
	end := off + limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]domain.Property, end-off)
	copy(items, matched[off:end])
	return domain.ListingsPage{Items: items, Total: len(matched)}, nil
}

// GetListing returns a listing with its display labels and a price insight
// computed against the full listing set.
func (s *ListingService) GetListing(ctx context.Context, id string) (domain.ListingDetails, error) {
	all, err := s.all(ctx)
	if err != nil {
		return domain.ListingDetails{}, err
	}
	for _, p := range all {
		if p.ID != id {
			continue
		}
		return domain.ListingDetails{
			Property:     p,
			PriceLabel:   PriceLabel(p),
			PriceFull:    FormatPriceFull(p.Price),
			PriceInsight: ComparePrice(p, all),
			MapsURL:      MapsURL(p),
			Geohash:      Geohash(p),
		}, nil
	}
	return domain.ListingDetails{}, fmt.Errorf("listing %q: %w", id, domain.ErrNotFound)
}

// Invalidate drops the cached listing set.
func (s *ListingService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, listingsCacheKey)
	}
}

func (s *ListingService) all(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, listingsCacheKey, &out); ok {
			return out, nil
		}
	}

	out = make([]domain.Property, len(s.static))
	copy(out, s.static)
	if s.repo == nil {
		return out, nil
	}

	approved := domain.StatusApproved
	subs, err := s.repo.ListSubmissions(ctx, &approved)
	if err != nil {
		return nil, fmt.Errorf("list approved submissions: %w", err)
	}
	for _, sub := range subs {
		out = append(out, sub.AsProperty())
	}

	stored, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored listings: %w", err)
	}
	out = append(out, stored...)

	if s.cache != nil {
		_ = s.cache.Set(ctx, listingsCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
