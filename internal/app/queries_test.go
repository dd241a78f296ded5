package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"goodhouse/internal/app"
	"goodhouse/internal/domain"
)

func seededRepo() *fakeRepo {
	return &fakeRepo{
		listings: []domain.Property{
			{ID: "scraped-1", Title: "Scraped flat", Type: domain.ListingRent, PropertyType: domain.TypeApartment,
				Price: 2_000_000, Size: 100, SizeUnit: domain.UnitSqm,
				Location: domain.Location{State: "Lagos", City: "Lagos", Area: "Yaba"}},
		},
		subs: []domain.Submission{
			{ID: "a1", Title: "Approved duplex", ListingType: domain.ListingSale, PropertyType: domain.TypeHouse,
				Price: 95_000_000, State: "Lagos", City: "Lagos", Locality: "Lekki Phase 1", Size: 300,
				Bedrooms: 4, Status: domain.StatusApproved},
			{ID: "p1", Title: "Pending flat", ListingType: domain.ListingRent, PropertyType: domain.TypeApartment,
				Price: 1_000_000, State: "Lagos", City: "Lagos", Locality: "Yaba", Status: domain.StatusPending},
		},
	}
}

func TestListListings_MergesSources(t *testing.T) {
	ls := app.NewListingService(seededRepo(), nil, time.Minute)

	page, err := ls.ListListings(context.Background(), domain.ListingsQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"1", "2", "3", "4", "5", "6", "7", "8", "sub-a1", "scraped-1"}
	if !reflect.DeepEqual(ids(page.Items), want) || page.Total != len(want) {
		t.Fatalf("got %v total=%d", ids(page.Items), page.Total)
	}
}

func TestListListings_StaticOnlyWithoutRepo(t *testing.T) {
	ls := app.NewListingService(nil, nil, time.Minute)
	page, err := ls.ListListings(context.Background(), domain.ListingsQuery{Filter: domain.Filter{Category: "land"}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(ids(page.Items), []string{"5", "8"}) {
		t.Fatalf("got %v", ids(page.Items))
	}
}

func TestListListings_Pagination(t *testing.T) {
	ls := app.NewListingService(nil, nil, time.Minute)
	ctx := context.Background()

	page, _ := ls.ListListings(ctx, domain.ListingsQuery{Limit: 3, Offset: 2})
	if !reflect.DeepEqual(ids(page.Items), []string{"3", "4", "5"}) || page.Total != 8 {
		t.Fatalf("got %v total=%d", ids(page.Items), page.Total)
	}

	page, _ = ls.ListListings(ctx, domain.ListingsQuery{Limit: 3, Offset: 50})
	if len(page.Items) != 0 || page.Items == nil || page.Total != 8 {
		t.Fatalf("past the end: %v total=%d", page.Items, page.Total)
	}
}

func TestListListings_CacheMissThenHit(t *testing.T) {
	repo := seededRepo()
	cache := &fakeCache{}
	ls := app.NewListingService(repo, cache, 10*time.Minute)
	ctx := context.Background()

	if _, err := ls.ListListings(ctx, domain.ListingsQuery{}); err != nil {
		t.Fatalf("err: %v", err)
	}
	// Mutate repo to ensure the second read comes from cache
	repo.listings = nil

	page, err := ls.ListListings(ctx, domain.ListingsQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if page.Total != 10 || repo.listCalls != 1 {
		t.Fatalf("expected cached set, total=%d calls=%d", page.Total, repo.listCalls)
	}

	ls.Invalidate(ctx)
	page, _ = ls.ListListings(ctx, domain.ListingsQuery{})
	if page.Total != 9 || repo.listCalls != 2 {
		t.Fatalf("expected reload after invalidate, total=%d calls=%d", page.Total, repo.listCalls)
	}
}

func TestListListings_RepoError(t *testing.T) {
	repo := seededRepo()
	repo.err = errors.New("db down")
	ls := app.NewListingService(repo, nil, time.Minute)
	if _, err := ls.ListListings(context.Background(), domain.ListingsQuery{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetListing(t *testing.T) {
	ls := app.NewListingService(seededRepo(), nil, time.Minute)

	d, err := ls.GetListing(context.Background(), "1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d.Property.ID != "1" || d.PriceLabel != "₦180.0M" || d.PriceFull != "₦180,000,000" {
		t.Fatalf("labels: %+v", d)
	}
	if d.MapsURL != "https://www.google.com/maps/search/Lekki%20Phase%201%2C%20Lagos" {
		t.Fatalf("maps url %s", d.MapsURL)
	}
	// #1 shares its area with the approved Lekki Phase 1 submission.
	if d.PriceInsight == nil || d.PriceInsight.Basis != "area" || d.PriceInsight.ComparableCount != 1 {
		t.Fatalf("insight %+v", d.PriceInsight)
	}
	if d.PriceInsight.Verdict != "above" {
		t.Fatalf("verdict %s", d.PriceInsight.Verdict)
	}

	sub, err := ls.GetListing(context.Background(), "sub-a1")
	if err != nil || sub.Property.Title != "Approved duplex" {
		t.Fatalf("submission listing: %+v %v", sub.Property, err)
	}
}

func TestGetListing_NotFound(t *testing.T) {
	ls := app.NewListingService(nil, nil, time.Minute)
	if _, err := ls.GetListing(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := ls.GetListing(context.Background(), "sub-p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("pending submissions must not be served: %v", err)
	}
}
