package app_test

import (
	"reflect"
	"testing"

	"goodhouse/internal/app"
	"goodhouse/internal/catalog"
	"goodhouse/internal/domain"
)

func TestApplyFilter(t *testing.T) {
	props := catalog.Properties()

	cases := []struct {
		name string
		f    domain.Filter
		want []string
	}{
		{"no criteria", domain.Filter{}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"category all", domain.Filter{Category: "all"}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"category house", domain.Filter{Category: "house"}, []string{"1", "3", "6"}},
		{"rent only", domain.Filter{ListingType: domain.ListingRent}, []string{"2", "4", "6", "7"}},
		{"state is case insensitive", domain.Filter{State: "fct"}, []string{"5"}},
		{"locality", domain.Filter{State: "Lagos", City: "Lagos", Locality: "yaba"}, []string{"4"}},
		{"max price", domain.Filter{MaxPrice: ptr[int64](5_000_000)}, []string{"2", "4"}},
		{"price range", domain.Filter{MinPrice: ptr[int64](8_000_000), MaxPrice: ptr[int64](180_000_000)}, []string{"1", "6", "7", "8"}},
		{"min bedrooms skips unknown", domain.Filter{MinBedrooms: ptr(4)}, []string{"1", "3", "6"}},
		{"min bathrooms", domain.Filter{MinBathrooms: ptr(5)}, []string{"1", "3"}},
		{"size range", domain.Filter{MinSize: ptr(200.0), MaxSize: ptr(500.0)}, []string{"1", "6", "7"}},
		{"feature substring", domain.Filter{Features: []string{"pool"}}, []string{"1", "3"}},
		{"all features required", domain.Filter{Features: []string{"security", "PARKING"}}, []string{"2", "6"}},
		{"blank feature ignored", domain.Filter{Features: []string{" "}}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"serviced", domain.Filter{Serviced: ptr(true)}, []string{"2", "7"}},
		{"not featured", domain.Filter{Featured: ptr(false)}, []string{"4", "6", "7"}},
		{"combined", domain.Filter{Category: "apartment", ListingType: domain.ListingRent, Verified: ptr(true), MinBedrooms: ptr(3)}, []string{"2"}},
		{"nothing matches", domain.Filter{Category: "land", ListingType: domain.ListingRent}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(app.ApplyFilter(props, tc.f))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplyFilter_DoesNotMutateInput(t *testing.T) {
	props := catalog.Properties()
	_ = app.ApplyFilter(props, domain.Filter{Category: "house"})
	if len(props) != 8 || props[1].ID != "2" {
		t.Fatalf("input changed: %v", ids(props))
	}
}
