package app

import (
	"strings"

	"golang.org/x/text/cases"

	"goodhouse/internal/domain"
)

var folder = cases.Fold()

// ApplyFilter returns the properties matching every active criterion of f,
// in input order.
func ApplyFilter(props []domain.Property, f domain.Filter) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies f. A property that lacks a value
// (no bedroom count, say) fails any active constraint on that value.
func Matches(p domain.Property, f domain.Filter) bool {
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		if !strings.EqualFold(c, string(p.PropertyType)) {
			return false
		}
	}
	if !sameText(f.State, p.Location.State) ||
		!sameText(f.City, p.Location.City) ||
		!sameText(f.Locality, p.Location.Area) {
		return false
	}
	if f.ListingType != "" && p.Type != f.ListingType {
		return false
	}

	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms < *f.MinBedrooms) {
		return false
	}
	if f.MinBathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms < *f.MinBathrooms) {
		return false
	}
	if f.MinSize != nil && p.Size < *f.MinSize {
		return false
	}
	if f.MaxSize != nil && p.Size > *f.MaxSize {
		return false
	}

	if !hasFeatures(p.Features, f.Features) {
		return false
	}

	if f.Verified != nil && p.IsVerified != *f.Verified {
		return false
	}
	if f.Serviced != nil && p.IsServiced != *f.Serviced {
		return false
	}
	if f.Furnished != nil && p.IsFurnished != *f.Furnished {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	return true
}

// sameText is a case-insensitive equality check where an empty want
// matches anything.
func sameText(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}

// hasFeatures requires each wanted tag to be contained in at least one of
// the property's features.
func hasFeatures(have, want []string) bool {
	for _, w := range want {
		w = folder.String(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		found := false
		for _, h := range have {
			if strings.Contains(folder.String(h), w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
