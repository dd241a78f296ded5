package app

import (
	"math"
	"strings"

	"goodhouse/internal/domain"
)

// insightThreshold is the deviation, in percent, inside which a price is
// reported as around average.
const insightThreshold = 5.0

type comparisonLevel struct {
	basis string
	same  func(a, b domain.Property) bool
}

var comparisonLevels = []comparisonLevel{
	{"area", func(a, b domain.Property) bool { return eqNonEmpty(a.Location.Area, b.Location.Area) }},
	{"city", func(a, b domain.Property) bool { return eqNonEmpty(a.Location.City, b.Location.City) }},
	{"state", func(a, b domain.Property) bool { return eqNonEmpty(a.Location.State, b.Location.State) }},
	{"type", func(a, b domain.Property) bool { return true }},
}

// ComparePrice benchmarks target's price per unit of size against other
// listings of the same listing type and size unit, widening the comparable
// set from area to city to state to listing type until it is non-empty.
// It returns nil when no comparable set exists.
func ComparePrice(target domain.Property, all []domain.Property) *domain.PriceInsight {
	own, ok := pricePerUnit(target)
	if !ok {
		return nil
	}

	for _, lvl := range comparisonLevels {
		var sum float64
		n := 0
		for _, p := range all {
			if p.ID == target.ID || p.Type != target.Type || p.SizeUnit != target.SizeUnit {
				continue
			}
			if !lvl.same(target, p) {
				continue
			}
			v, ok := pricePerUnit(p)
			if !ok {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			continue
		}

		avg := sum / float64(n)
		dev := (own - avg) / avg * 100
		verdict := "average"
		switch {
		case dev > insightThreshold:
			verdict = "above"
		case dev < -insightThreshold:
			verdict = "below"
		}
		return &domain.PriceInsight{
			PricePerUnit:    math.Round(own),
			AveragePerUnit:  math.Round(avg),
			DeviationPct:    math.Round(dev*10) / 10,
			Verdict:         verdict,
			Basis:           lvl.basis,
			ComparableCount: n,
			SizeUnit:        target.SizeUnit,
		}
	}
	return nil
}

// pricePerUnit annualises monthly rents so rent listings compare on the
// same footing.
func pricePerUnit(p domain.Property) (float64, bool) {
	if p.Size <= 0 || p.Price <= 0 {
		return 0, false
	}
	price := float64(p.Price)
	if p.Type == domain.ListingRent && p.PriceUnit != nil && *p.PriceUnit == domain.PerMonth {
		price *= 12
	}
	return price / p.Size, true
}

func eqNonEmpty(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
