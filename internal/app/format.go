package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcloughlin/geohash"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"goodhouse/internal/domain"
)

const geohashChars = 7

var printer = message.NewPrinter(language.English)

// FormatPrice renders a compact naira amount: ₦180.0M, ₦1.5B, ₦450K.
func FormatPrice(price int64) string {
	f := float64(price)
	switch {
	case price >= 1_000_000_000:
		return fmt.Sprintf("₦%.1fB", f/1_000_000_000)
	case price >= 1_000_000:
		return fmt.Sprintf("₦%.1fM", f/1_000_000)
	case price >= 1_000:
		return fmt.Sprintf("₦%.0fK", f/1_000)
	}
	return FormatPriceFull(price)
}

// FormatPriceFull renders the amount with thousands separators: ₦4,500,000.
func FormatPriceFull(price int64) string {
	return printer.Sprintf("₦%d", price)
}

// PriceLabel is the compact price plus the rent period, if any.
func PriceLabel(p domain.Property) string {
	s := FormatPrice(p.Price)
	if p.Type == domain.ListingRent && p.PriceUnit != nil {
		s += "/" + string(*p.PriceUnit)
	}
	return s
}

// MapsURL links to the listing on Google Maps: by coordinates when known,
// otherwise by a text search on address or "area, city".
func MapsURL(p domain.Property) string {
	if p.Location.Lat != nil && p.Location.Lng != nil {
		return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", *p.Location.Lat, *p.Location.Lng)
	}
	q := p.Location.Area + ", " + p.Location.City
	if p.Location.Address != nil && strings.TrimSpace(*p.Location.Address) != "" {
		q = *p.Location.Address
	}
	return "https://www.google.com/maps/search/" + url.PathEscape(q)
}

// Geohash returns a ~150m cell for listings with coordinates, else "".
func Geohash(p domain.Property) string {
	if p.Location.Lat == nil || p.Location.Lng == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(*p.Location.Lat, *p.Location.Lng, geohashChars)
}
