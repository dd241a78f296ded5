package domain

import "time"

type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingSale ListingType = "sale"
)

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

type PricePeriod string

const (
	PerYear  PricePeriod = "year"
	PerMonth PricePeriod = "month"
)

type SizeUnit string

const (
	UnitSqm   SizeUnit = "sqm"
	UnitSqft  SizeUnit = "sqft"
	UnitPlots SizeUnit = "plots"
)

type Location struct {
	State   string   `json:"state"`
	City    string   `json:"city"`
	Area    string   `json:"area"`
	Address *string  `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type Agent struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"company,omitempty"`
	Image   *string `json:"image,omitempty"`
}

// Property is a listing as shown to end users. Static catalog entries,
// approved submissions and scraped records all share this shape.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Type         ListingType  `json:"type"`
	PropertyType PropertyType `json:"propertyType"`
	Price        int64        `json:"price"`
	PriceUnit    *PricePeriod `json:"priceUnit,omitempty"`
	Location     Location     `json:"location"`
	Bedrooms     *int         `json:"bedrooms,omitempty"`
	Bathrooms    *int         `json:"bathrooms,omitempty"`
	Toilets      *int         `json:"toilets,omitempty"`
	Size         float64      `json:"size"`
	SizeUnit     SizeUnit     `json:"sizeUnit"`
	Image        string       `json:"image"`
	Images       []string     `json:"images,omitempty"`
	Features     []string     `json:"features"`
	Description  string       `json:"description"`
	Agent        Agent        `json:"agent"`
	IsVerified   bool         `json:"isVerified"`
	IsFeatured   bool         `json:"isFeatured"`
	IsServiced   bool         `json:"isServiced"`
	IsFurnished  bool         `json:"isFurnished"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func ValidListingType(s string) bool {
	switch ListingType(s) {
	case ListingRent, ListingSale:
		return true
	}
	return false
}

func ValidPropertyType(s string) bool {
	switch PropertyType(s) {
	case TypeApartment, TypeHouse, TypeLand, TypeCommercial:
		return true
	}
	return false
}
