package domain

import (
	"context"
	"time"
)

type Repository interface {
	// Write paths
	UpsertListings(ctx context.Context, source string, ps []Property) error
	CreateSubmission(ctx context.Context, s Submission) error
	UpdateSubmissionStatus(ctx context.Context, id string, u StatusUpdate) error

	// Read paths
	ListListings(ctx context.Context) ([]Property, error)
	ListSubmissions(ctx context.Context, status *SubmissionStatus) ([]Submission, error)
	GetSetting(ctx context.Context, key string) (string, error)
}

// ScrapeClient is the third-party map/scrape API (or a direct fetcher
// standing in for it).
type ScrapeClient interface {
	Map(ctx context.Context, url string, limit int) ([]string, error)
	Scrape(ctx context.Context, url string) (ScrapedPage, error)
}

type ScrapedPage struct {
	Markdown string
	HTML     string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type TokenIssuer interface {
	Issue(ctx context.Context, subject string, ttl time.Duration) (string, error)
	Verify(ctx context.Context, token string) (Claims, error)
}

type Claims struct {
	Subject   string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Read models & queries

type ListingsQuery struct {
	Filter Filter
	Limit  int
	Offset int
}

type ListingsPage struct {
	Items []Property `json:"items"`
	Total int        `json:"total"`
}

// Filter holds the browse criteria. Zero values and nil pointers mean
// "no constraint".
type Filter struct {
	Category     string
	State        string
	City         string
	Locality     string
	ListingType  ListingType
	MinPrice     *int64
	MaxPrice     *int64
	MinBedrooms  *int
	MinBathrooms *int
	MinSize      *float64
	MaxSize      *float64
	Features     []string
	Verified     *bool
	Serviced     *bool
	Furnished    *bool
	Featured     *bool
}

type PriceInsight struct {
	PricePerUnit    float64  `json:"pricePerUnit"`
	AveragePerUnit  float64  `json:"averagePerUnit"`
	DeviationPct    float64  `json:"deviationPct"`
	Verdict         string   `json:"verdict"` // above|below|average
	Basis           string   `json:"basis"`   // area|city|state|type
	ComparableCount int      `json:"comparableCount"`
	SizeUnit        SizeUnit `json:"sizeUnit"`
}

type ListingDetails struct {
	Property     Property      `json:"property"`
	PriceLabel   string        `json:"priceLabel"`
	PriceFull    string        `json:"priceFull"`
	PriceInsight *PriceInsight `json:"priceInsight"`
	MapsURL      string        `json:"mapsUrl"`
	Geohash      string        `json:"geohash,omitempty"`
}

type ScrapeRequest struct {
	SearchURL    string `json:"searchUrl,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`
	ListingType  string `json:"listingType,omitempty"`
}

type ScrapeResult struct {
	Properties     []Property `json:"properties"`
	SourceURL      string     `json:"sourceUrl"`
	TotalFound     int        `json:"totalFound"`
	DiscoveredURLs []string   `json:"discoveredUrls"`
	RawMarkdown    string     `json:"rawMarkdown,omitempty"`
}
