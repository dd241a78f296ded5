package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"goodhouse/internal/domain"
)

const (
	DefaultScrapeBase = "https://nigeriapropertycentre.com"
	ScrapeSource      = "nigeriapropertycentre"

	mapLimit      = 20
	maxDiscovered = 8
	rawSampleLen  = 2000
)

var propertyTypePaths = map[string]string{
	"house":      "/houses",
	"apartment":  "/flats-apartments",
	"land":       "/land",
	"commercial": "/commercial-property",
}

var numericIDPath = regexp.MustCompile(`/\d{4,}`)

// ScrapeService runs one map+scrape round against a listing site and
// parses the result. repo is only needed by ScrapeAndStore.
type ScrapeService struct {
	client   domain.ScrapeClient
	repo     domain.Repository
	listings *ListingService
	base     string
	now      func() time.Time
}

func NewScrapeService(c domain.ScrapeClient, r domain.Repository, ls *ListingService, base string) *ScrapeService {
	if base == "" {
		base = DefaultScrapeBase
	}
	return &ScrapeService{client: c, repo: r, listings: ls, base: strings.TrimRight(base, "/"), now: time.Now}
}

// TargetURL resolves the page to scrape. A listing type replaces any
// search URL with the site's rent or sale section; a known property type
// narrows it further.
func (s *ScrapeService) TargetURL(req domain.ScrapeRequest) (string, error) {
	target := s.base
	if req.SearchURL != "" {
		if err := s.checkSearchURL(req.SearchURL); err != nil {
			return "", err
		}
		target = strings.TrimRight(req.SearchURL, "/")
	}

	switch req.ListingType {
	case "rent":
		target = s.base + "/for-rent"
	case "sale":
		target = s.base + "/for-sale"
	case "":
	default:
		return "", fmt.Errorf("%w: unknown listing type %q", domain.ErrValidation, req.ListingType)
	}

	if req.PropertyType != "" && req.PropertyType != "all" {
		p, ok := propertyTypePaths[req.PropertyType]
		if !ok {
			return "", fmt.Errorf("%w: unknown property type %q", domain.ErrValidation, req.PropertyType)
		}
		target += p
	}
	return target, nil
}

// checkSearchURL keeps caller-supplied URLs on the configured site.
func (s *ScrapeService) checkSearchURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: searchUrl must be an absolute http(s) URL", domain.ErrValidation)
	}
	b, _ := url.Parse(s.base)
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	want := strings.TrimPrefix(strings.ToLower(b.Hostname()), "www.")
	if host != want {
		return fmt.Errorf("%w: searchUrl must point at %s", domain.ErrValidation, want)
	}
	return nil
}

// Scrape maps and scrapes the target page concurrently and parses the
// page markdown into listings. Upstream failures are returned as is.
func (s *ScrapeService) Scrape(ctx context.Context, req domain.ScrapeRequest) (domain.ScrapeResult, error) {
	target, err := s.TargetURL(req)
	if err != nil {
		return domain.ScrapeResult{}, err
	}
	log.Info().Str("url", target).Msg("scraping")

	var (
		links []string
		page  domain.ScrapedPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l, err := s.client.Map(gctx, target, mapLimit)
		if err != nil {
			return fmt.Errorf("map %s: %w", target, err)
		}
		links = l
		return nil
	})
	g.Go(func() error {
		p, err := s.client.Scrape(gctx, target)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", target, err)
		}
		page = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ScrapeResult{}, err
	}

	props := ParseListings(page.Markdown, target, s.now().UTC())
	log.Info().Str("url", target).Int("links", len(links)).Int("parsed", len(props)).Msg("scrape done")

	return domain.ScrapeResult{
		Properties:     props,
		SourceURL:      target,
		TotalFound:     len(props),
		DiscoveredURLs: ListingURLs(links),
		RawMarkdown:    truncateRunes(page.Markdown, rawSampleLen),
	}, nil
}

// ScrapeAndStore runs Scrape and upserts the parsed listings.
func (s *ScrapeService) ScrapeAndStore(ctx context.Context, req domain.ScrapeRequest) (domain.ScrapeResult, error) {
	res, err := s.Scrape(ctx, req)
	if err != nil {
		return res, err
	}
	if len(res.Properties) == 0 {
		return res, nil
	}
	if err := s.repo.UpsertListings(ctx, ScrapeSource, res.Properties); err != nil {
		return res, fmt.Errorf("store %d listings from %s: %w", len(res.Properties), res.SourceURL, err)
	}
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}
	return res, nil
}

// ListingURLs keeps links that look like listing pages, capped at eight.
func ListingURLs(links []string) []string {
	out := make([]string, 0, maxDiscovered)
	for _, l := range links {
		if len(out) == maxDiscovered {
			break
		}
		if strings.Contains(l, "/for-sale/") || strings.Contains(l, "/for-rent/") ||
			strings.Contains(l, "/property/") || numericIDPath.MatchString(l) {
			out = append(out, l)
		}
	}
	return out
}
