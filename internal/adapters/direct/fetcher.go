package direct

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/rs/zerolog/log"

	"goodhouse/internal/adapters/observability"
	"goodhouse/internal/domain"
)

const service = "direct"

// Fetcher is a scrape client that downloads pages itself. It stands in for
// the hosted scrape API when no API key is configured, so it renders no
// JavaScript and converts HTML to a rough markdown.
type Fetcher struct {
	collector *colly.Collector
}

func New() *Fetcher {
	c := colly.NewCollector(colly.AllowURLRevisit(), colly.UserAgent("Mozilla/5.0 (compatible; goodhouse/1.0)"))
	c.SetRequestTimeout(30 * time.Second)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 500 * time.Millisecond}); err != nil {
		log.Warn().Err(err).Msg("direct fetcher: limit rule")
	}
	return &Fetcher{collector: c}
}

// Map collects same-host links found on the page at pageURL.
func (f *Fetcher) Map(ctx context.Context, pageURL string, limit int) ([]string, error) {
	host, err := hostOf(pageURL)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := f.collector.Clone()
	extensions.Referer(c)
	links := []string{}
	seen := map[string]bool{}
	var fetchErr error

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if limit > 0 && len(links) >= limit {
			return
		}
		abs := e.Request.AbsoluteURL(e.Attr("href"))
		u, err := url.Parse(abs)
		if err != nil || !sameHost(u.Hostname(), host) || seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = upstream(r, err)
	})

	start := time.Now()
	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()
	observability.ObserveExternal(service, "map", statusOf(fetchErr), time.Since(start))

	if fetchErr != nil {
		return nil, fetchErr
	}
	return links, nil
}

// Scrape downloads pageURL and renders its main content as markdown.
func (f *Fetcher) Scrape(ctx context.Context, pageURL string) (domain.ScrapedPage, error) {
	if _, err := hostOf(pageURL); err != nil {
		return domain.ScrapedPage{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ScrapedPage{}, err
	}

	c := f.collector.Clone()
	extensions.Referer(c)
	var page domain.ScrapedPage
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		page.HTML = string(r.Body)
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		page.Markdown = Markdown(e.DOM)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = upstream(r, err)
	})

	start := time.Now()
	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()
	observability.ObserveExternal(service, "scrape", statusOf(fetchErr), time.Since(start))

	if fetchErr != nil {
		return domain.ScrapedPage{}, fetchErr
	}
	return page, nil
}

// Markdown renders headings, paragraphs and list items of the main content
// (the <main> element when present) as markdown blocks.
func Markdown(doc *goquery.Selection) string {
	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	root.Find("script, style, nav, footer, header, noscript").Remove()

	var sb strings.Builder
	root.Find("h1, h2, h3, h4, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1":
			sb.WriteString("# ")
		case "h2":
			sb.WriteString("## ")
		case "h3", "h4":
			sb.WriteString("### ")
		case "li":
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	})
	return strings.TrimSpace(sb.String())
}

func upstream(r *colly.Response, err error) error {
	if r != nil && r.StatusCode >= 300 {
		return &domain.UpstreamError{Service: service, Status: r.StatusCode, Body: err.Error()}
	}
	return fmt.Errorf("%s: %w", service, err)
}

func statusOf(err error) int {
	if err == nil {
		return 200
	}
	if ue, ok := err.(*domain.UpstreamError); ok {
		return ue.Status
	}
	return 0
}

func hostOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: not an http(s) URL: %q", domain.ErrValidation, raw)
	}
	return u.Hostname(), nil
}

func sameHost(a, b string) bool {
	return strings.TrimPrefix(strings.ToLower(a), "www.") == strings.TrimPrefix(strings.ToLower(b), "www.")
}
