package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"goodhouse/internal/adapters/observability"
	"goodhouse/internal/domain"
)

const (
	DefaultBaseURL = "https://api.firecrawl.dev"
	service        = "firecrawl"
	maxBody        = 8 << 20
)

// Client talks to the Firecrawl v1 map and scrape endpoints.
type Client struct {
	base string
	key  string
	http *retryablehttp.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 2
	}

	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 60 * time.Second
	rc.Logger = retryLogger{}
	// hand the last response back instead of a bare "giving up" error
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		http: rc,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type mapRequest struct {
	URL               string `json:"url"`
	Limit             int    `json:"limit"`
	IncludeSubdomains bool   `json:"includeSubdomains"`
}

type mapResponse struct {
	Success bool     `json:"success"`
	Links   []string `json:"links"`
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
	WaitFor         int      `json:"waitFor"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Markdown string `json:"markdown"`
		HTML     string `json:"html"`
	} `json:"data"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Map discovers URLs on the site at url, same host only.
func (c *Client) Map(ctx context.Context, url string, limit int) ([]string, error) {
	var out mapResponse
	if err := c.post(ctx, "/v1/map", mapRequest{URL: url, Limit: limit}, &out); err != nil {
		return nil, err
	}
	if out.Links == nil {
		return []string{}, nil
	}
	return out.Links, nil
}

// Scrape fetches the rendered main content of url as markdown and HTML.
func (c *Client) Scrape(ctx context.Context, url string) (domain.ScrapedPage, error) {
	var out scrapeResponse
	req := scrapeRequest{
		URL:             url,
		Formats:         []string{"markdown", "html"},
		OnlyMainContent: true,
		WaitFor:         2000,
	}
	if err := c.post(ctx, "/v1/scrape", req, &out); err != nil {
		return domain.ScrapedPage{}, err
	}
	page := domain.ScrapedPage{Markdown: out.Markdown, HTML: out.HTML}
	if out.Data != nil {
		if out.Data.Markdown != "" {
			page.Markdown = out.Data.Markdown
		}
		if out.Data.HTML != "" {
			page.HTML = out.Data.HTML
		}
	}
	return page, nil
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "goodhouse/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: %w", service, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", service, endpoint, err)
	}
	if len(body) > maxBody {
		return errors.New("firecrawl: payload too large")
	}

	if resp.StatusCode >= 300 {
		return &domain.UpstreamError{Service: service, Status: resp.StatusCode, Body: errorMessage(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", service, endpoint, err)
	}
	return nil
}

// errorMessage prefers the API's {"error": "..."} field over the raw body.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}

// retryLogger routes retryablehttp's leveled logs to zerolog.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...interface{}) { log.Error().Fields(kv).Msg(msg) }
func (retryLogger) Info(msg string, kv ...interface{})  { log.Debug().Fields(kv).Msg(msg) }
func (retryLogger) Debug(msg string, kv ...interface{}) { log.Trace().Fields(kv).Msg(msg) }
func (retryLogger) Warn(msg string, kv ...interface{})  { log.Warn().Fields(kv).Msg(msg) }
