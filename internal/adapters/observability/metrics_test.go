package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goodhouse/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors show up in the output
	observability.ObserveHTTP("/v1/listings", "GET", 200, 12*time.Millisecond)
	observability.ObserveScraped("rent", "apartment")
	observability.ObserveModeration("approved")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"goodhouse_http_requests_total",
		"goodhouse_scraped_listings_total",
		"goodhouse_moderation_decisions_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewLogger_WritesToSinks(t *testing.T) {
	var sink strings.Builder
	l := observability.NewLogger("prod", &sink)
	l.Info().Str("k", "v").Msg("hello")

	if !strings.Contains(sink.String(), `"message":"hello"`) || !strings.Contains(sink.String(), `"service":"goodhouse"`) {
		t.Fatalf("sink got %q", sink.String())
	}
}
