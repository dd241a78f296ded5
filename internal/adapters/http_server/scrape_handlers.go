package httpserver

import (
	"net/http"

	"github.com/go-chi/render"

	"goodhouse/internal/adapters/observability"
	"goodhouse/internal/domain"
)

func (h *Handlers) scrape(w http.ResponseWriter, r *http.Request) {
	if h.Scraper == nil {
		fail(w, r, http.StatusServiceUnavailable, "Scraping is not configured")
		return
	}
	var req domain.ScrapeRequest
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			fail(w, r, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	}

	res, err := h.Scraper.Scrape(r.Context(), req)
	if err != nil {
		failErr(w, r, err)
		return
	}
	for _, p := range res.Properties {
		observability.ObserveScraped(string(p.Type), string(p.PropertyType))
	}
	ok(w, r, http.StatusOK, envelope{"data": res})
}
