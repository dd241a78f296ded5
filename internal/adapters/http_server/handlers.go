package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"goodhouse/internal/app"
	"goodhouse/internal/catalog"
	"goodhouse/internal/domain"
)

// Handlers wires the use cases to routes. Scraper may be nil when scraping
// is disabled.
type Handlers struct {
	Listings   *app.ListingService
	Moderation *app.ModerationService
	Scraper    *app.ScrapeService
	Tokens     domain.TokenIssuer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/listings", h.listListings)
		r.Get("/listings/{id}", h.getListing)

		r.Get("/locations", h.locationTree)
		r.Get("/locations/states", h.listStates)
		r.Get("/locations/states/{state}/cities", h.listCities)
		r.Get("/locations/states/{state}/cities/{city}/localities", h.listLocalities)

		r.Post("/submissions", h.createSubmission)
		r.With(httprate.LimitByIP(10, time.Minute)).Post("/admin/login", h.adminLogin)
		r.Group(func(r chi.Router) {
			r.Use(AdminAuth(h.Tokens))
			r.Get("/admin/submissions", h.listSubmissions)
			r.Patch("/admin/submissions/{id}", h.updateSubmission)
		})

		r.With(httprate.LimitByIP(5, time.Minute)).Post("/scrape", h.scrape)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers 304 when the client already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) listListings(w http.ResponseWriter, r *http.Request) {
	q, err := parseListingsQuery(r.URL.Query())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	page, err := h.Listings.ListListings(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list listings")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeCached(w, r, page)
}

func (h *Handlers) getListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := h.Listings.GetListing(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "listing not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("get listing")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeCached(w, r, d)
}

func (h *Handlers) locationTree(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, catalog.Tree())
}

func (h *Handlers) listStates(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, catalog.States())
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, catalog.Cities(pathParam(r, "state")))
}

func (h *Handlers) listLocalities(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, catalog.Localities(pathParam(r, "state"), pathParam(r, "city")))
}

// pathParam returns the decoded URL parameter; chi hands back the escaped
// form when the request path carried escapes.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}
