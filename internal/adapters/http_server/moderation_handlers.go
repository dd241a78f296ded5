package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"goodhouse/internal/adapters/observability"
	"goodhouse/internal/domain"
)

const maxSubmissionBytes = 64 << 10

type loginRequest struct {
	Password string `json:"password"`
}

type statusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

func (h *Handlers) createSubmission(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(w, r, http.StatusRequestEntityTooLarge, "Submission too large")
			return
		}
		fail(w, r, http.StatusBadRequest, "Unreadable body")
		return
	}
	sub, err := h.Moderation.Submit(r.Context(), body)
	if err != nil {
		failErr(w, r, err)
		return
	}
	ok(w, r, http.StatusCreated, envelope{"submission": sub})
}

func (h *Handlers) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		fail(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	token, err := h.Moderation.Login(r.Context(), req.Password)
	if err != nil {
		failErr(w, r, err)
		return
	}
	ok(w, r, http.StatusOK, envelope{"token": token})
}

func (h *Handlers) listSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Moderation.ListSubmissions(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		failErr(w, r, err)
		return
	}
	ok(w, r, http.StatusOK, envelope{"submissions": subs})
}

func (h *Handlers) updateSubmission(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		fail(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Moderation.UpdateStatus(r.Context(), id, req.Status, req.RejectionReason); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "Submission not found")
			return
		}
		failErr(w, r, err)
		return
	}
	observability.ObserveModeration(req.Status)
	ev := log.Info().Str("submission", id).Str("status", req.Status)
	if c, found := ClaimsFrom(r.Context()); found {
		ev = ev.Str("admin", c.Subject).Str("token_id", c.TokenID)
	}
	ev.Msg("submission reviewed")
	ok(w, r, http.StatusOK, nil)
}
