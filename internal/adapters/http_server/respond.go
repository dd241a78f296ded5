package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"goodhouse/internal/domain"
)

// envelope is the {success, error} shape of the function-style endpoints.
type envelope map[string]any

func ok(w http.ResponseWriter, r *http.Request, status int, fields envelope) {
	if fields == nil {
		fields = envelope{}
	}
	fields["success"] = true
	render.Status(r, status)
	render.JSON(w, r, fields)
}

func fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, envelope{"success": false, "error": msg})
}

// failErr maps service errors onto status codes. Unknown errors are logged
// and reported without detail.
func failErr(w http.ResponseWriter, r *http.Request, err error) {
	var ue *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidStatus):
		fail(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(w, r, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, domain.ErrUnauthorized):
		fail(w, r, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		fail(w, r, http.StatusNotFound, "Not found")
	case errors.As(err, &ue):
		status := ue.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		log.Warn().Err(err).Msg("upstream failure")
		fail(w, r, status, ue.Body)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		fail(w, r, http.StatusInternalServerError, "Internal error")
	}
}
