package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/calculator"
	"github.com/hackgods/healthcare-plus/internal/content"
	"github.com/hackgods/healthcare-plus/internal/records"
	"github.com/hackgods/healthcare-plus/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// maxRequestBody caps every JSON form body.
const maxRequestBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body exceeds 1 MiB")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	return true
}

// handleError maps domain errors onto HTTP responses.
func handleError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var verr *records.ValidationError
	var rerr *calculator.RangeError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Details: verr.Error(),
			Field:   verr.Field,
		})
	case errors.As(err, &rerr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "out_of_range",
			Details: rerr.Error(),
			Field:   rerr.Param,
		})
	case errors.Is(err, calculator.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "out_of_range", err.Error())
	case errors.Is(err, content.ErrInvalidReport):
		writeError(w, http.StatusBadRequest, "invalid_report", err.Error())
	case errors.Is(err, content.ErrUnknownPage):
		writeError(w, http.StatusNotFound, "page_not_found", err.Error())
	case errors.Is(err, content.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, session.ErrSessionBusy):
		writeError(w, http.StatusConflict, "session_busy", "another request is using this session, please retry shortly")
	default:
		logger.Error().Err(err).Msg("unhandled request error")
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
