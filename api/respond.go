package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"finanspanel/models"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// fieldError reports an invalid request parameter
type fieldError struct {
	Field  string
	Reason string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var errLedgerSourceDisabled = errors.New("stored ledgers are not configured")

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

// respondError maps domain errors to status codes
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)

	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
	}

	respondJSON(w, status, errorResponse{Error: code, Detail: err.Error()})
}

func classifyError(err error) (int, string) {
	var (
		missing     *models.MissingColumnError
		unsupported *models.UnsupportedFormatError
		invalid     *models.InvalidCycleRangeError
		field       *fieldError
		tooLarge    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, "missing_columns"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large"
	case errors.Is(err, models.ErrUnknownExtension):
		return http.StatusBadRequest, "unsupported_format"
	case errors.As(err, &unsupported):
		return http.StatusUnprocessableEntity, "unreadable_file"
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_cycle_range"
	case errors.As(err, &field):
		return http.StatusBadRequest, "invalid_parameter"
	case errors.Is(err, errLedgerSourceDisabled):
		return http.StatusServiceUnavailable, "ledger_source_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}
	return http.StatusInternalServerError, "internal_error"
}
