package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finanspanel/ingest"
	"finanspanel/models"
	"finanspanel/service"
)

// dateOnlyLayout marks a date_to bound that covers the whole day
const dateOnlyLayout = "2006-01-02"

// readUpload decodes the multipart "file" field of a request
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*models.LedgerTable, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", asFieldError("file", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &fieldError{Field: "file", Reason: "a ledger file is required"}
	}
	defer file.Close()

	return ingest.Decode(header.Filename, file)
}

// asFieldError keeps size-limit errors intact and turns other parse errors into field errors
func asFieldError(field string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return &fieldError{Field: field, Reason: err.Error()}
}

// analysisRequest reads the shared analysis parameters from query or form values
func analysisRequest(r *http.Request, accountID string) (service.AnalysisRequest, error) {
	req := service.AnalysisRequest{AccountID: accountID}
	if req.AccountID == "" {
		req.AccountID = strings.TrimSpace(r.FormValue("member_id"))
	}

	index, err := optionalInt(r, "cycle_index")
	if err != nil {
		return req, err
	}
	if index != nil {
		req.CycleFrom, req.CycleTo = index, index
	}
	if req.CycleFrom == nil {
		if req.CycleFrom, err = optionalInt(r, "cycle_from"); err != nil {
			return req, err
		}
	}
	if req.CycleTo == nil {
		if req.CycleTo, err = optionalInt(r, "cycle_to"); err != nil {
			return req, err
		}
	}

	if v := strings.TrimSpace(r.FormValue("threshold_minutes")); v != "" {
		minutes, err := strconv.ParseFloat(v, 64)
		if err != nil || minutes <= 0 {
			return req, &fieldError{Field: "threshold_minutes", Reason: "must be a positive number"}
		}
		req.LateThreshold = time.Duration(minutes * float64(time.Minute))
	}

	if req.DateFrom, err = optionalTime(r, "date_from", false); err != nil {
		return req, err
	}
	if req.DateTo, err = optionalTime(r, "date_to", true); err != nil {
		return req, err
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return req, &fieldError{Field: "date_to", Reason: "must not be before date_from"}
	}

	return req, nil
}

func optionalInt(r *http.Request, field string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &fieldError{Field: field, Reason: "must be an integer"}
	}
	return &n, nil
}

// optionalTime parses a date bound; a date-only upper bound extends to the end of that day
func optionalTime(r *http.Request, field string, endOfDay bool) (*time.Time, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	t := service.ParseTimestamp(v)
	if t == nil {
		return nil, &fieldError{Field: field, Reason: "unrecognized date"}
	}
	if endOfDay {
		if _, err := time.Parse(dateOnlyLayout, v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			return &end, nil
		}
	}
	return t, nil
}
