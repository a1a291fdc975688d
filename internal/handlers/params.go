package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/finora-app/finora-backend/internal/errs"
	"github.com/finora-app/finora-backend/internal/models"
)

const dateParamLayout = "2006-01-02"

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidationError("invalid JSON request body")
	}
	return nil
}

// dateParam accepts a plain date or a full RFC 3339 timestamp.
func dateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if d, err := time.Parse(dateParamLayout, raw); err == nil {
		return &d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return &d, nil
	}
	return nil, errs.NewValidationError(name + " must be an ISO date or RFC 3339 timestamp")
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

func typeParam(r *http.Request) (*models.TransactionType, error) {
	raw := r.URL.Query().Get("transaction_type")
	if raw == "" {
		return nil, nil
	}
	t := models.TransactionType(raw)
	if !t.Valid() {
		return nil, errs.NewValidationError(`transaction_type must be "income" or "expense"`)
	}
	return &t, nil
}

func stringParam(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
