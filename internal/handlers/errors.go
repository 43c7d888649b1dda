package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/ruralpay/accounts/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

// writeError maps a service error to its HTTP status. Faults that indicate
// diverged stores or misconfiguration are logged and never echoed in detail.
func writeError(w http.ResponseWriter, err error) {
	var ruleErr *services.RuleViolationError

	switch {
	case errors.Is(err, services.ErrIntegrityFault):
		log.Printf("[HTTP] Integrity fault: %v", err)
		sendKind(w, http.StatusInternalServerError, "INTEGRITY_FAULT", "", "Transaction could not be fully recorded")
	case errors.Is(err, services.ErrUnsupportedType):
		log.Printf("[HTTP] Unsupported type reached posting: %v", err)
		sendKind(w, http.StatusInternalServerError, "UNSUPPORTED_TYPE", "", err.Error())
	case errors.Is(err, services.ErrNotFound):
		sendKind(w, http.StatusNotFound, "NOT_FOUND", "", err.Error())
	case errors.As(err, &ruleErr):
		sendKind(w, http.StatusUnprocessableEntity, "RULE_VIOLATION", ruleErr.Rule, ruleErr.Message)
	case errors.Is(err, services.ErrInsufficientFunds):
		sendKind(w, http.StatusConflict, "INSUFFICIENT_FUNDS", "", err.Error())
	case errors.Is(err, services.ErrConcurrentModification):
		sendKind(w, http.StatusConflict, "CONCURRENT_MODIFICATION", "", err.Error())
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func sendKind(w http.ResponseWriter, status int, kind, rule, message string) {
	services.SendJSON(w, status, services.ErrorResponse{Error: message, Kind: kind, Rule: rule})
}

// decodeBody reads exactly one JSON object into dst, rejecting unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}
