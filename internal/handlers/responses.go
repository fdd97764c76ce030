package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"arendaBack/internal/models"
)

// errorResponse is the error envelope shared by every route:
// {"error": "...", "message": "..."}.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}

// respondServiceError translates sentinel errors into the HTTP taxonomy:
// 400 validation, 401 credentials, 403 forbidden, 404 not found, 409 state
// conflict, 500 otherwise (store message passed through for diagnostics).
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidDateRange),
		errors.Is(err, models.ErrSelfBooking),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrListingIncomplete):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "invalid credentials")
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrNotChatMember):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, models.ErrListingNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrChatNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrSavedSearchNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrBookingOverlap),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case isForeignKeyConstraintError(err):
		respondError(w, http.StatusBadRequest, "validation_error", "referenced record does not exist")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// callerID returns the authenticated user id placed in the request context
// by the JWT middleware.
func callerID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok && id > 0
}
