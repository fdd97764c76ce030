package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
)

type SavedSearchHandler struct {
	SavedSearchService *service.SavedSearchService
}

func (h *SavedSearchHandler) CreateSavedSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	var search models.SavedSearch
	if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	search.UserID = userID

	created, err := h.SavedSearchService.CreateSavedSearch(r.Context(), search)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *SavedSearchHandler) GetSavedSearches(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	searches, err := h.SavedSearchService.GetSavedSearchesByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if searches == nil {
		searches = []models.SavedSearch{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"saved_searches": searches})
}

func (h *SavedSearchHandler) DeleteSavedSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid saved search id")
		return
	}

	if err := h.SavedSearchService.DeleteSavedSearch(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
