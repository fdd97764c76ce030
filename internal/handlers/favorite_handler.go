package handlers

import (
	"encoding/json"
	"net/http"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
)

type FavoriteHandler struct {
	FavoriteService *service.FavoriteService
}

// ToggleFavorite adds the listing to the caller's favorites, or removes it if
// already present. The response reports the resulting state.
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	var req models.ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.ListingID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "listing_id is required")
		return
	}

	result, err := h.FavoriteService.ToggleFavorite(r.Context(), userID, req.ListingID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	favorites, err := h.FavoriteService.GetFavoritesByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}
