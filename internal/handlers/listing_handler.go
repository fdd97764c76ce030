package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
	"arendaBack/utils"
)

const maxImageUploadBytes = 10 << 20

type ListingHandler struct {
	ListingService *service.ListingService
	Storage        *utils.Storage
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	created, err := h.ListingService.CreateListing(r.Context(), listing, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	listing, err := h.ListingService.GetListingByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) GetListingsByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid user id")
		return
	}

	listings, err := h.ListingService.GetListingsByUserID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	listing.ID = id

	updated, err := h.ListingService.UpdateListing(r.Context(), listing, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// PublishListing enforces the completeness invariant and flips the listing
// from draft to published.
func (h *ListingHandler) PublishListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	listing, err := h.ListingService.PublishListing(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	if err := h.ListingService.DeleteListing(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ListingHandler) GetFilteredListings(w http.ResponseWriter, r *http.Request) {
	var filter models.ListingFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	listings, err := h.ListingService.GetFilteredListings(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"listings": listings})
}

// UploadImages accepts multipart photo uploads, stores each file in object
// storage and appends the public URLs to the listing.
func (h *ListingHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "no images attached")
		return
	}

	var images []models.Image
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "unreadable image")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "unreadable image")
			return
		}

		name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(header.Filename))
		url, err := h.Storage.UploadFile(data, name, "listings")
		if err != nil {
			respondServiceError(w, err)
			return
		}
		images = append(images, models.Image{Path: url})
	}

	listing, err := h.ListingService.AddImages(r.Context(), id, userID, images)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}
