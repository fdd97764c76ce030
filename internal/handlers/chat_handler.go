package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
)

type ChatHandler struct {
	ChatService *service.ChatService
}

// OpenChat is the idempotent open-or-create: posting the same listing twice
// returns the same thread.
func (h *ChatHandler) OpenChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	var req models.OpenChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.ListingID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "listing_id is required")
		return
	}

	chat, err := h.ChatService.OpenChat(r.Context(), req.ListingID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid chat id")
		return
	}

	chat, err := h.ChatService.GetChatForUser(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chat)
}

// GetChats is the caller's inbox: threads ordered by most recent activity,
// each with last message preview and unread count.
func (h *ChatHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	threads, err := h.ChatService.GetThreadsByUserID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if threads == nil {
		threads = []models.ChatThread{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"chats": threads})
}
