package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
)

// LiveDelivery pushes a freshly stored message to the recipient's open
// WebSocket connection, if any. Implemented by the cmd-level hub.
type LiveDelivery interface {
	Deliver(userID int, message models.Message)
}

type MessageHandler struct {
	MessageService *service.MessageService
	Live           LiveDelivery
}

func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	chatID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || chatID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid chat id")
		return
	}

	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	message, err := h.MessageService.PostMessage(r.Context(), chatID, userID, req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if h.Live != nil {
		h.Live.Deliver(message.RecipientID, message)
	}
	respondJSON(w, http.StatusCreated, message)
}

// GetMessages lists a thread ascending by creation time. Optional ?limit=.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	chatID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || chatID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid chat id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer")
			return
		}
	}

	messages, err := h.MessageService.GetMessages(r.Context(), chatID, userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// MarkRead stamps every unread message addressed to the caller in the thread.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	chatID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || chatID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid chat id")
		return
	}

	if err := h.MessageService.MarkRead(r.Context(), chatID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
