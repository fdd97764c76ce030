package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"arendaBack/internal/models"
	service "arendaBack/internal/services"
)

type BookingHandler struct {
	BookingService *service.BookingService
}

type bookingActionRequest struct {
	Action string `json:"action"`
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.ListingID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "listing_id is required")
		return
	}
	start, err := parseDay(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "end_date must be YYYY-MM-DD")
		return
	}

	booking, err := h.BookingService.CreateBooking(r.Context(), req.ListingID, userID, start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

// DecideBooking handles PATCH /booking/:id with {"action": approve|decline|cancel}.
// Approve/decline are owner actions, cancel is the tenant's.
func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid booking id")
		return
	}

	var req bookingActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	var booking models.Booking
	switch req.Action {
	case "approve":
		booking, err = h.BookingService.DecideBooking(r.Context(), id, userID, true)
	case "decline":
		booking, err = h.BookingService.DecideBooking(r.Context(), id, userID, false)
	case "cancel":
		booking, err = h.BookingService.CancelBooking(r.Context(), id, userID)
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "action must be approve, decline or cancel")
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// UpdatePayment handles POST /booking/:id/payment with {"action": mark_paid|refund}.
func (h *BookingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid booking id")
		return
	}

	var req bookingActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	var booking models.Booking
	switch req.Action {
	case "mark_paid":
		booking, err = h.BookingService.UpdatePayment(r.Context(), id, userID, false)
	case "refund":
		booking, err = h.BookingService.UpdatePayment(r.Context(), id, userID, true)
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "action must be mark_paid or refund")
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// GetMyBookings returns every booking the caller participates in, either side.
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing identity")
		return
	}

	bookings, err := h.BookingService.GetBookingsByUserID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// GetAvailability is public: busy ranges of approved bookings for a listing.
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid listing id")
		return
	}

	ranges, err := h.BookingService.GetBusyRanges(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if ranges == nil {
		ranges = []models.DateRange{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"busy": ranges})
}
