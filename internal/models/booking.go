package models

import (
	"time"
)

// Booking request statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusDeclined  = "declined"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses, tracked independently on approved bookings.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking is a tenant's request to rent a listing for an inclusive date
// range. MonthlyPrice and Deposit are snapshotted from the listing at
// creation so later listing edits do not change outstanding terms.
type Booking struct {
	ID            int        `json:"id"`
	ListingID     int        `json:"listing_id"`
	OwnerID       int        `json:"owner_id"`
	TenantID      int        `json:"tenant_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	MonthlyPrice  float64    `json:"monthly_price"`
	Deposit       float64    `json:"deposit"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DateRange is one busy interval of a listing, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CreateBookingRequest struct {
	ListingID int    `json:"listing_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
