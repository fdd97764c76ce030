package fsm

import (
	"context"
	"database/sql"

	"arendaBack/internal/models"
)

// Booking status transitions. Owners resolve pending requests, tenants may
// withdraw a request any time before approval. Terminal statuses never move.
var statusTransitions = map[string]map[string]struct{}{
	models.BookingStatusPending: {
		models.BookingStatusApproved:  {},
		models.BookingStatusDeclined:  {},
		models.BookingStatusCancelled: {},
	},
	models.BookingStatusApproved:  {},
	models.BookingStatusDeclined:  {},
	models.BookingStatusCancelled: {},
}

// Payment moves only forward and only on approved bookings; the approval
// guard lives in the service layer because it reads a different column.
var paymentTransitions = map[string]map[string]struct{}{
	models.PaymentStatusPending:  {models.PaymentStatusPaid: {}},
	models.PaymentStatusPaid:     {models.PaymentStatusRefunded: {}},
	models.PaymentStatusRefunded: {},
}

// CanTransition returns whether a booking can move between the two statuses.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionPayment returns whether payment status can move from -> to.
func CanTransitionPayment(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := paymentTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// StampsDecision reports whether moving to the status records the owner's
// decision time. A tenant cancellation is not a decision.
func StampsDecision(to string) bool {
	return to == models.BookingStatusApproved || to == models.BookingStatusDeclined
}

// Apply updates a booking status using optimistic validation: the UPDATE is
// conditioned on the status the caller observed, so a concurrent decision
// loses cleanly instead of overwriting.
func Apply(ctx context.Context, db *sql.DB, bookingID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	if StampsDecision(toStatus) {
		query = `UPDATE bookings SET status = ?, decided_at = NOW() WHERE id = ? AND status = ?`
	}
	res, err := db.ExecContext(ctx, query, toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

// ApplyPayment updates payment status with the same optimistic guard.
func ApplyPayment(ctx context.Context, db *sql.DB, bookingID int, fromStatus, toStatus string) error {
	if !CanTransitionPayment(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ? WHERE id = ? AND payment_status = ?`,
		toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}
