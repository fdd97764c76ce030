package fsm

import (
	"testing"

	"arendaBack/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(models.BookingStatusPending, models.BookingStatusApproved) {
		t.Fatal("expected pending -> approved to be allowed")
	}
	if !CanTransition(models.BookingStatusPending, models.BookingStatusDeclined) {
		t.Fatal("expected pending -> declined to be allowed")
	}
	if !CanTransition(models.BookingStatusPending, models.BookingStatusCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if CanTransition(models.BookingStatusApproved, models.BookingStatusCancelled) {
		t.Fatal("approved bookings must not be cancellable")
	}
	if CanTransition(models.BookingStatusDeclined, models.BookingStatusApproved) {
		t.Fatal("declined is terminal")
	}
	if CanTransition(models.BookingStatusCancelled, models.BookingStatusPending) {
		t.Fatal("cancelled is terminal")
	}
	if !CanTransition(models.BookingStatusApproved, models.BookingStatusApproved) {
		t.Fatal("self transition should be a no-op")
	}
}

func TestStampsDecision(t *testing.T) {
	if !StampsDecision(models.BookingStatusApproved) {
		t.Fatal("approval records the decision time")
	}
	if !StampsDecision(models.BookingStatusDeclined) {
		t.Fatal("decline records the decision time")
	}
	if StampsDecision(models.BookingStatusCancelled) {
		t.Fatal("a tenant cancellation is not an owner decision")
	}
	if StampsDecision(models.BookingStatusPending) {
		t.Fatal("pending is not a decision")
	}
}

func TestCanTransitionPayment(t *testing.T) {
	if !CanTransitionPayment(models.PaymentStatusPending, models.PaymentStatusPaid) {
		t.Fatal("expected pending -> paid to be allowed")
	}
	if !CanTransitionPayment(models.PaymentStatusPaid, models.PaymentStatusRefunded) {
		t.Fatal("expected paid -> refunded to be allowed")
	}
	if CanTransitionPayment(models.PaymentStatusPending, models.PaymentStatusRefunded) {
		t.Fatal("cannot refund an unpaid booking")
	}
	if CanTransitionPayment(models.PaymentStatusRefunded, models.PaymentStatusPaid) {
		t.Fatal("refunded is terminal")
	}
}
