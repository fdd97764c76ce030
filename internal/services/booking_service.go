package services

import (
	"context"
	"fmt"
	"time"

	"arendaBack/internal/models"
)

// BookingStore is the persistence surface the service needs; implemented by
// repositories.BookingRepository.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	GetBookingByID(ctx context.Context, id int) (models.Booking, error)
	HasApprovedOverlap(ctx context.Context, listingID int, start, end time.Time) (bool, error)
	GetBusyRanges(ctx context.Context, listingID int) ([]models.DateRange, error)
	GetBookingsByUserID(ctx context.Context, userID int) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int, from, to string) error
	UpdateBookingPaymentStatus(ctx context.Context, id int, from, to string) error
}

// ListingGetter resolves the listing a booking targets.
type ListingGetter interface {
	GetListingByID(ctx context.Context, id int) (models.Listing, error)
}

// Notifier delivers a best-effort push; a nil Notifier disables pushes.
type Notifier interface {
	Notify(ctx context.Context, userID int, title, body string, data map[string]string)
}

type BookingService struct {
	BookingRepo BookingStore
	ListingRepo ListingGetter
	Push        Notifier
}

// normalizeDay drops the time-of-day component: booking ranges are whole-day
// and inclusive on both ends.
func normalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateBooking validates and records a tenant's request: no self-booking,
// no overlap with approved bookings, price and deposit snapshotted from the
// listing so later edits do not change outstanding terms.
func (s *BookingService) CreateBooking(ctx context.Context, listingID, tenantID int, start, end time.Time) (models.Booking, error) {
	start = normalizeDay(start)
	end = normalizeDay(end)
	if end.Before(start) {
		return models.Booking{}, models.ErrInvalidDateRange
	}

	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Booking{}, err
	}
	if listing.UserID == tenantID {
		return models.Booking{}, models.ErrSelfBooking
	}

	overlap, err := s.BookingRepo.HasApprovedOverlap(ctx, listingID, start, end)
	if err != nil {
		return models.Booking{}, err
	}
	if overlap {
		return models.Booking{}, models.ErrBookingOverlap
	}

	booking := models.Booking{
		ListingID:     listingID,
		OwnerID:       listing.UserID,
		TenantID:      tenantID,
		StartDate:     start,
		EndDate:       end,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		MonthlyPrice:  listing.Price,
		Deposit:       listing.Deposit,
	}

	created, err := s.BookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}

	if s.Push != nil {
		s.Push.Notify(ctx, created.OwnerID, "New booking request", listing.Title, map[string]string{
			"booking_id": fmt.Sprint(created.ID),
		})
	}
	return created, nil
}

// DecideBooking lets the listing owner approve or decline a pending request.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID, actorID int, approve bool) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.OwnerID != actorID {
		return models.Booking{}, models.ErrForbidden
	}
	if booking.Status != models.BookingStatusPending {
		return models.Booking{}, models.ErrInvalidTransition
	}

	target := models.BookingStatusDeclined
	if approve {
		target = models.BookingStatusApproved
	}
	if err := s.BookingRepo.UpdateBookingStatus(ctx, bookingID, booking.Status, target); err != nil {
		return models.Booking{}, err
	}

	if s.Push != nil {
		s.Push.Notify(ctx, booking.TenantID, "Booking "+target, "", map[string]string{
			"booking_id": fmt.Sprint(bookingID),
			"status":     target,
		})
	}
	return s.BookingRepo.GetBookingByID(ctx, bookingID)
}

// CancelBooking lets the tenant withdraw a request before approval. Approved
// bookings cannot be cancelled through the API.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID int) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.TenantID != actorID {
		return models.Booking{}, models.ErrForbidden
	}
	if booking.Status != models.BookingStatusPending {
		return models.Booking{}, models.ErrInvalidTransition
	}

	if err := s.BookingRepo.UpdateBookingStatus(ctx, bookingID, booking.Status, models.BookingStatusCancelled); err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.GetBookingByID(ctx, bookingID)
}

// UpdatePayment moves payment status on an approved booking: mark_paid
// (pending -> paid) and refund (paid -> refunded), owner only.
func (s *BookingService) UpdatePayment(ctx context.Context, bookingID, actorID int, refund bool) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.OwnerID != actorID {
		return models.Booking{}, models.ErrForbidden
	}
	if booking.Status != models.BookingStatusApproved {
		return models.Booking{}, models.ErrInvalidTransition
	}

	from, to := models.PaymentStatusPending, models.PaymentStatusPaid
	if refund {
		from, to = models.PaymentStatusPaid, models.PaymentStatusRefunded
	}
	if booking.PaymentStatus != from {
		return models.Booking{}, models.ErrInvalidTransition
	}
	if err := s.BookingRepo.UpdateBookingPaymentStatus(ctx, bookingID, from, to); err != nil {
		return models.Booking{}, err
	}
	return s.BookingRepo.GetBookingByID(ctx, bookingID)
}

// GetBusyRanges returns the approved date ranges of a listing. Public: the
// client uses it for advisory display; creation re-validates server-side.
func (s *BookingService) GetBusyRanges(ctx context.Context, listingID int) ([]models.DateRange, error) {
	if _, err := s.ListingRepo.GetListingByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.BookingRepo.GetBusyRanges(ctx, listingID)
}

func (s *BookingService) GetBookingsByUserID(ctx context.Context, userID int) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByUserID(ctx, userID)
}
