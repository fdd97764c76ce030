package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"arendaBack/internal/fsm"
	"arendaBack/internal/models"
)

type stubListings struct {
	listings map[int]models.Listing
}

func (s *stubListings) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	listing, ok := s.listings[id]
	if !ok {
		return models.Listing{}, models.ErrListingNotFound
	}
	return listing, nil
}

type stubBookings struct {
	nextID   int
	bookings map[int]models.Booking
}

func newStubBookings() *stubBookings {
	return &stubBookings{nextID: 1, bookings: make(map[int]models.Booking)}
}

func (s *stubBookings) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	booking.ID = s.nextID
	booking.CreatedAt = time.Now()
	s.nextID++
	s.bookings[booking.ID] = booking
	return booking, nil
}

func (s *stubBookings) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrBookingNotFound
	}
	return booking, nil
}

func (s *stubBookings) HasApprovedOverlap(ctx context.Context, listingID int, start, end time.Time) (bool, error) {
	for _, b := range s.bookings {
		if b.ListingID != listingID || b.Status != models.BookingStatusApproved {
			continue
		}
		if !start.After(b.EndDate) && !end.Before(b.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBookings) GetBusyRanges(ctx context.Context, listingID int) ([]models.DateRange, error) {
	ranges := []models.DateRange{}
	for _, b := range s.bookings {
		if b.ListingID == listingID && b.Status == models.BookingStatusApproved {
			ranges = append(ranges, models.DateRange{Start: b.StartDate, End: b.EndDate})
		}
	}
	return ranges, nil
}

func (s *stubBookings) GetBookingsByUserID(ctx context.Context, userID int) ([]models.Booking, error) {
	var result []models.Booking
	for _, b := range s.bookings {
		if b.OwnerID == userID || b.TenantID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *stubBookings) UpdateBookingStatus(ctx context.Context, id int, from, to string) error {
	if !fsm.CanTransition(from, to) {
		return models.ErrInvalidTransition
	}
	booking, ok := s.bookings[id]
	if !ok || booking.Status != from {
		return errors.New("stale status")
	}
	booking.Status = to
	if fsm.StampsDecision(to) {
		now := time.Now()
		booking.DecidedAt = &now
	}
	s.bookings[id] = booking
	return nil
}

func (s *stubBookings) UpdateBookingPaymentStatus(ctx context.Context, id int, from, to string) error {
	if !fsm.CanTransitionPayment(from, to) {
		return models.ErrInvalidTransition
	}
	booking, ok := s.bookings[id]
	if !ok || booking.PaymentStatus != from {
		return errors.New("stale payment status")
	}
	booking.PaymentStatus = to
	s.bookings[id] = booking
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBookingService() (*BookingService, *stubBookings) {
	bookings := newStubBookings()
	listings := &stubListings{listings: map[int]models.Listing{
		10: {ID: 10, UserID: 1, Title: "Two-room flat", Price: 250000, Deposit: 100000, Status: models.ListingStatusPublished},
	}}
	return &BookingService{BookingRepo: bookings, ListingRepo: listings}, bookings
}

func TestCreateBookingSnapshotsListingTerms(t *testing.T) {
	svc, _ := newBookingService()

	booking, err := svc.CreateBooking(context.Background(), 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}
	if booking.OwnerID != 1 || booking.TenantID != 2 {
		t.Fatalf("unexpected parties: owner=%d tenant=%d", booking.OwnerID, booking.TenantID)
	}
	if booking.MonthlyPrice != 250000 || booking.Deposit != 100000 {
		t.Fatalf("expected snapshotted terms, got price=%v deposit=%v", booking.MonthlyPrice, booking.Deposit)
	}
}

func TestCreateBookingRejectsSelfBooking(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.CreateBooking(context.Background(), 10, 1, day(2024, 6, 1), day(2024, 6, 30))
	if !errors.Is(err, models.ErrSelfBooking) {
		t.Fatalf("expected ErrSelfBooking, got %v", err)
	}
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.CreateBooking(context.Background(), 10, 2, day(2024, 6, 30), day(2024, 6, 1))
	if !errors.Is(err, models.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestCreateBookingRejectsOverlapInclusive(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.DecideBooking(ctx, first.ID, 1, true); err != nil {
		t.Fatalf("DecideBooking: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		overlap    bool
	}{
		{"inside", day(2024, 6, 15), day(2024, 6, 20), true},
		{"touching end", day(2024, 6, 30), day(2024, 7, 5), true},
		{"touching start", day(2024, 5, 20), day(2024, 6, 1), true},
		{"before", day(2024, 5, 1), day(2024, 5, 31), false},
		{"after", day(2024, 7, 1), day(2024, 7, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, 10, 3, tc.start, tc.end)
			if tc.overlap && !errors.Is(err, models.ErrBookingOverlap) {
				t.Fatalf("expected ErrBookingOverlap, got %v", err)
			}
			if !tc.overlap && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
		})
	}
}

func TestDecideBookingGuards(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.DecideBooking(ctx, booking.ID, 2, true); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	decided, err := svc.DecideBooking(ctx, booking.ID, 1, true)
	if err != nil {
		t.Fatalf("DecideBooking: %v", err)
	}
	if decided.Status != models.BookingStatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.DecidedAt == nil {
		t.Fatal("expected decided_at to be set")
	}

	if _, err := svc.DecideBooking(ctx, booking.ID, 1, false); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on decided booking, got %v", err)
	}

	if _, err := svc.DecideBooking(ctx, 999, 1, true); !errors.Is(err, models.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBookingGuards(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.CancelBooking(ctx, booking.ID, 1); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-tenant, got %v", err)
	}

	if _, err := svc.DecideBooking(ctx, booking.ID, 1, true); err != nil {
		t.Fatalf("DecideBooking: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, booking.ID, 2); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after approval, got %v", err)
	}

	second, err := svc.CreateBooking(ctx, 10, 3, day(2024, 8, 1), day(2024, 8, 31))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	cancelled, err := svc.CancelBooking(ctx, second.ID, 3)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.DecidedAt != nil {
		t.Fatal("cancellation must not record a decision time")
	}
}

func TestUpdatePaymentGuards(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.UpdatePayment(ctx, booking.ID, 1, false); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on pending booking, got %v", err)
	}

	if _, err := svc.DecideBooking(ctx, booking.ID, 1, true); err != nil {
		t.Fatalf("DecideBooking: %v", err)
	}

	if _, err := svc.UpdatePayment(ctx, booking.ID, 2, false); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for tenant, got %v", err)
	}
	if _, err := svc.UpdatePayment(ctx, booking.ID, 1, true); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition refunding before payment, got %v", err)
	}

	paid, err := svc.UpdatePayment(ctx, booking.ID, 1, false)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if paid.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}

	refunded, err := svc.UpdatePayment(ctx, booking.ID, 1, true)
	if err != nil {
		t.Fatalf("UpdatePayment refund: %v", err)
	}
	if refunded.PaymentStatus != models.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", refunded.PaymentStatus)
	}
}

func TestBusyRangesReflectApprovedBookingsOnly(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, 10, 2, day(2024, 6, 1), day(2024, 6, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, 10, 3, day(2024, 7, 1), day(2024, 7, 31)); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	ranges, err := svc.GetBusyRanges(ctx, 10)
	if err != nil {
		t.Fatalf("GetBusyRanges: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("pending bookings must not be busy, got %d ranges", len(ranges))
	}

	if _, err := svc.DecideBooking(ctx, first.ID, 1, true); err != nil {
		t.Fatalf("DecideBooking: %v", err)
	}
	ranges, err = svc.GetBusyRanges(ctx, 10)
	if err != nil {
		t.Fatalf("GetBusyRanges: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 busy range, got %d", len(ranges))
	}
	if !ranges[0].Start.Equal(day(2024, 6, 1)) || !ranges[0].End.Equal(day(2024, 6, 30)) {
		t.Fatalf("unexpected range %v", ranges[0])
	}
}
