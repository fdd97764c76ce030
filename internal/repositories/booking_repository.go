package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"arendaBack/internal/fsm"
	"arendaBack/internal/models"
)

type BookingRepository struct {
	Db *sql.DB
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	booking.CreatedAt = time.Now()
	query := `
        INSERT INTO bookings (listing_id, owner_id, tenant_id, start_date, end_date, status, payment_status, monthly_price, deposit, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.Db.ExecContext(ctx, query,
		booking.ListingID, booking.OwnerID, booking.TenantID,
		booking.StartDate, booking.EndDate, booking.Status, booking.PaymentStatus,
		booking.MonthlyPrice, booking.Deposit, booking.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = int(id)
	return booking, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	var (
		booking   models.Booking
		decidedAt sql.NullTime
	)
	query := `
        SELECT id, listing_id, owner_id, tenant_id, start_date, end_date, status, payment_status, monthly_price, deposit, decided_at, created_at
        FROM bookings WHERE id = ?
    `
	err := r.Db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.ListingID, &booking.OwnerID, &booking.TenantID,
		&booking.StartDate, &booking.EndDate, &booking.Status, &booking.PaymentStatus,
		&booking.MonthlyPrice, &booking.Deposit, &decidedAt, &booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		booking.DecidedAt = &t
	}
	return booking, nil
}

// HasApprovedOverlap reports whether [start, end] intersects an approved
// booking of the listing. Both ranges are inclusive whole days, so the test
// is start <= other.end AND end >= other.start.
func (r *BookingRepository) HasApprovedOverlap(ctx context.Context, listingID int, start, end time.Time) (bool, error) {
	var x int
	query := `
        SELECT 1 FROM bookings
        WHERE listing_id = ? AND status = ? AND start_date <= ? AND end_date >= ?
        LIMIT 1
    `
	err := r.Db.QueryRowContext(ctx, query, listingID, models.BookingStatusApproved, end, start).Scan(&x)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetBusyRanges returns the date ranges of all approved bookings for a
// listing, oldest start first.
func (r *BookingRepository) GetBusyRanges(ctx context.Context, listingID int) ([]models.DateRange, error) {
	query := `
        SELECT start_date, end_date FROM bookings
        WHERE listing_id = ? AND status = ?
        ORDER BY start_date ASC
    `
	rows, err := r.Db.QueryContext(ctx, query, listingID, models.BookingStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranges := []models.DateRange{}
	for rows.Next() {
		var dr models.DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, err
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

// GetBookingsByUserID returns bookings where the user is either party,
// newest first.
func (r *BookingRepository) GetBookingsByUserID(ctx context.Context, userID int) ([]models.Booking, error) {
	query := `
        SELECT id, listing_id, owner_id, tenant_id, start_date, end_date, status, payment_status, monthly_price, deposit, decided_at, created_at
        FROM bookings
        WHERE owner_id = ? OR tenant_id = ?
        ORDER BY created_at DESC
    `
	rows, err := r.Db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var (
			booking   models.Booking
			decidedAt sql.NullTime
		)
		if err := rows.Scan(
			&booking.ID, &booking.ListingID, &booking.OwnerID, &booking.TenantID,
			&booking.StartDate, &booking.EndDate, &booking.Status, &booking.PaymentStatus,
			&booking.MonthlyPrice, &booking.Deposit, &decidedAt, &booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		if decidedAt.Valid {
			t := decidedAt.Time
			booking.DecidedAt = &t
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus applies a status transition with the optimistic guard
// from the fsm package; a concurrent decision loses and reports an invalid
// transition.
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id int, from, to string) error {
	return fsm.Apply(ctx, r.Db, id, from, to)
}

func (r *BookingRepository) UpdateBookingPaymentStatus(ctx context.Context, id int, from, to string) error {
	return fsm.ApplyPayment(ctx, r.Db, id, from, to)
}
