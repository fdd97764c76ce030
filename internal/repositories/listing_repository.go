package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arendaBack/internal/models"
)

type ListingRepository struct {
	Db *sql.DB
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	imagesJSON, err := json.Marshal(listing.Images)
	if err != nil {
		return models.Listing{}, fmt.Errorf("encode images: %w", err)
	}

	listing.CreatedAt = time.Now()
	query := `
        INSERT INTO listings (user_id, title, description, address, price, currency, deposit, status, latitude, longitude, images, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.Db.ExecContext(ctx, query,
		listing.UserID, listing.Title, listing.Description, listing.Address,
		listing.Price, listing.Currency, listing.Deposit, listing.Status,
		listing.Latitude, listing.Longitude, imagesJSON, listing.CreatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Listing{}, err
	}
	listing.ID = int(id)
	return listing, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	query := `
        SELECT id, user_id, title, description, address, price, currency, deposit, status, latitude, longitude, images, created_at, updated_at
        FROM listings WHERE id = ?
    `
	row := r.Db.QueryRowContext(ctx, query, id)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Listing{}, models.ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	imagesJSON, err := json.Marshal(listing.Images)
	if err != nil {
		return models.Listing{}, fmt.Errorf("encode images: %w", err)
	}

	now := time.Now()
	listing.UpdatedAt = &now
	query := `
        UPDATE listings
        SET title = ?, description = ?, address = ?, price = ?, currency = ?, deposit = ?, latitude = ?, longitude = ?, images = ?, updated_at = ?
        WHERE id = ?
    `
	result, err := r.Db.ExecContext(ctx, query,
		listing.Title, listing.Description, listing.Address, listing.Price,
		listing.Currency, listing.Deposit, listing.Latitude, listing.Longitude,
		imagesJSON, listing.UpdatedAt, listing.ID,
	)
	if err != nil {
		return models.Listing{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return models.Listing{}, err
	}
	if rows == 0 {
		return models.Listing{}, models.ErrListingNotFound
	}
	return listing, nil
}

func (r *ListingRepository) UpdateListingStatus(ctx context.Context, id int, status string) error {
	result, err := r.Db.ExecContext(ctx, `UPDATE listings SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id int) error {
	_, err := r.Db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	return err
}

func (r *ListingRepository) GetListingsByUserID(ctx context.Context, userID int) ([]models.Listing, error) {
	query := `
        SELECT id, user_id, title, description, address, price, currency, deposit, status, latitude, longitude, images, created_at, updated_at
        FROM listings WHERE user_id = ? ORDER BY created_at DESC
    `
	rows, err := r.Db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

// GetFilteredListings returns published listings matching the filter. When
// the filter carries coordinates, listings outside the radius are dropped and
// the rest get a distance annotation for the client.
func (r *ListingRepository) GetFilteredListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	var (
		conditions = []string{"status = ?"}
		args       = []interface{}{models.ListingStatusPublished}
	)

	if filter.PriceFrom != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *filter.PriceFrom)
	}
	if filter.PriceTo != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *filter.PriceTo)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)

	query := fmt.Sprintf(`
        SELECT id, user_id, title, description, address, price, currency, deposit, status, latitude, longitude, images, created_at, updated_at
        FROM listings
        WHERE %s
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?
    `, strings.Join(conditions, " AND "))

	rows, err := r.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, err
	}

	if filter.Lat == nil || filter.Lng == nil || filter.RadiusKm == nil {
		return listings, nil
	}

	nearby := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		dist := calculateDistanceKm(filter.Lat, filter.Lng, listing.Latitude, listing.Longitude)
		if dist == nil || *dist > *filter.RadiusKm {
			continue
		}
		listing.DistanceKm = dist
		nearby = append(nearby, listing)
	}
	return nearby, nil
}

// GetListingsByIDs preserves the order of ids, which carries the
// nearest-first ranking produced by the Redis geo index.
func (r *ListingRepository) GetListingsByIDs(ctx context.Context, ids []int) ([]models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf(`
        SELECT id, user_id, title, description, address, price, currency, deposit, status, latitude, longitude, images, created_at, updated_at
        FROM listings
        WHERE id IN (%s) AND status = '%s'
    `, placeholders, models.ListingStatusPublished)

	rows, err := r.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]models.Listing, 0, len(listings))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (models.Listing, error) {
	var (
		listing    models.Listing
		desc       sql.NullString
		address    sql.NullString
		lat, lng   sql.NullFloat64
		imagesJSON sql.NullString
		updatedAt  sql.NullTime
	)
	err := row.Scan(
		&listing.ID, &listing.UserID, &listing.Title, &desc, &address,
		&listing.Price, &listing.Currency, &listing.Deposit, &listing.Status,
		&lat, &lng, &imagesJSON, &listing.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}
	if desc.Valid {
		listing.Description = desc.String
	}
	if address.Valid {
		listing.Address = address.String
	}
	if lat.Valid {
		listing.Latitude = &lat.Float64
	}
	if lng.Valid {
		listing.Longitude = &lng.Float64
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		listing.UpdatedAt = &t
	}
	if imagesJSON.Valid && strings.TrimSpace(imagesJSON.String) != "" {
		if err := json.Unmarshal([]byte(imagesJSON.String), &listing.Images); err != nil {
			return models.Listing{}, fmt.Errorf("decode images: %w", err)
		}
	}
	return listing, nil
}

func collectListings(rows *sql.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}
