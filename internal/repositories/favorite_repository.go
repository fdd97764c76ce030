package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"arendaBack/internal/models"
)

type FavoriteRepository struct {
	Db *sql.DB
}

// AddFavorite inserts the (user, listing) pair. A concurrent insert losing
// on the unique index surfaces as ErrAlreadyFavorited.
func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, listingID int) error {
	_, err := r.Db.ExecContext(ctx, `INSERT INTO favorites (user_id, listing_id) VALUES (?, ?)`, userID, listingID)
	if isDuplicateEntryError(err) {
		return models.ErrAlreadyFavorited
	}
	return err
}

// RemoveFavorite deletes the pair. Removing an absent pair matches no rows
// and is not an error.
func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, listingID int) error {
	_, err := r.Db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND listing_id = ?`, userID, listingID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, listingID int) (bool, error) {
	var x int
	err := r.Db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE user_id = ? AND listing_id = ? LIMIT 1`,
		userID, listingID).Scan(&x)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	query := `
        SELECT f.id, f.user_id, f.listing_id, l.title, l.price, l.status, l.images, f.created_at
        FROM favorites f
        JOIN listings l ON f.listing_id = l.id
        WHERE f.user_id = ?
        ORDER BY f.created_at DESC
    `
	rows, err := r.Db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []models.Favorite
	for rows.Next() {
		var (
			fav        models.Favorite
			imagesJSON sql.NullString
		)
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.ListingID, &fav.Title, &fav.Price, &fav.Status, &imagesJSON, &fav.CreatedAt); err != nil {
			return nil, err
		}
		imgPath, err := extractFirstImagePath(imagesJSON)
		if err != nil {
			log.Printf("failed to decode listing images for favorite %d: %v", fav.ID, err)
		}
		fav.ImagePath = imgPath
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}
	return favs, nil
}
