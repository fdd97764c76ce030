package services

import (
	"context"
	"errors"

	"arendaBack/internal/models"
)

// FavoriteStore is implemented by repositories.FavoriteRepository.
type FavoriteStore interface {
	IsFavorite(ctx context.Context, userID, listingID int) (bool, error)
	AddFavorite(ctx context.Context, userID, listingID int) error
	RemoveFavorite(ctx context.Context, userID, listingID int) error
	GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error)
}

type FavoriteService struct {
	FavoriteRepo FavoriteStore
	ListingRepo  ListingGetter
}

// ToggleFavorite flips the (user, listing) pair and reports the resulting
// state. Check-then-act: if two concurrent toggles race on the insert, the
// loser sees ErrAlreadyFavorited and reports favorited=true instead of an
// error, so the call is idempotent from the caller's perspective.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID, listingID int) (models.ToggleFavoriteResult, error) {
	if _, err := s.ListingRepo.GetListingByID(ctx, listingID); err != nil {
		return models.ToggleFavoriteResult{}, err
	}

	favorited, err := s.FavoriteRepo.IsFavorite(ctx, userID, listingID)
	if err != nil {
		return models.ToggleFavoriteResult{}, err
	}
	if favorited {
		if err := s.FavoriteRepo.RemoveFavorite(ctx, userID, listingID); err != nil {
			return models.ToggleFavoriteResult{}, err
		}
		return models.ToggleFavoriteResult{Favorited: false}, nil
	}

	if err := s.FavoriteRepo.AddFavorite(ctx, userID, listingID); err != nil {
		if errors.Is(err, models.ErrAlreadyFavorited) {
			return models.ToggleFavoriteResult{Favorited: true}, nil
		}
		return models.ToggleFavoriteResult{}, err
	}
	return models.ToggleFavoriteResult{Favorited: true}, nil
}

func (s *FavoriteService) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	return s.FavoriteRepo.GetFavoritesByUser(ctx, userID)
}
