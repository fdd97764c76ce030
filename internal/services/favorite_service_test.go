package services

import (
	"context"
	"errors"
	"testing"

	"arendaBack/internal/models"
)

type favKey struct {
	userID    int
	listingID int
}

type stubFavorites struct {
	pairs map[favKey]struct{}

	// raceOnAdd makes the next AddFavorite behave as the losing side of a
	// concurrent insert.
	raceOnAdd bool
}

func newStubFavorites() *stubFavorites {
	return &stubFavorites{pairs: make(map[favKey]struct{})}
}

func (s *stubFavorites) IsFavorite(ctx context.Context, userID, listingID int) (bool, error) {
	_, ok := s.pairs[favKey{userID, listingID}]
	return ok, nil
}

func (s *stubFavorites) AddFavorite(ctx context.Context, userID, listingID int) error {
	key := favKey{userID, listingID}
	if s.raceOnAdd {
		s.raceOnAdd = false
		s.pairs[key] = struct{}{}
		return models.ErrAlreadyFavorited
	}
	if _, ok := s.pairs[key]; ok {
		return models.ErrAlreadyFavorited
	}
	s.pairs[key] = struct{}{}
	return nil
}

func (s *stubFavorites) RemoveFavorite(ctx context.Context, userID, listingID int) error {
	delete(s.pairs, favKey{userID, listingID})
	return nil
}

func (s *stubFavorites) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	var favs []models.Favorite
	for key := range s.pairs {
		if key.userID == userID {
			favs = append(favs, models.Favorite{UserID: key.userID, ListingID: key.listingID})
		}
	}
	return favs, nil
}

func newFavoriteService() (*FavoriteService, *stubFavorites) {
	favorites := newStubFavorites()
	listings := &stubListings{listings: map[int]models.Listing{
		10: {ID: 10, UserID: 1, Title: "Two-room flat", Status: models.ListingStatusPublished},
	}}
	return &FavoriteService{FavoriteRepo: favorites, ListingRepo: listings}, favorites
}

func TestToggleFavoriteSequence(t *testing.T) {
	svc, _ := newFavoriteService()
	ctx := context.Background()

	first, err := svc.ToggleFavorite(ctx, 2, 10)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Favorited {
		t.Fatal("first toggle should favorite the listing")
	}

	second, err := svc.ToggleFavorite(ctx, 2, 10)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Favorited {
		t.Fatal("second toggle should unfavorite the listing")
	}

	third, err := svc.ToggleFavorite(ctx, 2, 10)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if !third.Favorited {
		t.Fatal("third toggle should favorite the listing again")
	}
}

func TestToggleFavoriteDuplicateRaceReportsFavorited(t *testing.T) {
	svc, store := newFavoriteService()
	store.raceOnAdd = true

	result, err := svc.ToggleFavorite(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("toggle losing the insert race: %v", err)
	}
	if !result.Favorited {
		t.Fatal("losing the insert race must still report favorited=true")
	}
}

func TestToggleFavoriteUnknownListing(t *testing.T) {
	svc, _ := newFavoriteService()

	if _, err := svc.ToggleFavorite(context.Background(), 2, 999); !errors.Is(err, models.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
