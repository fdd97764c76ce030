package services

import (
	"context"
	"log"
	"strings"

	"arendaBack/internal/geo"
	"arendaBack/internal/models"
	"arendaBack/internal/repositories"
)

type ListingService struct {
	ListingRepo *repositories.ListingRepository
	Geocoder    geo.Geocoder
	Locator     *geo.ListingLocator
	ErrorLog    *log.Logger
}

// CreateListing stores a new draft. Fields may be incomplete while in draft;
// the completeness invariant is enforced at publish time. When an address is
// present and coordinates are not, geocoding is attempted best-effort.
func (s *ListingService) CreateListing(ctx context.Context, listing models.Listing, ownerID int) (models.Listing, error) {
	listing.UserID = ownerID
	listing.Status = models.ListingStatusDraft
	if listing.Currency == "" {
		listing.Currency = "KZT"
	}
	s.geocodeIfNeeded(ctx, &listing)
	return s.ListingRepo.CreateListing(ctx, listing)
}

func (s *ListingService) geocodeIfNeeded(ctx context.Context, listing *models.Listing) {
	if s.Geocoder == nil || listing.Latitude != nil || listing.Longitude != nil {
		return
	}
	if strings.TrimSpace(listing.Address) == "" {
		return
	}
	lat, lng, err := s.Geocoder.Geocode(ctx, listing.Address)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("geocode listing address %q: %v", listing.Address, err)
		}
		return
	}
	listing.Latitude = &lat
	listing.Longitude = &lng
}

func (s *ListingService) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	return s.ListingRepo.GetListingByID(ctx, id)
}

func (s *ListingService) GetListingsByUserID(ctx context.Context, userID int) ([]models.Listing, error) {
	return s.ListingRepo.GetListingsByUserID(ctx, userID)
}

// UpdateListing applies owner edits. Outstanding bookings keep their
// snapshotted terms, so price edits never rewrite requests.
func (s *ListingService) UpdateListing(ctx context.Context, listing models.Listing, actorID int) (models.Listing, error) {
	current, err := s.ListingRepo.GetListingByID(ctx, listing.ID)
	if err != nil {
		return models.Listing{}, err
	}
	if current.UserID != actorID {
		return models.Listing{}, models.ErrForbidden
	}

	listing.UserID = current.UserID
	listing.Status = current.Status
	if listing.Address != current.Address {
		listing.Latitude = nil
		listing.Longitude = nil
	}
	s.geocodeIfNeeded(ctx, &listing)

	updated, err := s.ListingRepo.UpdateListing(ctx, listing)
	if err != nil {
		return models.Listing{}, err
	}
	s.syncLocator(ctx, updated)
	return updated, nil
}

// PublishListing moves a draft to published once the completeness invariant
// holds: non-empty title, positive price, coordinates and at least one photo.
func (s *ListingService) PublishListing(ctx context.Context, listingID, actorID int) (models.Listing, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Listing{}, err
	}
	if listing.UserID != actorID {
		return models.Listing{}, models.ErrForbidden
	}
	if strings.TrimSpace(listing.Title) == "" || listing.Price <= 0 ||
		listing.Latitude == nil || listing.Longitude == nil || len(listing.Images) == 0 {
		return models.Listing{}, models.ErrListingIncomplete
	}

	if err := s.ListingRepo.UpdateListingStatus(ctx, listingID, models.ListingStatusPublished); err != nil {
		return models.Listing{}, err
	}
	listing.Status = models.ListingStatusPublished
	s.syncLocator(ctx, listing)
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, listingID, actorID int) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.UserID != actorID {
		return models.ErrForbidden
	}
	if err := s.ListingRepo.DeleteListing(ctx, listingID); err != nil {
		return err
	}
	if s.Locator != nil {
		if err := s.Locator.RemoveListing(ctx, listingID); err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("remove listing %d from geo index: %v", listingID, err)
		}
	}
	return nil
}

// AddImages appends uploaded photo URLs to the listing's ordered image set.
func (s *ListingService) AddImages(ctx context.Context, listingID, actorID int, images []models.Image) (models.Listing, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Listing{}, err
	}
	if listing.UserID != actorID {
		return models.Listing{}, models.ErrForbidden
	}
	listing.Images = append(listing.Images, images...)
	return s.ListingRepo.UpdateListing(ctx, listing)
}

// GetFilteredListings serves search. Near-me queries go through the Redis
// geo index first (nearest-first ranking); if the index is unavailable the
// SQL haversine path answers instead.
func (s *ListingService) GetFilteredListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	if filter.Lat != nil && filter.Lng != nil && filter.RadiusKm != nil && s.Locator != nil {
		limit := filter.PageSize
		if limit < 1 || limit > 100 {
			limit = 20
		}
		nearby, err := s.Locator.Nearby(ctx, *filter.Lat, *filter.Lng, *filter.RadiusKm, limit)
		if err == nil {
			ids := make([]int, 0, len(nearby))
			dist := make(map[int]float64, len(nearby))
			for _, n := range nearby {
				ids = append(ids, n.ID)
				dist[n.ID] = n.DistKm
			}
			listings, err := s.ListingRepo.GetListingsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			for i := range listings {
				d := dist[listings[i].ID]
				listings[i].DistanceKm = &d
			}
			return listings, nil
		}
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("geo index search failed, falling back to SQL: %v", err)
		}
	}
	return s.ListingRepo.GetFilteredListings(ctx, filter)
}

func (s *ListingService) syncLocator(ctx context.Context, listing models.Listing) {
	if s.Locator == nil || listing.Status != models.ListingStatusPublished {
		return
	}
	if listing.Latitude == nil || listing.Longitude == nil {
		return
	}
	if err := s.Locator.AddListing(ctx, listing.ID, *listing.Latitude, *listing.Longitude); err != nil && s.ErrorLog != nil {
		s.ErrorLog.Printf("index listing %d in geo index: %v", listing.ID, err)
	}
}
