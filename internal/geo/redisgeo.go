package geo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const listingsGeoKey = "listings:published"

// NearbyListing is one hit from the Redis GEO index, nearest first.
type NearbyListing struct {
	ID     int
	DistKm float64
}

// ListingLocator keeps published listings in a Redis GEO set so near-me
// search ranks by distance without scanning the listings table.
type ListingLocator struct {
	rdb *redis.Client
}

func NewListingLocator(rdb *redis.Client) *ListingLocator {
	return &ListingLocator{rdb: rdb}
}

func memberName(listingID int) string {
	return fmt.Sprintf("listing:%d", listingID)
}

func parseListingMember(member string) (int, error) {
	parts := strings.Split(member, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid member %q", member)
	}
	return strconv.Atoi(parts[1])
}

// AddListing indexes (or re-indexes) a published listing position.
func (l *ListingLocator) AddListing(ctx context.Context, listingID int, lat, lng float64) error {
	return l.rdb.GeoAdd(ctx, listingsGeoKey, &redis.GeoLocation{
		Name:      memberName(listingID),
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// RemoveListing drops a listing from the index (unpublish or delete).
func (l *ListingLocator) RemoveListing(ctx context.Context, listingID int) error {
	return l.rdb.ZRem(ctx, listingsGeoKey, memberName(listingID)).Err()
}

// Nearby returns listing ids within radiusKm of the point, nearest first.
func (l *ListingLocator) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]NearbyListing, error) {
	locations, err := l.rdb.GeoSearchLocation(ctx, listingsGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lng,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyListing, 0, len(locations))
	for _, loc := range locations {
		id, err := parseListingMember(loc.Name)
		if err != nil {
			continue
		}
		nearby = append(nearby, NearbyListing{ID: id, DistKm: loc.Dist})
	}
	return nearby, nil
}
