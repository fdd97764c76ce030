package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const catalogBaseURL = "https://catalog.api.2gis.com"

// Geocoder resolves listing addresses to WGS84 coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lng float64, err error)
}

// DGISClient provides access to the 2GIS catalog API.
type DGISClient struct {
	httpClient *http.Client
	apiKey     string
	regionID   string
	baseURL    string
}

// NewDGISClient constructs a new 2GIS client.
func NewDGISClient(httpClient *http.Client, apiKey, regionID string) *DGISClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &DGISClient{httpClient: httpClient, apiKey: apiKey, regionID: regionID, baseURL: catalogBaseURL}
}

// tryParseLatLng returns lat,lng if query looks like "lat,lng", otherwise (0,0,false).
func tryParseLatLng(query string) (float64, float64, bool) {
	q := strings.TrimSpace(query)
	sep := ","
	if strings.Contains(q, ";") {
		sep = ";"
	}
	parts := strings.Split(q, sep)
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

type geocodeResponse struct {
	Result struct {
		Items []struct {
			Point struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"point"`
		} `json:"items"`
	} `json:"result"`
}

// Geocode returns coordinates for the given address query.
func (c *DGISClient) Geocode(ctx context.Context, query string) (float64, float64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, 0, errors.New("geocode: empty query")
	}

	// If the client already sent "lat,lng" — short-circuit without hitting API
	if lat, lng, ok := tryParseLatLng(query); ok {
		return lat, lng, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	// First try strict address types, then an untyped fallback.
	for _, typed := range []bool{true, false} {
		params := url.Values{}
		params.Set("q", query)
		params.Set("key", c.apiKey)
		params.Set("fields", "items.point")
		if typed {
			params.Set("type", "building,street")
		}
		params.Set("search_is_query_text_complete", "true")
		if c.regionID != "" {
			params.Set("region_id", c.regionID)
		}

		endpoint := fmt.Sprintf("%s/3.0/items/geocode?%s", c.baseURL, params.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, 0, fmt.Errorf("geocode: build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, 0, fmt.Errorf("geocode: do request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return 0, 0, fmt.Errorf("geocode: read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return 0, 0, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
		}

		var parsed geocodeResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return 0, 0, fmt.Errorf("geocode: decode response: %w", err)
		}
		if len(parsed.Result.Items) > 0 {
			point := parsed.Result.Items[0].Point
			return point.Lat, point.Lon, nil
		}
	}

	return 0, 0, fmt.Errorf("geocode: no results for %q", query)
}
