package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTryParseLatLng(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantLat float64
		wantLng float64
		wantOK  bool
	}{
		{"comma separated", "43.238949, 76.889709", 43.238949, 76.889709, true},
		{"semicolon separated", "43.2;76.9", 43.2, 76.9, true},
		{"address text", "Abay Ave 10", 0, 0, false},
		{"out of range latitude", "91.0,76.9", 0, 0, false},
		{"too many parts", "1,2,3", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, ok := tryParseLatLng(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (lat != tt.wantLat || lng != tt.wantLng) {
				t.Fatalf("got (%v, %v), want (%v, %v)", lat, lng, tt.wantLat, tt.wantLng)
			}
		})
	}
}

func TestGeocodeShortCircuit(t *testing.T) {
	c := NewDGISClient(nil, "key", "")
	c.baseURL = "http://invalid.invalid"

	lat, lng, err := c.Geocode(context.Background(), "43.25, 76.95")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 43.25 || lng != 76.95 {
		t.Fatalf("got (%v, %v)", lat, lng)
	}
}

func TestGeocode(t *testing.T) {
	t.Run("resolves address", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") != "Abay Ave 10" {
				t.Errorf("unexpected query: %q", r.URL.Query().Get("q"))
			}
			w.Write([]byte(`{"result":{"items":[{"point":{"lat":43.24,"lon":76.91}}]}}`))
		}))
		defer server.Close()

		c := NewDGISClient(server.Client(), "key", "")
		c.baseURL = server.URL

		lat, lng, err := c.Geocode(context.Background(), "Abay Ave 10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lat != 43.24 || lng != 76.91 {
			t.Fatalf("got (%v, %v)", lat, lng)
		}
	})

	t.Run("falls back to untyped search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("type") != "" {
				w.Write([]byte(`{"result":{"items":[]}}`))
				return
			}
			w.Write([]byte(`{"result":{"items":[{"point":{"lat":51.1,"lon":71.4}}]}}`))
		}))
		defer server.Close()

		c := NewDGISClient(server.Client(), "key", "")
		c.baseURL = server.URL

		lat, lng, err := c.Geocode(context.Background(), "left bank park")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lat != 51.1 || lng != 71.4 {
			t.Fatalf("got (%v, %v)", lat, lng)
		}
	})

	t.Run("no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":{"items":[]}}`))
		}))
		defer server.Close()

		c := NewDGISClient(server.Client(), "key", "")
		c.baseURL = server.URL

		if _, _, err := c.Geocode(context.Background(), "nowhere at all"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty query", func(t *testing.T) {
		c := NewDGISClient(nil, "key", "")
		if _, _, err := c.Geocode(context.Background(), "   "); err == nil {
			t.Fatal("expected error")
		}
	})
}
