package models

import (
	"encoding/json"
	"testing"
)

func TestSavedSearchParamsKeepClientTypes(t *testing.T) {
	payload := []byte(`{
        "name": "cheap flats",
        "params": {"price_to": 200000, "query": "center", "page": 1}
    }`)

	var search SavedSearch
	if err := json.Unmarshal(payload, &search); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if search.Name != "cheap flats" {
		t.Errorf("name mismatch: %q", search.Name)
	}
	if got, ok := search.Params["price_to"].(float64); !ok || got != 200000 {
		t.Errorf("price_to mismatch: %v", search.Params["price_to"])
	}
	if got, ok := search.Params["query"].(string); !ok || got != "center" {
		t.Errorf("query mismatch: %v", search.Params["query"])
	}

	encoded, err := json.Marshal(search.Params)
	if err != nil {
		t.Fatalf("encode params: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if decoded["price_to"].(float64) != 200000 {
		t.Errorf("round trip price_to mismatch: %v", decoded["price_to"])
	}
}
