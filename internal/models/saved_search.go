package models

import "time"

// SavedSearch is a user-owned named snapshot of search filters. Params is an
// arbitrary key-value bag persisted as JSON; values keep whatever JSON type
// the client sent (numeric price bounds, string queries).
type SavedSearch struct {
	ID        int                    `json:"id"`
	UserID    int                    `json:"user_id"`
	Name      string                 `json:"name"`
	Params    map[string]interface{} `json:"params"`
	CreatedAt time.Time              `json:"created_at"`
}
