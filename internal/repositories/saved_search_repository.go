package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"arendaBack/internal/models"
)

type SavedSearchRepository struct {
	Db *sql.DB
}

func (r *SavedSearchRepository) CreateSavedSearch(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	paramsJSON, err := json.Marshal(search.Params)
	if err != nil {
		return models.SavedSearch{}, fmt.Errorf("encode params: %w", err)
	}

	search.CreatedAt = time.Now()
	query := `INSERT INTO saved_searches (user_id, name, params, created_at) VALUES (?, ?, ?, ?)`
	result, err := r.Db.ExecContext(ctx, query, search.UserID, search.Name, paramsJSON, search.CreatedAt)
	if err != nil {
		return models.SavedSearch{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.SavedSearch{}, err
	}
	search.ID = int(id)
	return search, nil
}

func (r *SavedSearchRepository) GetSavedSearchesByUser(ctx context.Context, userID int) ([]models.SavedSearch, error) {
	query := `SELECT id, user_id, name, params, created_at FROM saved_searches WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.Db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []models.SavedSearch
	for rows.Next() {
		var (
			search     models.SavedSearch
			paramsJSON sql.NullString
		)
		if err := rows.Scan(&search.ID, &search.UserID, &search.Name, &paramsJSON, &search.CreatedAt); err != nil {
			return nil, err
		}
		if paramsJSON.Valid && paramsJSON.String != "" {
			if err := json.Unmarshal([]byte(paramsJSON.String), &search.Params); err != nil {
				return nil, fmt.Errorf("decode params: %w", err)
			}
		}
		searches = append(searches, search)
	}
	return searches, rows.Err()
}

// DeleteSavedSearch removes a saved search owned by userID; deleting someone
// else's search matches no rows and reports not found.
func (r *SavedSearchRepository) DeleteSavedSearch(ctx context.Context, id, userID int) error {
	result, err := r.Db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrSavedSearchNotFound
	}
	return nil
}
