package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"arendaBack/internal/models"
)

func extractFirstImagePath(imagesJSON sql.NullString) (*string, error) {
	if !imagesJSON.Valid {
		return nil, nil
	}

	data := strings.TrimSpace(imagesJSON.String)
	if data == "" {
		return nil, nil
	}

	var images []models.Image
	if err := json.Unmarshal([]byte(data), &images); err != nil {
		return nil, err
	}

	for _, img := range images {
		path := strings.TrimSpace(img.Path)
		if path != "" {
			return &img.Path, nil
		}
	}

	return nil, nil
}
