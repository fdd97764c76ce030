package services

import (
	"context"
	"strings"

	"arendaBack/internal/models"
	"arendaBack/internal/repositories"
)

type SavedSearchService struct {
	SavedSearchRepo *repositories.SavedSearchRepository
}

func (s *SavedSearchService) CreateSavedSearch(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	if strings.TrimSpace(search.Name) == "" {
		search.Name = "Saved search"
	}
	if search.Params == nil {
		search.Params = map[string]interface{}{}
	}
	return s.SavedSearchRepo.CreateSavedSearch(ctx, search)
}

func (s *SavedSearchService) GetSavedSearchesByUser(ctx context.Context, userID int) ([]models.SavedSearch, error) {
	return s.SavedSearchRepo.GetSavedSearchesByUser(ctx, userID)
}

func (s *SavedSearchService) DeleteSavedSearch(ctx context.Context, id, userID int) error {
	return s.SavedSearchRepo.DeleteSavedSearch(ctx, id, userID)
}
