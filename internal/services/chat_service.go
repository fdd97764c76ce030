package services

import (
	"context"

	"arendaBack/internal/models"
)

// ChatStore is implemented by repositories.ChatRepository.
type ChatStore interface {
	OpenOrCreateChat(ctx context.Context, listingID, ownerID, participantID int) (models.Chat, error)
	GetChatByID(ctx context.Context, id int) (models.Chat, error)
	GetThreadsByUserID(ctx context.Context, userID int) ([]models.ChatThread, error)
}

type ChatService struct {
	ChatRepo    ChatStore
	ListingRepo ListingGetter
}

// OpenChat is the idempotent open-or-create: repeated calls with the same
// listing and caller return the same chat id, including under races.
func (s *ChatService) OpenChat(ctx context.Context, listingID, callerID int) (models.Chat, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Chat{}, err
	}
	if listing.UserID == callerID {
		// the owner has no counterpart yet; threads with tenants appear
		// in the inbox once a tenant makes contact
		return models.Chat{}, models.ErrForbidden
	}
	return s.ChatRepo.OpenOrCreateChat(ctx, listingID, listing.UserID, callerID)
}

// GetChatForUser returns the chat after a membership check.
func (s *ChatService) GetChatForUser(ctx context.Context, chatID, userID int) (models.Chat, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	if !chat.IsMember(userID) {
		return models.Chat{}, models.ErrNotChatMember
	}
	return chat, nil
}

func (s *ChatService) GetThreadsByUserID(ctx context.Context, userID int) ([]models.ChatThread, error) {
	return s.ChatRepo.GetThreadsByUserID(ctx, userID)
}
