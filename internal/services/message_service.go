package services

import (
	"context"
	"fmt"
	"strings"

	"arendaBack/internal/models"
)

const (
	defaultMessageLimit = 100
	maxMessageLimit     = 500
)

// MessageStore is implemented by repositories.MessageRepository.
type MessageStore interface {
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)
	GetMessagesForChat(ctx context.Context, chatID, limit int) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, recipientID int) error
	CountUnread(ctx context.Context, chatID, userID int) (int, error)
}

type MessageService struct {
	MessageRepo MessageStore
	ChatRepo    ChatStore
	Push        Notifier
}

func (s *MessageService) memberChat(ctx context.Context, chatID, userID int) (models.Chat, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	if !chat.IsMember(userID) {
		return models.Chat{}, models.ErrNotChatMember
	}
	return chat, nil
}

// PostMessage appends a message from a chat member to the other member with
// a server-assigned timestamp.
func (s *MessageService) PostMessage(ctx context.Context, chatID, senderID int, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, models.ErrEmptyMessage
	}

	chat, err := s.memberChat(ctx, chatID, senderID)
	if err != nil {
		return models.Message{}, err
	}

	message, err := s.MessageRepo.CreateMessage(ctx, models.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		RecipientID: chat.OtherMember(senderID),
		Text:        text,
	})
	if err != nil {
		return models.Message{}, err
	}

	if s.Push != nil {
		s.Push.Notify(ctx, message.RecipientID, "New message", text, map[string]string{
			"chat_id": fmt.Sprint(chatID),
		})
	}
	return message, nil
}

// GetMessages lists a thread in ascending creation order. One pagination
// contract everywhere: limit defaults to 100 and is capped at 500.
func (s *MessageService) GetMessages(ctx context.Context, chatID, userID, limit int) ([]models.Message, error) {
	if _, err := s.memberChat(ctx, chatID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	return s.MessageRepo.GetMessagesForChat(ctx, chatID, limit)
}

// MarkRead stamps every unread message addressed to the caller. Idempotent.
func (s *MessageService) MarkRead(ctx context.Context, chatID, userID int) error {
	if _, err := s.memberChat(ctx, chatID, userID); err != nil {
		return err
	}
	return s.MessageRepo.MarkMessagesRead(ctx, chatID, userID)
}

// UnreadCount reflects MarkRead immediately: it always reads the store.
func (s *MessageService) UnreadCount(ctx context.Context, chatID, userID int) (int, error) {
	if _, err := s.memberChat(ctx, chatID, userID); err != nil {
		return 0, err
	}
	return s.MessageRepo.CountUnread(ctx, chatID, userID)
}
