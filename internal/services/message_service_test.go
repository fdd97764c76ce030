package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"arendaBack/internal/models"
)

type stubMessages struct {
	nextID   int
	messages []models.Message
}

func newStubMessages() *stubMessages {
	return &stubMessages{nextID: 1}
}

func (s *stubMessages) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	message.ID = s.nextID
	message.CreatedAt = time.Now()
	s.nextID++
	s.messages = append(s.messages, message)
	return message, nil
}

func (s *stubMessages) GetMessagesForChat(ctx context.Context, chatID, limit int) ([]models.Message, error) {
	result := []models.Message{}
	for _, m := range s.messages {
		if m.ChatID == chatID {
			result = append(result, m)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *stubMessages) MarkMessagesRead(ctx context.Context, chatID, recipientID int) error {
	now := time.Now()
	for i, m := range s.messages {
		if m.ChatID == chatID && m.RecipientID == recipientID && m.ReadAt == nil {
			s.messages[i].ReadAt = &now
		}
	}
	return nil
}

func (s *stubMessages) CountUnread(ctx context.Context, chatID, userID int) (int, error) {
	count := 0
	for _, m := range s.messages {
		if m.ChatID == chatID && m.RecipientID == userID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func newMessageService(t *testing.T) (*MessageService, models.Chat) {
	t.Helper()
	chats := newStubChats()
	chat, err := chats.OpenOrCreateChat(context.Background(), 10, 1, 2)
	if err != nil {
		t.Fatalf("OpenOrCreateChat: %v", err)
	}
	svc := &MessageService{MessageRepo: newStubMessages(), ChatRepo: chats}
	return svc, chat
}

func TestPostMessageValidation(t *testing.T) {
	svc, chat := newMessageService(t)
	ctx := context.Background()

	if _, err := svc.PostMessage(ctx, chat.ID, 2, "   "); !errors.Is(err, models.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.PostMessage(ctx, chat.ID, 5, "hello"); !errors.Is(err, models.ErrNotChatMember) {
		t.Fatalf("expected ErrNotChatMember, got %v", err)
	}
	if _, err := svc.PostMessage(ctx, 404, 2, "hello"); !errors.Is(err, models.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}

func TestPostMessageAddressesOtherMember(t *testing.T) {
	svc, chat := newMessageService(t)
	ctx := context.Background()

	fromTenant, err := svc.PostMessage(ctx, chat.ID, 2, "Is it still available?")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if fromTenant.RecipientID != 1 {
		t.Fatalf("expected recipient 1, got %d", fromTenant.RecipientID)
	}

	fromOwner, err := svc.PostMessage(ctx, chat.ID, 1, "Yes, from June")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if fromOwner.RecipientID != 2 {
		t.Fatalf("expected recipient 2, got %d", fromOwner.RecipientID)
	}
}

func TestUnreadAccounting(t *testing.T) {
	svc, chat := newMessageService(t)
	ctx := context.Background()

	if _, err := svc.PostMessage(ctx, chat.ID, 2, "first"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if _, err := svc.PostMessage(ctx, chat.ID, 2, "second"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	count, err := svc.UnreadCount(ctx, chat.ID, 1)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	// the sender has nothing addressed to them
	count, err = svc.UnreadCount(ctx, chat.ID, 2)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread for sender, got %d", count)
	}

	if err := svc.MarkRead(ctx, chat.ID, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	count, err = svc.UnreadCount(ctx, chat.ID, 1)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread after mark-read, got %d", count)
	}

	// mark-read is idempotent
	if err := svc.MarkRead(ctx, chat.ID, 1); err != nil {
		t.Fatalf("MarkRead repeat: %v", err)
	}

	if _, err := svc.PostMessage(ctx, chat.ID, 2, "third"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	count, err = svc.UnreadCount(ctx, chat.ID, 1)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread after new message, got %d", count)
	}
}

func TestGetMessagesClampsLimit(t *testing.T) {
	svc, chat := newMessageService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.PostMessage(ctx, chat.ID, 2, "msg"); err != nil {
			t.Fatalf("PostMessage: %v", err)
		}
	}

	messages, err := svc.GetMessages(ctx, chat.ID, 1, 2)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	if _, err := svc.GetMessages(ctx, chat.ID, 5, 0); !errors.Is(err, models.ErrNotChatMember) {
		t.Fatalf("expected ErrNotChatMember, got %v", err)
	}
}
