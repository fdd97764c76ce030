package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"arendaBack/internal/models"
)

type tripleKey struct {
	listingID, ownerID, participantID int
}

type stubChats struct {
	nextID  int
	byID    map[int]models.Chat
	byKey   map[tripleKey]int
	threads []models.ChatThread
}

func newStubChats() *stubChats {
	return &stubChats{nextID: 1, byID: make(map[int]models.Chat), byKey: make(map[tripleKey]int)}
}

func (s *stubChats) OpenOrCreateChat(ctx context.Context, listingID, ownerID, participantID int) (models.Chat, error) {
	key := tripleKey{listingID, ownerID, participantID}
	if id, ok := s.byKey[key]; ok {
		return s.byID[id], nil
	}
	chat := models.Chat{
		ID:            s.nextID,
		ListingID:     listingID,
		OwnerID:       ownerID,
		ParticipantID: participantID,
		CreatedAt:     time.Now(),
	}
	s.nextID++
	s.byID[chat.ID] = chat
	s.byKey[key] = chat.ID
	return chat, nil
}

func (s *stubChats) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	chat, ok := s.byID[id]
	if !ok {
		return models.Chat{}, models.ErrChatNotFound
	}
	return chat, nil
}

func (s *stubChats) GetThreadsByUserID(ctx context.Context, userID int) ([]models.ChatThread, error) {
	return s.threads, nil
}

func newChatService() (*ChatService, *stubChats) {
	chats := newStubChats()
	listings := &stubListings{listings: map[int]models.Listing{
		10: {ID: 10, UserID: 1, Title: "Two-room flat", Status: models.ListingStatusPublished},
	}}
	return &ChatService{ChatRepo: chats, ListingRepo: listings}, chats
}

func TestOpenChatIsIdempotent(t *testing.T) {
	svc, _ := newChatService()
	ctx := context.Background()

	first, err := svc.OpenChat(ctx, 10, 2)
	if err != nil {
		t.Fatalf("OpenChat: %v", err)
	}
	second, err := svc.OpenChat(ctx, 10, 2)
	if err != nil {
		t.Fatalf("OpenChat repeat: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same chat id, got %d then %d", first.ID, second.ID)
	}
	if first.OwnerID != 1 || first.ParticipantID != 2 {
		t.Fatalf("unexpected members: owner=%d participant=%d", first.OwnerID, first.ParticipantID)
	}
}

func TestOpenChatRejectsOwner(t *testing.T) {
	svc, _ := newChatService()

	_, err := svc.OpenChat(context.Background(), 10, 1)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for owner, got %v", err)
	}
}

func TestOpenChatUnknownListing(t *testing.T) {
	svc, _ := newChatService()

	_, err := svc.OpenChat(context.Background(), 404, 2)
	if !errors.Is(err, models.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestGetChatForUserChecksMembership(t *testing.T) {
	svc, _ := newChatService()
	ctx := context.Background()

	chat, err := svc.OpenChat(ctx, 10, 2)
	if err != nil {
		t.Fatalf("OpenChat: %v", err)
	}

	if _, err := svc.GetChatForUser(ctx, chat.ID, 1); err != nil {
		t.Fatalf("owner must be a member: %v", err)
	}
	if _, err := svc.GetChatForUser(ctx, chat.ID, 2); err != nil {
		t.Fatalf("participant must be a member: %v", err)
	}
	if _, err := svc.GetChatForUser(ctx, chat.ID, 3); !errors.Is(err, models.ErrNotChatMember) {
		t.Fatalf("expected ErrNotChatMember, got %v", err)
	}
}
