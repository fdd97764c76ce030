package models

import "time"

// Chat is the canonical conversation identity: unique per
// (listing_id, owner_id, participant_id). Created lazily on first contact.
type Chat struct {
	ID            int       `json:"id"`
	ListingID     int       `json:"listing_id"`
	OwnerID       int       `json:"owner_id"`
	ParticipantID int       `json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsMember reports whether userID is one of the two chat parties.
func (c Chat) IsMember(userID int) bool {
	return userID == c.OwnerID || userID == c.ParticipantID
}

// OtherMember returns the counterpart of userID in the chat.
func (c Chat) OtherMember(userID int) int {
	if userID == c.OwnerID {
		return c.ParticipantID
	}
	return c.OwnerID
}

// ChatThread is one inbox row: the chat plus listing context, the other
// party, last activity and the caller's unread counter.
type ChatThread struct {
	ChatID        int        `json:"chat_id"`
	ListingID     int        `json:"listing_id"`
	ListingTitle  string     `json:"listing_title"`
	OtherUser     ChatUser   `json:"other_user"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int        `json:"unread_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ChatUser struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	AvatarPath *string `json:"avatar_path,omitempty"`
}

type OpenChatRequest struct {
	ListingID int `json:"listing_id"`
}
