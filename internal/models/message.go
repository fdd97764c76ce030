package models

import "time"

// Message is one append-only chat entry. ReadAt is the only mutable field,
// set once when the recipient views the thread.
type Message struct {
	ID          int        `json:"id"`
	ChatID      int        `json:"chat_id"`
	SenderID    int        `json:"sender_id"`
	RecipientID int        `json:"recipient_id"`
	Text        string     `json:"text"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

type PostMessageRequest struct {
	Text string `json:"text"`
}
