package repositories

import (
	"context"
	"database/sql"
	"time"

	"arendaBack/internal/models"
)

type MessageRepository struct {
	Db *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	message.CreatedAt = time.Now()
	query := `
        INSERT INTO messages (chat_id, sender_id, recipient_id, text, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	result, err := r.Db.ExecContext(ctx, query,
		message.ChatID, message.SenderID, message.RecipientID, message.Text, message.CreatedAt,
	)
	if err != nil {
		return models.Message{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}
	message.ID = int(id)
	return message, nil
}

// GetMessagesForChat returns messages in ascending creation order, capped by
// limit. One contract everywhere: callers clamp limit to [1, 500].
func (r *MessageRepository) GetMessagesForChat(ctx context.Context, chatID, limit int) ([]models.Message, error) {
	query := `
        SELECT id, chat_id, sender_id, recipient_id, text, created_at, read_at
        FROM messages
        WHERE chat_id = ?
        ORDER BY created_at ASC, id ASC
        LIMIT ?
    `
	rows, err := r.Db.QueryContext(ctx, query, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var (
			message models.Message
			readAt  sql.NullTime
		)
		if err := rows.Scan(
			&message.ID, &message.ChatID, &message.SenderID, &message.RecipientID,
			&message.Text, &message.CreatedAt, &readAt,
		); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time
			message.ReadAt = &t
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

// MarkMessagesRead stamps read_at on every unread message addressed to the
// recipient in the chat. Idempotent: a second call matches no rows.
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, chatID, recipientID int) error {
	query := `
        UPDATE messages SET read_at = NOW()
        WHERE chat_id = ? AND recipient_id = ? AND read_at IS NULL
    `
	_, err := r.Db.ExecContext(ctx, query, chatID, recipientID)
	return err
}

func (r *MessageRepository) CountUnread(ctx context.Context, chatID, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE chat_id = ? AND recipient_id = ? AND read_at IS NULL`
	err := r.Db.QueryRowContext(ctx, query, chatID, userID).Scan(&count)
	return count, err
}
