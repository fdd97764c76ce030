package repositories

import (
	"context"
	"database/sql"
	"errors"

	"arendaBack/internal/models"
)

type ChatRepository struct {
	Db *sql.DB
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	var chat models.Chat
	query := `SELECT id, listing_id, owner_id, participant_id, created_at FROM chats WHERE id = ?`
	err := r.Db.QueryRowContext(ctx, query, id).Scan(
		&chat.ID, &chat.ListingID, &chat.OwnerID, &chat.ParticipantID, &chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Chat{}, models.ErrChatNotFound
		}
		return models.Chat{}, err
	}
	return chat, nil
}

func (r *ChatRepository) GetChatByTriple(ctx context.Context, listingID, ownerID, participantID int) (models.Chat, error) {
	var chat models.Chat
	query := `
        SELECT id, listing_id, owner_id, participant_id, created_at
        FROM chats
        WHERE listing_id = ? AND owner_id = ? AND participant_id = ?
        LIMIT 1
    `
	err := r.Db.QueryRowContext(ctx, query, listingID, ownerID, participantID).Scan(
		&chat.ID, &chat.ListingID, &chat.OwnerID, &chat.ParticipantID, &chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Chat{}, models.ErrChatNotFound
		}
		return models.Chat{}, err
	}
	return chat, nil
}

// OpenOrCreateChat returns the chat keyed by the triple, inserting it on
// first contact. The unique index on the triple arbitrates concurrent
// creates: the losing insert re-fetches the winner's row.
func (r *ChatRepository) OpenOrCreateChat(ctx context.Context, listingID, ownerID, participantID int) (models.Chat, error) {
	chat, err := r.GetChatByTriple(ctx, listingID, ownerID, participantID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, models.ErrChatNotFound) {
		return models.Chat{}, err
	}

	insertQuery := `INSERT INTO chats (listing_id, owner_id, participant_id) VALUES (?, ?, ?)`
	result, err := r.Db.ExecContext(ctx, insertQuery, listingID, ownerID, participantID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return r.GetChatByTriple(ctx, listingID, ownerID, participantID)
		}
		return models.Chat{}, err
	}

	chatID, err := result.LastInsertId()
	if err != nil {
		return models.Chat{}, err
	}
	return r.GetChatByID(ctx, int(chatID))
}

// GetThreadsByUserID builds the caller's inbox: every chat the user belongs
// to, with listing context, the other party, last message and the unread
// counter, ordered by most recent activity (thread creation when empty).
func (r *ChatRepository) GetThreadsByUserID(ctx context.Context, userID int) ([]models.ChatThread, error) {
	query := `
WITH last_messages AS (
    SELECT m.chat_id, m.text, m.created_at
    FROM messages m
    JOIN (
        SELECT chat_id, MAX(id) AS max_id
        FROM messages
        GROUP BY chat_id
    ) t ON t.max_id = m.id
)

SELECT c.id, c.listing_id, l.title, c.created_at,
       u.id, u.name, u.surname, u.avatar_path,
       COALESCE(lm.text, '') AS last_message,
       lm.created_at AS last_message_at,
       (SELECT COUNT(*) FROM messages um
        WHERE um.chat_id = c.id AND um.recipient_id = ? AND um.read_at IS NULL) AS unread_count
FROM chats c
JOIN listings l ON l.id = c.listing_id
JOIN users u ON u.id = CASE WHEN c.owner_id = ? THEN c.participant_id ELSE c.owner_id END
LEFT JOIN last_messages lm ON lm.chat_id = c.id
WHERE c.owner_id = ? OR c.participant_id = ?
ORDER BY COALESCE(lm.created_at, c.created_at) DESC
`

	rows, err := r.Db.QueryContext(ctx, query, userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []models.ChatThread
	for rows.Next() {
		var (
			thread        models.ChatThread
			lastMessageAt sql.NullTime
		)
		if err := rows.Scan(
			&thread.ChatID, &thread.ListingID, &thread.ListingTitle, &thread.CreatedAt,
			&thread.OtherUser.ID, &thread.OtherUser.Name, &thread.OtherUser.Surname, &thread.OtherUser.AvatarPath,
			&thread.LastMessage, &lastMessageAt, &thread.UnreadCount,
		); err != nil {
			return nil, err
		}
		if lastMessageAt.Valid {
			t := lastMessageAt.Time
			thread.LastMessageAt = &t
		}
		threads = append(threads, thread)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return threads, nil
}
