package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"arendaBack/internal/models"
)

type UserRepository struct {
	Db *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (name, surname, phone, email, password, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	user.CreatedAt = time.Now()
	result, err := r.Db.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password, user.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `SELECT id, name, surname, phone, email, avatar_path, created_at FROM users WHERE id = ?`
	err := r.Db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.AvatarPath, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `SELECT id, name, surname, phone, email, password, avatar_path, created_at FROM users WHERE email = ?`
	err := r.Db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password, &user.AvatarPath, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) SetSession(ctx context.Context, userID int, session models.Session) error {
	query := `UPDATE users SET refresh_token = ?, expires_at = ? WHERE id = ?`
	result, err := r.Db.ExecContext(ctx, query, session.RefreshToken, session.ExpiresAt, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `SELECT id, refresh_token, expires_at FROM users WHERE refresh_token = ?`
	err := r.Db.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.RefreshToken, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil
		}
		return models.Session{}, err
	}
	return session, nil
}

// SaveDeviceToken upserts the FCM registration token for a user.
func (r *UserRepository) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	query := `
        INSERT INTO user_tokens (user_id, token)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE token = VALUES(token)
    `
	_, err := r.Db.ExecContext(ctx, query, userID, token)
	return err
}

func (r *UserRepository) GetDeviceToken(ctx context.Context, userID int) (string, error) {
	var token string
	err := r.Db.QueryRowContext(ctx, `SELECT token FROM user_tokens WHERE user_id = ?`, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return token, err
}
