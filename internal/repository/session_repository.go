package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarhub/aqar-hub-api/internal/models"
)

// SessionRepository persists bearer-token sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO sessions (id, user_id, token, expires_at, created_at, ip_address, user_agent) VALUES (:id, :user_id, :token, :expires_at, :created_at, :ip_address, :user_agent)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindUserByToken returns the user joined through a session whose token
// matches and whose expiry lies strictly after the provided instant.
// A pure read: no sliding expiry, no touch.
func (r *SessionRepository) FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	const query = `SELECT u.id, u.name, u.email, u.password_hash, u.role, u.status, u.created_at, u.updated_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ?
		LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, token, now); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by session token: %w", err)
	}
	return &user, nil
}

// DeleteByToken removes the session with the exact token. Deleting a
// non-existent token is not an error.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = ?`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("delete session by token: %w", err)
	}
	return nil
}

// DeleteByUser removes every session owned by the given user.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM sessions WHERE user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}

// DeleteExpired bulk-deletes sessions whose expiry has passed and returns
// the number removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= ?`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return count, nil
}
