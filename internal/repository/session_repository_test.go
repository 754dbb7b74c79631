package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqarhub/aqar-hub-api/internal/models"
)

func TestCreateSession(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("INSERT INTO sessions").WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	err := repo.Create(context.Background(), session)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByToken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT u.id, u.name, u.email, u.password_hash, u.role, u.status, u.created_at, u.updated_at").
		WithArgs("tok", now).
		WillReturnRows(userRows(now))

	user, err := repo.FindUserByToken(context.Background(), "tok", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByTokenExpired(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT u.id, u.name, u.email").
		WithArgs("stale", now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByToken(context.Background(), "stale", now)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByTokenMissingIsNoError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("DELETE FROM sessions WHERE token").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByToken(context.Background(), "gone")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
