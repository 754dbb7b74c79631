package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

type mockAuthUsers struct {
	userByEmail    *models.User
	findByEmailErr error
	lookedUp       string
}

func (m *mockAuthUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.lookedUp = email
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

type mockAuthSessions struct {
	sessions  map[string]*models.Session
	users     map[string]*models.User
	createErr error
	deleted   []string
	purged    int64
}

func (m *mockAuthSessions) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.sessions == nil {
		m.sessions = make(map[string]*models.Session)
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *mockAuthSessions) FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	session, ok := m.sessions[token]
	if !ok || !session.ExpiresAt.After(now) {
		return nil, sql.ErrNoRows
	}
	user, ok := m.users[session.UserID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *mockAuthSessions) DeleteByToken(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	delete(m.sessions, token)
	return nil
}

func (m *mockAuthSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	for token, session := range m.sessions {
		if !session.ExpiresAt.After(now) {
			delete(m.sessions, token)
			m.purged++
		}
	}
	return m.purged, nil
}

func newTestAuthService(users *mockAuthUsers, sessions *mockAuthSessions) *AuthService {
	return NewAuthService(users, sessions, validator.New(), zap.NewNop(), AuthConfig{SessionLifetime: time.Hour})
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Name:         "Asha",
		Email:        "asha@college.edu",
		PasswordHash: string(hash),
		Role:         models.RoleFaculty,
		Status:       models.StatusActive,
	}
}

func TestLoginIssuesSession(t *testing.T) {
	user := activeUser(t, "secret123")
	users := &mockAuthUsers{userByEmail: user}
	sessions := &mockAuthSessions{}
	svc := newTestAuthService(users, sessions)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@college.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Len(t, res.Token, 64, "token must be 32 random bytes hex encoded")
	assert.Empty(t, res.User.PasswordHash)
	assert.Contains(t, sessions.sessions, res.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, 5*time.Second)
}

func TestLoginTokensAreUnique(t *testing.T) {
	user := activeUser(t, "secret123")
	svc := newTestAuthService(&mockAuthUsers{userByEmail: user}, &mockAuthSessions{})

	first, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@college.edu", Password: "secret123"})
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@college.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	users := &mockAuthUsers{findByEmailErr: sql.ErrNoRows}
	svc := newTestAuthService(users, &mockAuthSessions{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@college.edu", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLoginNormalizesEmailCasing(t *testing.T) {
	user := activeUser(t, "secret123")
	users := &mockAuthUsers{userByEmail: user}
	svc := newTestAuthService(users, &mockAuthSessions{})

	// Accounts are stored with lowercase emails; the lookup must see the
	// normalized form regardless of how the caller typed it.
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "Asha@College.EDU", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "asha@college.edu", users.lookedUp)
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "secret123")
	svc := newTestAuthService(&mockAuthUsers{userByEmail: user}, &mockAuthSessions{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@college.edu", Password: "not-it"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccountBeatsPasswordCheck(t *testing.T) {
	user := activeUser(t, "secret123")
	user.Status = models.StatusInactive
	svc := newTestAuthService(&mockAuthUsers{userByEmail: user}, &mockAuthSessions{})

	// Even with the correct password an inactive account is rejected with
	// the inactive code, not invalid credentials.
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@college.edu", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestVerifyResolvesUser(t *testing.T) {
	user := activeUser(t, "secret123")
	sessions := &mockAuthSessions{
		sessions: map[string]*models.Session{
			"tok": {UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
		},
		users: map[string]*models.User{"u1": user},
	}
	svc := newTestAuthService(&mockAuthUsers{}, sessions)

	got, err := svc.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Empty(t, got.PasswordHash)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	user := activeUser(t, "secret123")
	expiresAt := time.Now().UTC().Add(time.Hour)
	sessions := &mockAuthSessions{
		sessions: map[string]*models.Session{
			"tok": {UserID: "u1", Token: "tok", ExpiresAt: expiresAt},
		},
		users: map[string]*models.User{"u1": user},
	}
	svc := newTestAuthService(&mockAuthUsers{}, sessions)

	// One second before expiry the session is valid.
	svc.clock = func() time.Time { return expiresAt.Add(-time.Second) }
	_, err := svc.Verify(context.Background(), "tok")
	require.NoError(t, err)

	// Exactly at expiry the session is no longer valid.
	svc.clock = func() time.Time { return expiresAt }
	_, err = svc.Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestVerifyUnknownToken(t *testing.T) {
	svc := newTestAuthService(&mockAuthUsers{}, &mockAuthSessions{})

	_, err := svc.Verify(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestVerifyInactiveUser(t *testing.T) {
	user := activeUser(t, "secret123")
	user.Status = models.StatusInactive
	sessions := &mockAuthSessions{
		sessions: map[string]*models.Session{
			"tok": {UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
		},
		users: map[string]*models.User{"u1": user},
	}
	svc := newTestAuthService(&mockAuthUsers{}, sessions)

	_, err := svc.Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	sessions := &mockAuthSessions{
		sessions: map[string]*models.Session{
			"tok": {UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
		},
	}
	svc := newTestAuthService(&mockAuthUsers{}, sessions)

	require.NoError(t, svc.Logout(context.Background(), "tok"))
	require.NoError(t, svc.Logout(context.Background(), "tok"))
	assert.Equal(t, []string{"tok", "tok"}, sessions.deleted)
}

func TestCleanExpiredSessions(t *testing.T) {
	now := time.Now().UTC()
	sessions := &mockAuthSessions{
		sessions: map[string]*models.Session{
			"live":  {UserID: "u1", Token: "live", ExpiresAt: now.Add(time.Hour)},
			"stale": {UserID: "u1", Token: "stale", ExpiresAt: now.Add(-time.Minute)},
		},
	}
	svc := newTestAuthService(&mockAuthUsers{}, sessions)
	svc.clock = func() time.Time { return now }

	purged, err := svc.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Contains(t, sessions.sessions, "live")
	assert.NotContains(t, sessions.sessions, "stale")
}
