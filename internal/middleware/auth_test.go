package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	"github.com/aqarhub/aqar-hub-api/internal/service"
)

type stubUserRepo struct{}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

type stubSessionRepo struct {
	user *models.User
}

func (s *stubSessionRepo) Create(ctx context.Context, session *models.Session) error { return nil }

func (s *stubSessionRepo) FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	if s.user != nil && token == "valid-token" {
		copied := *s.user
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubSessionRepo) DeleteByToken(ctx context.Context, token string) error { return nil }

func (s *stubSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newTestAuthService(user *models.User) *service.AuthService {
	return service.NewAuthService(&stubUserRepo{}, &stubSessionRepo{user: user}, validator.New(), zap.NewNop(), service.AuthConfig{SessionLifetime: time.Hour})
}

func performRequest(t *testing.T, m gin.HandlerFunc, authorization string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/protected", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c.Request = req
	m(c)
	return w, c
}

func TestAuthMissingHeader(t *testing.T) {
	svc := newTestAuthService(nil)
	w, c := performRequest(t, Auth(svc), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthMalformedHeader(t *testing.T) {
	svc := newTestAuthService(nil)
	for _, header := range []string{"valid-token", "Basic abc", "Bearer"} {
		w, _ := performRequest(t, Auth(svc), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthUnknownToken(t *testing.T) {
	svc := newTestAuthService(nil)
	w, _ := performRequest(t, Auth(svc), "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidTokenSetsUser(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleFaculty, Status: models.StatusActive}
	svc := newTestAuthService(user)
	w, c := performRequest(t, Auth(svc), "Bearer valid-token")
	assert.Equal(t, http.StatusOK, w.Code)

	stored, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, "u1", stored.ID)
}

func TestAuthCaseInsensitiveScheme(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleFaculty, Status: models.StatusActive}
	svc := newTestAuthService(user)
	w, _ := performRequest(t, Auth(svc), "bearer valid-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ContextUserKey, &models.User{ID: "u1", Role: models.RoleIQAC})

	RequireRoles(models.RoleIQAC, models.RoleAdmin)(c)
	assert.False(t, c.IsAborted())
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ContextUserKey, &models.User{ID: "u1", Role: models.RoleFaculty})

	RequireRoles(models.RoleAdmin)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RequireRoles(models.RoleAdmin)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
