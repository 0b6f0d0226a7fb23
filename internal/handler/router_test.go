package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/northside-portal/portal-api/internal/models"
	"github.com/northside-portal/portal-api/internal/service"
)

type userRepoStub struct {
	user *models.User
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error { return nil }

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func newPortalRouter(t *testing.T, store *flexStoreStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &userRepoStub{user: &models.User{
		ID:           uuid.NewString(),
		Username:     "student",
		PasswordHash: string(hash),
		Name:         "John",
		Role:         models.RoleStudent,
	}}

	auth := service.NewAuthService(users, nil, nil, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "portal-api",
	})
	flexes := service.NewFlexService(store, nil, 0, zap.NewNop())

	r := gin.New()
	RegisterRoutes(r, "/api", Handlers{
		Auth: NewAuthHandler(auth),
		Flex: NewFlexHandler(flexes),
	}, auth)
	return r
}

func loginToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body, _ := json.Marshal(models.LoginRequest{Username: "student", Password: "password"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRouterLoginAndRegisterFlow(t *testing.T) {
	period := flexPeriodStub()
	store := &flexStoreStub{period: period, result: models.CommitResult{Outcome: models.CommitCommitted}}
	r := newPortalRouter(t, store)
	token := loginToken(t, r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/flexes/"+period.ID+"/"+period.Options[0].ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result models.RegistrationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Successfully registered.", result.Message)
}

func TestRouterRejectsMissingToken(t *testing.T) {
	r := newPortalRouter(t, &flexStoreStub{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/flexes", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterRejectsBadToken(t *testing.T) {
	r := newPortalRouter(t, &flexStoreStub{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/flexes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterLoginBadCredentials(t *testing.T) {
	r := newPortalRouter(t, &flexStoreStub{})

	body, _ := json.Marshal(models.LoginRequest{Username: "student", Password: "wrong"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password", resp.Error.Message)
}
