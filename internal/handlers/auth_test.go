package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/dto"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *token.Service
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	tokens := token.NewService("test-secret", time.Hour)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService, tokens)

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/verify", middleware.RequireAuth(tokens), handler.Verify)
	auth.GET("/me", middleware.RequireAuth(tokens), handler.GetCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:     db,
		router: r,
		tokens: tokens,
	}
}

func (env authTestEnv) postJSON(t *testing.T, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.Equal(t, "alice@example.com", response.User.Email)
	require.Equal(t, models.RoleStudent, response.User.Role)
	// Name defaults to the local part of the email
	require.Equal(t, "alice", response.User.Name)

	claims, err := env.tokens.Verify(response.Token)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, claims.UserID)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	}

	w := env.postJSON(t, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.postJSON(t, "/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email": "alice@example.com",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Details struct {
			Required []string `json:"required"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Contains(t, response.Details.Required, "password")
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "abc",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.postJSON(t, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.postJSON(t, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Verify(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Valid)
	require.Equal(t, registered.User.ID, response.User.ID)
}

func TestAuthHandler_Me_NoToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
