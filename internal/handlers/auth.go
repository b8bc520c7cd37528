package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/token"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *token.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Register creates a new user and returns a fresh token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login authenticates a user and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Verify confirms that the presented token is valid and that its subject
// still resolves to a stored user.
func (h *AuthHandler) Verify(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "User no longer exists")
			return
		}
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Valid: true,
		User:  dto.ToUserDTO(*user),
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(identity.UserID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	signed, err := h.tokens.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(status, dto.AuthResponse{
		Token:     signed,
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
		User:      dto.ToUserDTO(*user),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
