package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/middleware"
	models "io.winapps.chatterbox/internal/models/account"
)

// UserRegistrar stores a verified user's profile.
type UserRegistrar interface {
	Register(ctx context.Context, user models.User) error
}

type AuthHandler struct {
	users  UserRegistrar
	logger *zap.SugaredLogger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(users UserRegistrar, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// SignIn records the verified session's profile and email index, making the user
// reachable by friend requests. Clients call it once after signing in with the provider.
func (h *AuthHandler) SignIn(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	user := session.User()
	if err := h.users.Register(c.Request.Context(), user); err != nil {
		h.logError(c, err, "failed to register user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
