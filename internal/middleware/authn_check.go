package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/auth"
)

const sessionKey = "session"

// AuthMiddleware verifies the bearer token and sets "uid" and the session in the context.
// Websocket upgrades may pass the token as ?token= since browsers cannot set headers
// on them.
func AuthMiddleware(verifier auth.Verifier, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c)
			return
		}

		session, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if logger != nil {
				logger.Debugw("token rejected", "request_id", c.GetString("request_id"), "error", err)
			}
			unauthorized(c)
			return
		}

		c.Set("uid", session.ID)
		c.Set(sessionKey, session)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.String(http.StatusUnauthorized, "Unauthorized")
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}

// SessionFrom returns the session set by AuthMiddleware.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return auth.Session{}, false
	}
	session, ok := v.(auth.Session)
	return session, ok && session.ID != ""
}
