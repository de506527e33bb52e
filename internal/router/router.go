package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/auth"
	"io.winapps.chatterbox/internal/handlers"
	"io.winapps.chatterbox/internal/middleware"
	"io.winapps.chatterbox/internal/realtime"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Verifier       auth.Verifier
	AuthHandler    *handlers.AuthHandler
	FriendsHandler *handlers.FriendsHandler
	Gateway        *realtime.Gateway
	Logger         *zap.SugaredLogger
	AllowOrigin    string
}

// New builds the gin engine with middleware and every route.
func New(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggingMiddleware(d.Logger),
		middleware.RecoveryMiddleware(d.Logger),
		middleware.CORSMiddleware(d.AllowOrigin),
	)

	authn := middleware.AuthMiddleware(d.Verifier, d.Logger)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/session", authn, d.AuthHandler.SignIn)

		friends := v1.Group("/friends")
		friends.Use(authn)
		{
			friends.GET("", d.FriendsHandler.ListFriends)
			friends.POST("/add", d.FriendsHandler.AddFriend)
			friends.POST("/accept", d.FriendsHandler.AcceptFriendRequest)
			friends.POST("/deny", d.FriendsHandler.DenyFriendRequest)
			friends.GET("/requests", d.FriendsHandler.ListFriendRequests)
			friends.GET("/requests/count", d.FriendsHandler.CountUnseenRequests)
		}

		v1.GET("/realtime/ws", authn, d.Gateway.HandleConnection)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
