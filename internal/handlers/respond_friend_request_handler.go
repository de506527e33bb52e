package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.chatterbox/internal/friends"
	"io.winapps.chatterbox/internal/middleware"
	models "io.winapps.chatterbox/internal/models/respond_friend_request"
)

type respondFunc func(ctx context.Context, receiverID, senderID string) (friends.Outcome, error)

// AcceptFriendRequest answers 200 "OK" for any valid session and payload. Write
// failures are logged only; the client drops the request from its view either way.
func (h *FriendsHandler) AcceptFriendRequest(c *gin.Context) {
	h.respond(c, "accept", h.service.Accept)
}

// DenyFriendRequest has the same status contract as AcceptFriendRequest.
func (h *FriendsHandler) DenyFriendRequest(c *gin.Context) {
	h.respond(c, "deny", h.service.Deny)
}

func (h *FriendsHandler) respond(c *gin.Context, op string, fn respondFunc) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}

	outcome, err := fn(c.Request.Context(), session.ID, req.ID)
	if err != nil {
		h.logError(c, err, "friend request "+op+" partially applied", "sender_id", req.ID)
	} else {
		logWithContext(h.logger, c, "info", "friend request "+op, "sender_id", req.ID, "outcome", outcome)
	}

	c.String(http.StatusOK, "OK")
}
