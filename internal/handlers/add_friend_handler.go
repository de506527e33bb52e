package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.chatterbox/internal/middleware"
	models "io.winapps.chatterbox/internal/models/add_friend"
)

// AddFriend sends a friend request to the user registered under the given email.
func (h *FriendsHandler) AddFriend(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.service.Submit(c.Request.Context(), session.User(), req.Email); err != nil {
		status, msg := submitErrorResponse(err)
		if status >= http.StatusInternalServerError {
			h.logError(c, err, "friend request failed", "email", req.Email)
		}
		c.String(status, msg)
		return
	}

	logWithContext(h.logger, c, "info", "friend request sent", "email", req.Email)
	c.String(http.StatusOK, "ok")
}
