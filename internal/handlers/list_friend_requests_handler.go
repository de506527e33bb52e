package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.chatterbox/internal/middleware"
	models "io.winapps.chatterbox/internal/models/list_friend_requests"
	unseenmodels "io.winapps.chatterbox/internal/models/unseen_requests"
)

// ListFriendRequests returns the caller's pending incoming requests.
func (h *FriendsHandler) ListFriendRequests(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	requests, err := h.reader.IncomingRequests(c.Request.Context(), session.ID)
	if err != nil {
		h.logError(c, err, "failed to list friend requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list friend requests"})
		return
	}

	resp := models.ListFriendRequestsResponse{Requests: make([]models.IncomingFriendRequest, 0, len(requests))}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, models.IncomingFriendRequest{
			SenderID:    r.SenderID,
			SenderEmail: r.SenderEmail,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// CountUnseenRequests returns how many incoming requests are pending.
func (h *FriendsHandler) CountUnseenRequests(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := h.reader.UnseenRequestCount(c.Request.Context(), session.ID)
	if err != nil {
		h.logError(c, err, "failed to count friend requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count friend requests"})
		return
	}

	c.JSON(http.StatusOK, unseenmodels.UnseenRequestsResponse{Count: count})
}
