package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.chatterbox/internal/middleware"
	models "io.winapps.chatterbox/internal/models/list_friends"
)

// ListFriends returns the profiles of the caller's friends. Friends whose profile
// cannot be loaded are left out.
func (h *FriendsHandler) ListFriends(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := h.reader.Friends(c.Request.Context(), session.ID)
	if err != nil {
		h.logError(c, err, "failed to list friends")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list friends"})
		return
	}

	resp := models.ListFriendsResponse{Friends: make([]models.ListFriend, 0, len(users))}
	for _, u := range users {
		resp.Friends = append(resp.Friends, models.ListFriend{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Image: u.Image,
		})
	}

	c.JSON(http.StatusOK, resp)
}
