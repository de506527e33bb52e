package models

type AddFriendRequest struct {
	Email string `json:"email" binding:"required"`
}
