package models

// RespondFriendRequestRequest is the body of both accept and deny.
type RespondFriendRequestRequest struct {
	ID string `json:"id" binding:"required"`
}
