package models

// IncomingFriendRequestEvent is the payload pushed to a user when someone sends them a
// friend request.
type IncomingFriendRequestEvent struct {
	SenderID    string `json:"senderId"`
	SenderEmail string `json:"senderEmail"`
}
