package models

type ListFriendRequestsResponse struct {
	Requests []IncomingFriendRequest `json:"requests"`
}

type IncomingFriendRequest struct {
	SenderID    string `json:"senderId"`
	SenderEmail string `json:"senderEmail"`
}
