package models

type ListFriendsResponse struct {
	Friends []ListFriend `json:"friends"`
}

type ListFriend struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
