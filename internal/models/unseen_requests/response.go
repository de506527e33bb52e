package models

type UnseenRequestsResponse struct {
	Count int `json:"count"`
}
