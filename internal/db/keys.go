package db

import (
	"fmt"
	"strings"
)

func UserKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func UserEmailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func FriendsKey(id string) string {
	return fmt.Sprintf("user:%s:friends", id)
}

func IncomingRequestsKey(id string) string {
	return fmt.Sprintf("user:%s:incoming_friend_requests", id)
}

func OutgoingRequestsKey(id string) string {
	return fmt.Sprintf("user:%s:outgoing_friend_requests", id)
}

// FriendsKeyPattern matches every friends set.
const FriendsKeyPattern = "user:*:friends"

// UserIDFromFriendsKey extracts <id> from "user:<id>:friends".
func UserIDFromFriendsKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "user:") || !strings.HasSuffix(key, ":friends") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, "user:"), ":friends")
	if id == "" {
		return "", false
	}
	return id, true
}
