package realtime

import (
	"encoding/json"
	"fmt"
)

// EventIncomingFriendRequests is emitted to a user when someone sends them a request.
const EventIncomingFriendRequests = "incoming_friend_requests"

func IncomingFriendRequestsChannel(userID string) string {
	return fmt.Sprintf("user:%s:incoming_friend_requests", userID)
}

// UserChannels lists the private channels a connected user listens on.
func UserChannels(userID string) []string {
	return []string{IncomingFriendRequestsChannel(userID)}
}

// Envelope is the wire format of every published event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func encodeEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
