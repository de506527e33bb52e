package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Strings(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "user:u1")
	assert.ErrorIs(t, err, ErrNil)

	require.NoError(t, m.Set(ctx, "user:u1", "v"))
	val, err := m.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryStore_Sets(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	key := IncomingRequestsKey("u1")

	require.NoError(t, m.AddMember(ctx, key, "b"))
	require.NoError(t, m.AddMember(ctx, key, "a"))
	require.NoError(t, m.AddMember(ctx, key, "a"))

	members, err := m.Members(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, members)

	require.NoError(t, m.RemoveMember(ctx, key, "a"))
	require.NoError(t, m.RemoveMember(ctx, key, "b"))
	require.NoError(t, m.RemoveMember(ctx, key, "b"))
	require.NoError(t, m.RemoveMember(ctx, "user:none:friends", "x"))

	ok, err := m.IsMember(ctx, key, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := m.ScanKeys(ctx, "user:*")
	require.NoError(t, err)
	assert.Empty(t, keys, "empty sets are dropped")
}

func TestMemoryStore_FailOn(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	boom := errors.New("boom")
	key := FriendsKey("u1")

	m.FailOn(OpAddMember, key, boom)

	err := m.AddMember(ctx, key, "u2")
	assert.ErrorIs(t, err, boom)
	require.NoError(t, m.AddMember(ctx, FriendsKey("u2"), "u1"), "other keys are unaffected")

	m.ClearFaults()
	require.NoError(t, m.AddMember(ctx, key, "u2"))
}

func TestMemoryStore_ScanKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.AddMember(ctx, FriendsKey("u2"), "u1"))
	require.NoError(t, m.AddMember(ctx, FriendsKey("u1"), "u2"))
	require.NoError(t, m.AddMember(ctx, OutgoingRequestsKey("u1"), "u3"))
	require.NoError(t, m.Set(ctx, UserKey("u1"), "{}"))

	keys, err := m.ScanKeys(ctx, FriendsKeyPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:u1:friends", "user:u2:friends"}, keys)
}

func TestUserIDFromFriendsKey(t *testing.T) {
	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{key: "user:u1:friends", wantID: "u1", wantOK: true},
		{key: FriendsKey("abc-123"), wantID: "abc-123", wantOK: true},
		{key: "user::friends", wantOK: false},
		{key: "user:u1:incoming_friend_requests", wantOK: false},
		{key: "chat:u1:friends", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			id, ok := UserIDFromFriendsKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
