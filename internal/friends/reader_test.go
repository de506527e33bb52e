package friends

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"io.winapps.chatterbox/internal/db"
	models "io.winapps.chatterbox/internal/models/account"
)

func TestReader_Friends(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.service.Submit(ctx, alice, bob.Email))
	require.NoError(t, f.service.Submit(ctx, carol, bob.Email))
	_, err := f.service.Accept(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.service.Accept(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	friends, err := f.reader.Friends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.User{alice, carol}, friends)

	friends, err = f.reader.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.User{bob}, friends)
}

func TestReader_Friends_OmitsUnresolvable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, id := range []string{alice.ID, "ghost-id", "broken-id", carol.ID} {
		require.NoError(t, f.store.AddMember(ctx, db.FriendsKey(bob.ID), id))
	}
	require.NoError(t, f.store.Set(ctx, db.UserKey("broken-id"), "{"))
	f.store.FailOn(db.OpGet, db.UserKey(carol.ID), errors.New("timeout"))

	friends, err := f.reader.Friends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.User{alice}, friends)
	assert.Equal(t, 3, f.logs.FilterMessage("omitting friend that could not be resolved").Len())
}

func TestReader_Friends_SetReadFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn(db.OpMembers, db.FriendsKey(bob.ID), errors.New("boom"))

	_, err := f.reader.Friends(context.Background(), bob.ID)
	assert.ErrorContains(t, err, "list friends of bob-id")
}

func TestReader_Friends_Empty(t *testing.T) {
	friends, err := newFixture(t).reader.Friends(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestReader_IncomingRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.service.Submit(ctx, alice, bob.Email))
	for _, id := range []string{"ghost-id", "broken-id", "noemail-id", "slow-id"} {
		require.NoError(t, f.store.AddMember(ctx, db.IncomingRequestsKey(bob.ID), id))
	}
	require.NoError(t, f.store.Set(ctx, db.UserKey("broken-id"), "not json"))
	require.NoError(t, f.store.Set(ctx, db.UserKey("noemail-id"), `{"id":"noemail-id","name":"N"}`))
	f.store.FailOn(db.OpGet, db.UserKey("slow-id"), errors.New("timeout"))

	requests, err := f.reader.IncomingRequests(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []IncomingRequest{
		{SenderID: alice.ID, SenderEmail: alice.Email},
		{SenderID: "broken-id", SenderEmail: InvalidUserData},
		{SenderID: "ghost-id", SenderEmail: UnknownEmail},
		{SenderID: "noemail-id", SenderEmail: NoEmailAvailable},
		{SenderID: "slow-id", SenderEmail: EmailLookupError},
	}, requests)
	assert.Equal(t, 1, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestReader_UnseenRequestCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	count, err := f.reader.UnseenRequestCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, f.service.Submit(ctx, alice, bob.Email))
	count, err = f.reader.UnseenRequestCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.service.Accept(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	count, err = f.reader.UnseenRequestCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	f.store.FailOn(db.OpMembers, db.IncomingRequestsKey(bob.ID), errors.New("boom"))
	_, err = f.reader.UnseenRequestCount(ctx, bob.ID)
	assert.Error(t, err)
}
