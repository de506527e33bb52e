package friends

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"io.winapps.chatterbox/internal/db"
	models "io.winapps.chatterbox/internal/models/account"
	"io.winapps.chatterbox/internal/users"
)

// Placeholder emails for incoming requests whose sender cannot be resolved.
const (
	UnknownEmail     = "Unknown email"
	InvalidUserData  = "Invalid user data"
	NoEmailAvailable = "No email available"
	EmailLookupError = "Error retrieving email"
)

const lookupConcurrency = 8

// IncomingRequest is a pending request as shown to its receiver.
type IncomingRequest struct {
	SenderID    string
	SenderEmail string
}

// Reader derives the views the dashboard needs from the friend and request sets.
type Reader struct {
	store     db.Store
	directory *users.Directory
	logger    *zap.SugaredLogger
}

func NewReader(store db.Store, directory *users.Directory, logger *zap.SugaredLogger) *Reader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reader{store: store, directory: directory, logger: logger}
}

// Friends resolves every member of the user's friends set. Ids whose profile cannot be
// loaded are left out of the result and logged; only a failure to read the set itself
// is returned as an error.
func (r *Reader) Friends(ctx context.Context, userID string) ([]models.User, error) {
	ids, err := r.store.Members(ctx, db.FriendsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("list friends of %s: %w", userID, err)
	}

	resolved := make([]models.User, len(ids))
	ok := make([]bool, len(ids))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			user, err := r.directory.Get(ctx, id)
			if err != nil {
				r.logger.Warnw("omitting friend that could not be resolved",
					"user_id", userID, "friend_id", id, "error", err)
				return nil
			}
			resolved[i] = user
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	friends := make([]models.User, 0, len(ids))
	for i := range resolved {
		if ok[i] {
			friends = append(friends, resolved[i])
		}
	}
	return friends, nil
}

// IncomingRequests lists pending requests with the sender's email. Unlike Friends, an
// unresolvable sender is kept with a placeholder email so it can still be answered.
func (r *Reader) IncomingRequests(ctx context.Context, userID string) ([]IncomingRequest, error) {
	senderIDs, err := r.store.Members(ctx, db.IncomingRequestsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("list incoming requests of %s: %w", userID, err)
	}

	requests := make([]IncomingRequest, len(senderIDs))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, senderID := range senderIDs {
		g.Go(func() error {
			requests[i] = IncomingRequest{
				SenderID:    senderID,
				SenderEmail: r.senderEmail(ctx, userID, senderID),
			}
			return nil
		})
	}
	_ = g.Wait()

	return requests, nil
}

func (r *Reader) senderEmail(ctx context.Context, userID, senderID string) string {
	sender, err := r.directory.Get(ctx, senderID)
	switch {
	case errors.Is(err, users.ErrNotFound):
		r.logger.Warnw("no user data for friend request sender", "user_id", userID, "sender_id", senderID)
		return UnknownEmail
	case errors.Is(err, users.ErrInvalidRecord):
		r.logger.Warnw("unparseable user data for friend request sender",
			"user_id", userID, "sender_id", senderID, "error", err)
		return InvalidUserData
	case err != nil:
		r.logger.Errorw("failed to load friend request sender",
			"user_id", userID, "sender_id", senderID, "error", err)
		return EmailLookupError
	case sender.Email == "":
		return NoEmailAvailable
	}
	return sender.Email
}

// UnseenRequestCount is the number of pending incoming requests. Every pending request
// counts as unseen; there is no acknowledgement state.
func (r *Reader) UnseenRequestCount(ctx context.Context, userID string) (int, error) {
	senderIDs, err := r.store.Members(ctx, db.IncomingRequestsKey(userID))
	if err != nil {
		return 0, fmt.Errorf("count incoming requests of %s: %w", userID, err)
	}
	return len(senderIDs), nil
}
