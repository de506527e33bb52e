package friends

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/db"
	models "io.winapps.chatterbox/internal/models/account"
	notificationsmodels "io.winapps.chatterbox/internal/models/notifications"
	"io.winapps.chatterbox/internal/realtime"
	"io.winapps.chatterbox/internal/users"
)

// Notifier publishes an event on a realtime channel.
type Notifier interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// Outcome describes what Accept or Deny did. Every outcome is a success for the caller.
type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeAlreadyFriends Outcome = "already_friends"
	OutcomeNoRequest      Outcome = "no_pending_request"
	// OutcomeCheckFailed means the existence check errored and the operation was skipped.
	OutcomeCheckFailed Outcome = "check_failed"
)

// Service applies the friend-request state transitions. Each operation is a sequence
// of single-key store calls with no transaction; repeating a call is safe because
// SADD and SREM of an existing/absent member are no-ops.
type Service struct {
	store     db.Store
	directory *users.Directory
	notifier  Notifier
	logger    *zap.SugaredLogger
}

func NewService(store db.Store, directory *users.Directory, notifier Notifier, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		store:     store,
		directory: directory,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit sends a friend request from requester to the user registered under email.
//
// Order: checks, then the notification, then the two set writes. A failure after the
// publish leaves the target notified of a request that was not recorded.
func (s *Service) Submit(ctx context.Context, requester models.User, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	targetID, err := s.directory.IDByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if targetID == requester.ID {
		return ErrSelfRequest
	}

	pending, err := s.store.IsMember(ctx, db.IncomingRequestsKey(targetID), requester.ID)
	if err != nil {
		return fmt.Errorf("check pending request: %w", err)
	}
	if pending {
		return ErrDuplicateRequest
	}

	friends, err := s.store.IsMember(ctx, db.FriendsKey(requester.ID), targetID)
	if err != nil {
		return fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		return ErrAlreadyFriends
	}

	event := notificationsmodels.IncomingFriendRequestEvent{
		SenderID:    requester.ID,
		SenderEmail: requester.Email,
	}
	if err := s.notifier.Publish(ctx, realtime.IncomingFriendRequestsChannel(targetID), realtime.EventIncomingFriendRequests, event); err != nil {
		return fmt.Errorf("%w: %w", ErrNotify, err)
	}

	return s.run(ctx, "submit", []string{"publish notification"},
		s.addStep(db.IncomingRequestsKey(targetID), requester.ID),
		s.addStep(db.OutgoingRequestsKey(requester.ID), targetID),
	)
}

// Accept turns a pending request from senderID into a friendship. Already being
// friends, having no pending request, or failing to check either is reported as a
// successful no-op. A failure during the writes returns a *PartialWriteError.
func (s *Service) Accept(ctx context.Context, accepterID, senderID string) (Outcome, error) {
	friends, err := s.store.IsMember(ctx, db.FriendsKey(accepterID), senderID)
	if err != nil {
		s.logger.Warnw("friendship check failed, skipping accept",
			"accepter_id", accepterID, "sender_id", senderID, "error", err)
		return OutcomeCheckFailed, nil
	}
	if friends {
		s.logger.Infow("already friends, nothing to accept", "accepter_id", accepterID, "sender_id", senderID)
		return OutcomeAlreadyFriends, nil
	}

	if outcome, ok := s.checkPending(ctx, "accept", accepterID, senderID); !ok {
		return outcome, nil
	}

	err = s.run(ctx, "accept", nil,
		s.addStep(db.FriendsKey(accepterID), senderID),
		s.addStep(db.FriendsKey(senderID), accepterID),
		s.removeStep(db.OutgoingRequestsKey(senderID), accepterID),
		s.removeStep(db.IncomingRequestsKey(accepterID), senderID),
	)
	if err != nil {
		return "", err
	}
	return OutcomeApplied, nil
}

// Deny drops a pending request from senderID without creating a friendship.
func (s *Service) Deny(ctx context.Context, denierID, senderID string) (Outcome, error) {
	if outcome, ok := s.checkPending(ctx, "deny", denierID, senderID); !ok {
		return outcome, nil
	}

	err := s.run(ctx, "deny", nil,
		s.removeStep(db.OutgoingRequestsKey(senderID), denierID),
		s.removeStep(db.IncomingRequestsKey(denierID), senderID),
	)
	if err != nil {
		return "", err
	}
	return OutcomeApplied, nil
}

// checkPending reports whether senderID has a pending request to receiverID. When it
// returns false the outcome explains why the operation should stop.
func (s *Service) checkPending(ctx context.Context, op, receiverID, senderID string) (Outcome, bool) {
	pending, err := s.store.IsMember(ctx, db.IncomingRequestsKey(receiverID), senderID)
	if err != nil {
		s.logger.Warnw("pending request check failed, skipping "+op,
			"receiver_id", receiverID, "sender_id", senderID, "error", err)
		return OutcomeCheckFailed, false
	}
	if !pending {
		s.logger.Infow("no pending friend request, nothing to "+op,
			"receiver_id", receiverID, "sender_id", senderID)
		return OutcomeNoRequest, false
	}
	return "", true
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

func (s *Service) addStep(key, member string) step {
	return step{
		name: fmt.Sprintf("SADD %s %s", key, member),
		run:  func(ctx context.Context) error { return s.store.AddMember(ctx, key, member) },
	}
}

func (s *Service) removeStep(key, member string) step {
	return step{
		name: fmt.Sprintf("SREM %s %s", key, member),
		run:  func(ctx context.Context) error { return s.store.RemoveMember(ctx, key, member) },
	}
}

// run executes steps in order and stops at the first failure.
func (s *Service) run(ctx context.Context, op string, completed []string, steps ...step) error {
	for _, st := range steps {
		if err := st.run(ctx); err != nil {
			return &PartialWriteError{
				Op:        op,
				Completed: completed,
				Failed:    st.name,
				Err:       err,
			}
		}
		completed = append(completed, st.name)
	}
	return nil
}
