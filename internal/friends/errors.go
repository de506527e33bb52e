package friends

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest = errors.New("friend request already sent")
	ErrAlreadyFriends   = errors.New("already friends")
	// ErrNotify wraps a failure of the realtime relay during Submit.
	ErrNotify = errors.New("friend request notification failed")
)

// PartialWriteError reports a multi-key sequence that stopped part way. Steps in
// Completed were applied and are not rolled back.
type PartialWriteError struct {
	Op        string
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	completed := "none"
	if len(e.Completed) > 0 {
		completed = strings.Join(e.Completed, ", ")
	}
	return fmt.Sprintf("%s: step %q failed after [%s]: %v", e.Op, e.Failed, completed, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
