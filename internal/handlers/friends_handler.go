package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/friends"
)

type FriendsHandler struct {
	service *friends.Service
	reader  *friends.Reader
	logger  *zap.SugaredLogger
}

// NewFriendsHandler creates a new friends handler
func NewFriendsHandler(service *friends.Service, reader *friends.Reader, logger *zap.SugaredLogger) *FriendsHandler {
	return &FriendsHandler{
		service: service,
		reader:  reader,
		logger:  logger,
	}
}

// submitErrorResponse maps a Submit error to the status and message shown to the sender.
func submitErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, friends.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, "Invalid request payload: " + err.Error()
	case errors.Is(err, friends.ErrUserNotFound):
		return http.StatusBadRequest, "This person does not exist"
	case errors.Is(err, friends.ErrSelfRequest):
		return http.StatusBadRequest, "You cannot add yourself as a friend"
	case errors.Is(err, friends.ErrDuplicateRequest):
		return http.StatusBadRequest, "Already added this user"
	case errors.Is(err, friends.ErrAlreadyFriends):
		return http.StatusBadRequest, "Already friends with this user"
	case errors.Is(err, friends.ErrNotify):
		return http.StatusInternalServerError, "Failed to send friend request notification"
	default:
		return http.StatusInternalServerError, "Failed to send friend request"
	}
}
