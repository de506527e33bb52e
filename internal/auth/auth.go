package auth

import (
	"context"
	"errors"

	models "io.winapps.chatterbox/internal/models/account"
)

// ErrInvalidToken is returned for any token that does not yield a usable session.
var ErrInvalidToken = errors.New("invalid or expired token")

// Session is the verified identity behind a request.
type Session struct {
	ID    string
	Name  string
	Email string
	Image string
}

// User converts the session into the stored profile shape.
func (s Session) User() models.User {
	return models.User{ID: s.ID, Name: s.Name, Email: s.Email, Image: s.Image}
}

// Verifier turns a bearer token into a Session.
type Verifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}
