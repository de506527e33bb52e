package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"io.winapps.chatterbox/internal/auth"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier checks Firebase ID tokens and reads the profile claims from them.
type Verifier struct {
	client idTokenVerifier
}

func NewVerifier(ctx context.Context, app *firebase.App) (*Verifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	return &Verifier{client: client}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Session, error) {
	idToken, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if idToken.UID == "" {
		return auth.Session{}, fmt.Errorf("%w: missing uid", auth.ErrInvalidToken)
	}

	return auth.Session{
		ID:    idToken.UID,
		Name:  stringClaim(idToken.Claims, "name"),
		Email: stringClaim(idToken.Claims, "email"),
		Image: stringClaim(idToken.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
