package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"io.winapps.chatterbox/internal/db"
	models "io.winapps.chatterbox/internal/models/account"
)

var (
	// ErrNotFound means no record exists for the id or email.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidRecord means a user:<id> value exists but is not a valid user document.
	ErrInvalidRecord = errors.New("invalid user record")
)

// Directory reads and writes user profiles and the email -> id index.
type Directory struct {
	store db.Store
}

func NewDirectory(store db.Store) *Directory {
	return &Directory{store: store}
}

// Get loads the profile stored at user:<id>.
func (d *Directory) Get(ctx context.Context, id string) (models.User, error) {
	raw, err := d.store.Get(ctx, db.UserKey(id))
	if errors.Is(err, db.ErrNil) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %s: %w", id, err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("%w %s: %v", ErrInvalidRecord, id, err)
	}
	if user.ID == "" {
		user.ID = id
	}
	return user, nil
}

// IDByEmail resolves an email through the user:email:<email> index.
func (d *Directory) IDByEmail(ctx context.Context, email string) (string, error) {
	id, err := d.store.Get(ctx, db.UserEmailKey(email))
	if errors.Is(err, db.ErrNil) || (err == nil && id == "") {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup email %s: %w", email, err)
	}
	return id, nil
}

// Register stores the profile and indexes it by email. Called after a session is
// verified; the two writes are independent and a later sign-in repairs a partial one.
func (d *Directory) Register(ctx context.Context, user models.User) error {
	if user.ID == "" {
		return errors.New("register user: empty id")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}
	if err := d.store.Set(ctx, db.UserKey(user.ID), string(raw)); err != nil {
		return fmt.Errorf("register user %s: %w", user.ID, err)
	}

	if user.Email == "" {
		return nil
	}
	if err := d.store.Set(ctx, db.UserEmailKey(user.Email), user.ID); err != nil {
		return fmt.Errorf("index email for user %s: %w", user.ID, err)
	}
	return nil
}
