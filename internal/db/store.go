package db

import (
	"context"
	"errors"
)

// ErrNil is returned by Get when the key does not exist.
var ErrNil = errors.New("db: key does not exist")

// Store is the set/string key-value surface the app needs. Every method is a single-key
// round trip; there is no multi-key transaction.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	IsMember(ctx context.Context, key, member string) (bool, error)
	AddMember(ctx context.Context, key, member string) error
	RemoveMember(ctx context.Context, key, member string) error
	Members(ctx context.Context, key string) ([]string, error)
}

// KeyScanner is implemented by stores that can enumerate keys by glob pattern.
type KeyScanner interface {
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}
