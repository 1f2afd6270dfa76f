package domain

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned by Insert when the store's unique index on
// username rejects the write. It closes the race between the service-layer
// existence check and the insert: two concurrent registrations of the same
// username cannot both succeed.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines the data-access contract for identity records.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on the store driver
// directly.
type UserRepository interface {
	// FindByUsername returns the user matching the given username.
	// Returns (nil, nil) when no user is found.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns the user with the given store-assigned id.
	// Returns (nil, nil) when the id does not resolve, or when it is not a
	// well-formed id at all.
	FindByID(ctx context.Context, id string) (*User, error)

	// Insert persists a new identity record and returns the generated id.
	// Returns ErrDuplicateKey when the username is already taken.
	Insert(ctx context.Context, username, passwordHash string) (string, error)
}
