package store

import (
	"context"
	"errors"

	"github.com/eliteconnect/userservice/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, memory)
// implement this. It exposes sub-repositories to keep concerns tidy and
// swappable for tests.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema up to date. Drivers without a
	// durable schema implement it as a no-op.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the store is still reachable.
	Ping(ctx context.Context) error
}

// Users is the capability interface over persisted user records. The store
// is the single source of truth for existence and username uniqueness;
// concurrent writers race with last-write-wins semantics.
type Users interface {
	// GetUserByID returns a user by id, or ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns all users ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user and returns it with the store-assigned
	// id. A duplicate username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateUser overwrites the record at u.ID. ErrNotFound if absent;
	// ErrAlreadyExists if the new username collides with another user.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the record permanently, or ErrNotFound.
	DeleteUser(ctx context.Context, id int64) error

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)
}
