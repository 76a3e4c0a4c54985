package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/internal/users/store"
	"github.com/eliteconnect/userservice/pkg/cryptox"
	"github.com/eliteconnect/userservice/pkg/slogx"
)

// ErrUserNotFound is returned by mutations that target a nonexistent id.
// Lookups report absence through their found flag instead.
var ErrUserNotFound = errors.New("service: user not found")

// UserService orchestrates account create/read/update/delete and login. It
// holds no state between calls; the store is the single source of truth for
// existence and username uniqueness.
type UserService struct {
	Store  store.Store
	Hasher *cryptox.Hasher

	dummyOnce sync.Once
	dummyHash string
}

// CreateUser hashes rawPassword and persists the user, returning the stored
// record with its assigned id. A duplicate username surfaces
// store.ErrAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, u domain.User, rawPassword string) (domain.User, error) {
	hash, err := s.Hasher.Hash(rawPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u.PasswordHash = hash
	u.CreatedAt = now
	u.UpdatedAt = now

	return s.Store.Users().CreateUser(ctx, u)
}

// GetUserByID fetches a user by id. Absence is a normal outcome reported via
// the found flag, not an error.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// GetAllUsers returns every stored user, ordered by id.
func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateUser overwrites all mutable fields of the user at id from patch.
// The stored password hash is replaced only when newPassword is non-empty,
// in which case it is re-hashed first; the old hash is discarded without
// being verified against. Returns ErrUserNotFound if no user exists at id.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.User, newPassword string) (domain.User, error) {
	current, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	current.Username = patch.Username
	current.Email = patch.Email
	current.FullName = patch.FullName
	current.Gender = patch.Gender
	current.DateOfBirth = patch.DateOfBirth
	current.City = patch.City
	current.Country = patch.Country
	current.Bio = patch.Bio
	current.ProfilePictureURL = patch.ProfilePictureURL
	current.UpdatedAt = time.Now().UTC()

	if newPassword != "" {
		hash, err := s.Hasher.Hash(newPassword)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		current.PasswordHash = hash
	}

	if err := s.Store.Users().UpdateUser(ctx, current); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return current, nil
}

// DeleteUser removes the user at id permanently. Returns ErrUserNotFound if
// no user exists at id.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// FindUserByUsername fetches a user by username, absence reported via the
// found flag.
func (s *UserService) FindUserByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// LoginUser verifies the username/password pair. An unknown username and a
// wrong password produce the same (zero, false, nil) result so callers
// cannot tell which check failed. Store failures are real errors.
func (s *UserService) LoginUser(ctx context.Context, username, rawPassword string) (domain.User, bool, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Burn the same hashing work as a real verification so unknown
		// usernames are not distinguishable by response time.
		_ = s.Hasher.Verify(rawPassword, s.decoyHash())
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}

	if err := s.Hasher.Verify(rawPassword, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			// A stored hash we cannot parse is an authentication failure,
			// not a fault, but worth flagging.
			slogx.FromContext(ctx).Warn("unverifiable password hash", "user_id", u.ID, "err", err)
		}
		return domain.User{}, false, nil
	}
	return u, true, nil
}

// decoyHash returns a throwaway hash used to equalize login timing for
// unknown usernames.
func (s *UserService) decoyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("decoy")
		if err != nil {
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
