// Package memory provides an in-process store.Store backed by a map. It is
// the default driver for tests and works as a lightweight ephemeral mode in
// production configs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/internal/users/store"
)

type Store struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	byName map[string]int64
	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:  make(map[int64]domain.User),
		byName: make(map[string]int64),
	}
}

func (s *Store) Users() store.Users { return s }

// ApplyMigrations is a no-op; there is no durable schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[u.Username]; taken {
		return domain.User{}, store.ErrAlreadyExists
	}

	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	s.byName[u.Username] = u.ID
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	if other, taken := s.byName[u.Username]; taken && other != u.ID {
		return store.ErrAlreadyExists
	}

	delete(s.byName, current.Username)
	s.users[u.ID] = u
	s.byName[u.Username] = u.ID
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	delete(s.byName, u.Username)
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}
