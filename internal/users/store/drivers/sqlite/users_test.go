package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/internal/users/store"
	"github.com/eliteconnect/userservice/internal/users/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "users.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *sqlite.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	created, err := st.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return created
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created := seedUser(t, st, "alice")
	require.Positive(t, created.ID)

	byID, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.Equal(t, created.PasswordHash, byID.PasswordHash)

	byName, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().GetUserByID(ctx, 9999)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUniqueUsernameConstraint(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seedUser(t, st, "alice")

	now := time.Now().UTC()
	_, err := st.Users().CreateUser(ctx, domain.User{
		Username:  "alice",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created := seedUser(t, st, "alice")

	created.Email = "new@example.com"
	created.City = "Melbourne"
	created.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, st.Users().UpdateUser(ctx, created))

	got, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", got.Email)
	require.Equal(t, "Melbourne", got.City)

	t.Run("unknown id", func(t *testing.T) {
		ghost := created
		ghost.ID = 9999
		ghost.Username = "ghost"
		require.ErrorIs(t, st.Users().UpdateUser(ctx, ghost), store.ErrNotFound)
	})

	t.Run("renaming onto a taken username", func(t *testing.T) {
		bob := seedUser(t, st, "bob")
		bob.Username = "alice"
		require.ErrorIs(t, st.Users().UpdateUser(ctx, bob), store.ErrAlreadyExists)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created := seedUser(t, st, "alice")

	require.NoError(t, st.Users().DeleteUser(ctx, created.ID))
	require.ErrorIs(t, st.Users().DeleteUser(ctx, created.ID), store.ErrNotFound)

	_, err := st.Users().GetUserByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAndCount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	list, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	for _, name := range []string{"alice", "bob", "carol"} {
		seedUser(t, st, name)
	}

	list, err = st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Less(t, list[0].ID, list[1].ID)
	require.Less(t, list[1].ID, list[2].ID)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestPing(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}
