package db

import (
	"context"
	"testing"

	"github.com/geocoder89/staffhub/internal/config"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/repo/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()
	cfg := config.Config{AdminEmail: "boss@example.com", AdminName: "Boss"}

	require.NoError(t, EnsureAdminUser(ctx, users, cfg))
	require.NoError(t, EnsureAdminUser(ctx, users, cfg))

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, user.RoleAdmin, all[0].Role)
	assert.True(t, all[0].IsVerified)
}

func TestEnsureAdminUserRestoresRole(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()

	_, _, err := users.CreateIfAbsent(ctx, user.User{Email: "boss@example.com", Role: user.RoleEmployee})
	require.NoError(t, err)

	require.NoError(t, EnsureAdminUser(ctx, users, config.Config{AdminEmail: "boss@example.com"}))

	got, err := users.GetByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, got.Role)
}

func TestEnsureAdminUserSkipsWithoutEmail(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()

	require.NoError(t, EnsureAdminUser(ctx, users, config.Config{}))

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpenStoreMemory(t *testing.T) {
	store, err := OpenStore(context.Background(), config.Config{StoreDriver: config.DriverMemory}, nil)
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.Config{StoreDriver: "sqlite"}, nil)
	assert.Error(t, err)
}
