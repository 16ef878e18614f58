package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainshare/internal/model"
	"sustainshare/internal/store"
)

func TestUserRepository_PasswordHashSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemory())

	user := &model.User{
		ID:           "user-1",
		Name:         "Test Donor",
		Username:     "testdonor",
		Email:        "donor@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleDonor,
		Status:       model.UserStatusActive,
	}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "donor@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, byID.PasswordHash)

	// Updates must not wipe the hash either.
	byID.Name = "Renamed Donor"
	require.NoError(t, repo.Update(ctx, byID))
	again, err := repo.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, again.PasswordHash)
}

func TestUserRepository_ListNeverExposesHashInJSON(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemory())

	require.NoError(t, repo.Create(ctx, &model.User{
		ID:           "user-1",
		Email:        "donor@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleDonor,
	}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEmpty(t, users[0].PasswordHash)

	// The API model stays hash-free when serialized for responses.
	payload, err := json.Marshal(users)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "passwordHash")
	assert.NotContains(t, string(payload), "$2a$")
}
