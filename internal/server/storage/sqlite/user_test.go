package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     "worker@example.com",
		Password:  "$2a$10$hash",
		FullName:  "Line Worker",
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.Password, retrieved.Password)
	assert.Equal(t, models.StatusPending, retrieved.Status)
	assert.False(t, retrieved.IsAdmin)
}

func TestUserStorage_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)

	dup := &models.User{
		ID:        uuid.New().String(),
		Email:     user.Email,
		Password:  "x",
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)

	retrieved, err := s.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_SetOTPAndStatus(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)

	require.NoError(t, s.SetOTP(ctx, user.ID, "123456"))
	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", retrieved.OTP)

	// clearing stores the empty string
	require.NoError(t, s.SetOTP(ctx, user.ID, ""))
	retrieved, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, retrieved.OTP)

	require.NoError(t, s.SetStatus(ctx, user.ID, models.StatusDeleted))
	retrieved, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, retrieved.Status)
}

func TestUserStorage_SetPassword(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)

	require.NoError(t, s.SetPassword(ctx, user.ID, "$2a$10$rehash"))
	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$rehash", retrieved.Password)
}

func TestUserStorage_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)
	user.FullName = "Renamed"
	user.IsAdmin = true
	user.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.UpdateUser(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", retrieved.FullName)
	assert.True(t, retrieved.IsAdmin)
}

func TestUserStorage_DeleteUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)

	require.NoError(t, s.DeleteUser(ctx, user.ID))

	_, err := s.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	err = s.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_ListUsers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for range 3 {
		createTestUser(t, ctx, s)
	}
	pending := createTestUser(t, ctx, s)
	require.NoError(t, s.SetStatus(ctx, pending.ID, models.StatusPending))

	users, total, err := s.ListUsers(ctx, storage.ListQuery{Status: string(models.StatusActive), PageSize: -1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, users, 3)

	users, total, err = s.ListUsers(ctx, storage.ListQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, users, 2)
}
