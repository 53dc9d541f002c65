package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/seamline/backoffice/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) *models.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		Password:  "$2a$10$fakehashfortest",
		FullName:  "Test User",
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user
}

func createTestProduct(t *testing.T, ctx context.Context, s *Storage, code string) *models.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	product := &models.Product{
		ProductCode: code,
		QuantityPO:  1000,
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.CreateProduct(ctx, product))
	return product
}
