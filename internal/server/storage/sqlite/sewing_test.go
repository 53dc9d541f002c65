package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

func createTestSewingLine(t *testing.T, ctx context.Context, s *Storage, name string) *models.SewingLine {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	line := &models.SewingLine{
		Name:      name,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateSewingLine(ctx, line))
	return line
}

func TestSewingLineStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	line := createTestSewingLine(t, ctx, s, "Line A")
	require.NotZero(t, line.ID)

	retrieved, err := s.GetSewingLineByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, "Line A", retrieved.Name)

	line.Name = "Line A1"
	line.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.UpdateSewingLine(ctx, line))

	retrieved, err = s.GetSewingLineByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, "Line A1", retrieved.Name)

	require.NoError(t, s.DeleteSewingLine(ctx, line.ID))
	_, err = s.GetSewingLineByID(ctx, line.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func newDelivery(productID, lineID int64, quantity int) *models.SewingLineDelivery {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.SewingLineDelivery{
		SewingLineID:     lineID,
		ProductID:        productID,
		QuantityOriginal: quantity,
		Status:           models.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestSewingLineDeliveryStorage_ReplaceDeliveriesForProduct(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	product := createTestProduct(t, ctx, s, "PO-001")
	lineA := createTestSewingLine(t, ctx, s, "A")
	lineB := createTestSewingLine(t, ctx, s, "B")
	lineC := createTestSewingLine(t, ctx, s, "C")
	lineD := createTestSewingLine(t, ctx, s, "D")

	// existing set {A, B, C}
	for _, line := range []*models.SewingLine{lineA, lineB, lineC} {
		require.NoError(t, s.CreateSewingLineDelivery(ctx, newDelivery(product.ID, line.ID, 100)))
	}

	existing, err := s.GetDeliveriesByProductID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, existing, 3)
	keptB := existing[1]

	// incoming set {B, C, D}: A deleted, D inserted, B and C untouched
	incoming := []*models.SewingLineDelivery{
		newDelivery(product.ID, lineB.ID, 200),
		newDelivery(product.ID, lineC.ID, 200),
		newDelivery(product.ID, lineD.ID, 200),
	}

	result, err := s.ReplaceDeliveriesForProduct(ctx, product.ID, incoming)
	require.NoError(t, err)
	require.Len(t, result, 3)

	lineIDs := make(map[int64]*models.SewingLineDelivery, len(result))
	for _, d := range result {
		lineIDs[d.SewingLineID] = d
	}
	assert.NotContains(t, lineIDs, lineA.ID)
	assert.Contains(t, lineIDs, lineB.ID)
	assert.Contains(t, lineIDs, lineC.ID)
	assert.Contains(t, lineIDs, lineD.ID)

	// matching rows keep their identity and quantities
	assert.Equal(t, keptB.ID, lineIDs[lineB.ID].ID)
	assert.Equal(t, 100, lineIDs[lineB.ID].QuantityOriginal)
	assert.Equal(t, 200, lineIDs[lineD.ID].QuantityOriginal)
}

func TestSewingLineDeliveryStorage_DeleteByProductID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	product := createTestProduct(t, ctx, s, "PO-002")
	lineA := createTestSewingLine(t, ctx, s, "A2")
	lineB := createTestSewingLine(t, ctx, s, "B2")

	require.NoError(t, s.CreateSewingLineDelivery(ctx, newDelivery(product.ID, lineA.ID, 10)))
	require.NoError(t, s.CreateSewingLineDelivery(ctx, newDelivery(product.ID, lineB.ID, 20)))

	deleted, err := s.DeleteDeliveriesByProductID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := s.GetDeliveriesByProductID(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
