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

func createTestAccessoryNote(t *testing.T, ctx context.Context, s *Storage, title string) *models.AccessoryNote {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	note := &models.AccessoryNote{
		Title:     title,
		Summary:   "summary of " + title,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateAccessoryNote(ctx, note))
	return note
}

func TestGarmentAccessoryStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	product := createTestProduct(t, ctx, s, "PO-ACC-1")
	now := time.Now().UTC().Truncate(time.Second)

	ga := &models.GarmentAccessory{
		ProductID:     product.ID,
		AmountCutting: 1500,
		Status:        models.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, s.CreateGarmentAccessory(ctx, ga))

	byProduct, err := s.GetGarmentAccessoryByProductID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, ga.ID, byProduct.ID)

	_, err = s.GetGarmentAccessoryByProductID(ctx, product.ID+1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ga.AmountCutting = 1600
	ga.UpdatedAt = now
	require.NoError(t, s.UpdateGarmentAccessory(ctx, ga))

	retrieved, err := s.GetGarmentAccessoryByID(ctx, ga.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600, retrieved.AmountCutting)

	require.NoError(t, s.DeleteGarmentAccessory(ctx, ga.ID))
	_, err = s.GetGarmentAccessoryByID(ctx, ga.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGarmentAccessoryNoteStorage_ReplaceNotesForAccessory(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	product := createTestProduct(t, ctx, s, "PO-ACC-2")
	now := time.Now().UTC().Truncate(time.Second)

	ga := &models.GarmentAccessory{
		ProductID: product.ID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateGarmentAccessory(ctx, ga))

	buttons := createTestAccessoryNote(t, ctx, s, "buttons")
	zippers := createTestAccessoryNote(t, ctx, s, "zippers")
	labels := createTestAccessoryNote(t, ctx, s, "labels")

	link := func(noteID int64) *models.GarmentAccessoryNote {
		return &models.GarmentAccessoryNote{
			GarmentAccessoryID: ga.ID,
			AccessoryNoteID:    noteID,
			Status:             models.StatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	initial, err := s.ReplaceNotesForAccessory(ctx, ga.ID, []*models.GarmentAccessoryNote{
		link(buttons.ID), link(zippers.ID),
	})
	require.NoError(t, err)
	require.Len(t, initial, 2)

	result, err := s.ReplaceNotesForAccessory(ctx, ga.ID, []*models.GarmentAccessoryNote{
		link(zippers.ID), link(labels.ID),
	})
	require.NoError(t, err)
	require.Len(t, result, 2)

	noteIDs := make(map[int64]bool, len(result))
	for _, l := range result {
		noteIDs[l.AccessoryNoteID] = true
	}
	assert.False(t, noteIDs[buttons.ID])
	assert.True(t, noteIDs[zippers.ID])
	assert.True(t, noteIDs[labels.ID])
}
