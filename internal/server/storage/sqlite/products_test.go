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

func TestProductStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	now := time.Now().UTC().Truncate(time.Second)
	inputDate := now.AddDate(0, 0, -30)

	product := &models.Product{
		ProductCode:  "SS26-0001",
		QuantityPO:   5000,
		DateInputNPL: &inputDate,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateProduct(ctx, product))
	require.NotZero(t, product.ID)

	retrieved, err := s.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "SS26-0001", retrieved.ProductCode)
	assert.Equal(t, 5000, retrieved.QuantityPO)
	require.NotNil(t, retrieved.DateInputNPL)
	assert.Nil(t, retrieved.DateOutputFCR)

	outputDate := now.AddDate(0, 0, 60)
	product.DateOutputFCR = &outputDate
	product.QuantityPO = 5500
	product.UpdatedAt = now
	require.NoError(t, s.UpdateProduct(ctx, product))

	retrieved, err = s.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5500, retrieved.QuantityPO)
	require.NotNil(t, retrieved.DateOutputFCR)

	require.NoError(t, s.DeleteProduct(ctx, product.ID))
	_, err = s.GetProductByID(ctx, product.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProductStorage_ListProducts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	codes := []string{"SS26-0001", "SS26-0002", "FW26-0001"}
	for _, code := range codes {
		createTestProduct(t, ctx, s, code)
	}

	tests := []struct {
		name      string
		query     storage.ListQuery
		wantLen   int
		wantTotal int
	}{
		{
			name:      "all products",
			query:     storage.ListQuery{PageSize: -1},
			wantLen:   3,
			wantTotal: 3,
		},
		{
			name:      "paged",
			query:     storage.ListQuery{Page: 2, PageSize: 2},
			wantLen:   1,
			wantTotal: 3,
		},
		{
			name:      "search by code",
			query:     storage.ListQuery{Term: "SS26", PageSize: -1},
			wantLen:   2,
			wantTotal: 2,
		},
		{
			name:      "sorted by code descending",
			query:     storage.ListQuery{SortColumn: "product_code", SortDirection: "desc", PageSize: -1},
			wantLen:   3,
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := s.ListProducts(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, products, tt.wantLen)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestProductStorage_ListProducts_RejectsUnknownColumn(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, _, err := s.ListProducts(ctx, storage.ListQuery{SortColumn: "password"})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, _, err = s.ListProducts(ctx, storage.ListQuery{Field: "1; DROP TABLE products", Values: []int64{1}})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}
