package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// ProductStorage defines the interface for product persistence.
type ProductStorage interface {
	// CreateProduct inserts a product and fills in its ID.
	CreateProduct(ctx context.Context, product *models.Product) error

	// GetProductByID retrieves a product by primary key.
	// Returns ErrNotFound if absent.
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)

	// ListProducts returns products matching the query plus the
	// unpaged total.
	ListProducts(ctx context.Context, q ListQuery) ([]*models.Product, int, error)

	// UpdateProduct updates a product by primary key.
	// Returns ErrNotFound if absent.
	UpdateProduct(ctx context.Context, product *models.Product) error

	// DeleteProduct removes a product by primary key.
	// Returns ErrNotFound if absent.
	DeleteProduct(ctx context.Context, id int64) error
}
