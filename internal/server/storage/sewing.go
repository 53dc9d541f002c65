package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// SewingLineStorage defines the interface for sewing-line persistence.
type SewingLineStorage interface {
	CreateSewingLine(ctx context.Context, line *models.SewingLine) error
	// GetSewingLineByID returns ErrNotFound if absent.
	GetSewingLineByID(ctx context.Context, id int64) (*models.SewingLine, error)
	ListSewingLines(ctx context.Context, q ListQuery) ([]*models.SewingLine, int, error)
	UpdateSewingLine(ctx context.Context, line *models.SewingLine) error
	DeleteSewingLine(ctx context.Context, id int64) error
}

// SewingLineDeliveryStorage manages line assignments of a product's
// quantity.
type SewingLineDeliveryStorage interface {
	CreateSewingLineDelivery(ctx context.Context, d *models.SewingLineDelivery) error
	// GetSewingLineDeliveryByID returns ErrNotFound if absent.
	GetSewingLineDeliveryByID(ctx context.Context, id int64) (*models.SewingLineDelivery, error)
	// GetDeliveriesByProductID returns the deliveries of a product,
	// oldest first. Empty slice when none.
	GetDeliveriesByProductID(ctx context.Context, productID int64) ([]*models.SewingLineDelivery, error)
	ListSewingLineDeliveries(ctx context.Context, q ListQuery) ([]*models.SewingLineDelivery, int, error)
	UpdateSewingLineDelivery(ctx context.Context, d *models.SewingLineDelivery) error
	DeleteSewingLineDelivery(ctx context.Context, id int64) error

	// ReplaceDeliveriesForProduct reconciles the stored delivery set
	// with the incoming one by sewing_line_id: rows absent from items
	// are deleted, new ones inserted with status active, matching rows
	// left untouched. The resulting set is returned.
	ReplaceDeliveriesForProduct(ctx context.Context, productID int64, items []*models.SewingLineDelivery) ([]*models.SewingLineDelivery, error)

	// DeleteDeliveriesByProductID removes all deliveries of a product.
	// Returns the number of deleted rows.
	DeleteDeliveriesByProductID(ctx context.Context, productID int64) (int, error)
}
