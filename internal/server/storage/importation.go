package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// ImportationStorage defines the interface for material-import records.
type ImportationStorage interface {
	CreateImportation(ctx context.Context, imp *models.Importation) error
	// GetImportationByID returns ErrNotFound if absent.
	GetImportationByID(ctx context.Context, id int64) (*models.Importation, error)
	// GetImportationsByProductID returns a product's imports, oldest
	// first. Empty slice when none.
	GetImportationsByProductID(ctx context.Context, productID int64) ([]*models.Importation, error)
	ListImportations(ctx context.Context, q ListQuery) ([]*models.Importation, int, error)
	UpdateImportation(ctx context.Context, imp *models.Importation) error
	DeleteImportation(ctx context.Context, id int64) error
}
