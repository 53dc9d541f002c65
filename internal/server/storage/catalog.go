package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// ColorStorage defines the interface for color persistence.
type ColorStorage interface {
	CreateColor(ctx context.Context, color *models.Color) error
	// GetColorByID returns ErrNotFound if absent.
	GetColorByID(ctx context.Context, id int64) (*models.Color, error)
	ListColors(ctx context.Context, q ListQuery) ([]*models.Color, int, error)
	// UpdateColor returns ErrNotFound if absent.
	UpdateColor(ctx context.Context, color *models.Color) error
	// DeleteColor returns ErrNotFound if absent.
	DeleteColor(ctx context.Context, id int64) error
}

// GroupStorage defines the interface for production-group persistence.
type GroupStorage interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	// GetGroupByID returns ErrNotFound if absent.
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	// GetGroupByName returns ErrNotFound if absent.
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)
	ListGroups(ctx context.Context, q ListQuery) ([]*models.Group, int, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id int64) error
}

// PrintStorage defines the interface for printable-place persistence.
type PrintStorage interface {
	CreatePrint(ctx context.Context, print *models.Print) error
	// GetPrintByID returns ErrNotFound if absent.
	GetPrintByID(ctx context.Context, id int64) (*models.Print, error)
	ListPrints(ctx context.Context, q ListQuery) ([]*models.Print, int, error)
	UpdatePrint(ctx context.Context, print *models.Print) error
	DeletePrint(ctx context.Context, id int64) error
}
