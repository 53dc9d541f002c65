package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// GarmentAccessoryStorage defines the interface for per-product
// accessory tracking.
type GarmentAccessoryStorage interface {
	CreateGarmentAccessory(ctx context.Context, ga *models.GarmentAccessory) error
	// GetGarmentAccessoryByID returns ErrNotFound if absent.
	GetGarmentAccessoryByID(ctx context.Context, id int64) (*models.GarmentAccessory, error)
	// GetGarmentAccessoryByProductID returns ErrNotFound if absent.
	GetGarmentAccessoryByProductID(ctx context.Context, productID int64) (*models.GarmentAccessory, error)
	ListGarmentAccessories(ctx context.Context, q ListQuery) ([]*models.GarmentAccessory, int, error)
	UpdateGarmentAccessory(ctx context.Context, ga *models.GarmentAccessory) error
	DeleteGarmentAccessory(ctx context.Context, id int64) error
}

// AccessoryNoteStorage defines the interface for the reusable accessory
// note catalog.
type AccessoryNoteStorage interface {
	CreateAccessoryNote(ctx context.Context, note *models.AccessoryNote) error
	// GetAccessoryNoteByID returns ErrNotFound if absent.
	GetAccessoryNoteByID(ctx context.Context, id int64) (*models.AccessoryNote, error)
	ListAccessoryNotes(ctx context.Context, q ListQuery) ([]*models.AccessoryNote, int, error)
	UpdateAccessoryNote(ctx context.Context, note *models.AccessoryNote) error
	DeleteAccessoryNote(ctx context.Context, id int64) error
}

// GarmentAccessoryNoteStorage manages the note set attached to a
// garment accessory.
type GarmentAccessoryNoteStorage interface {
	// GetNotesByGarmentAccessoryID returns the current note links,
	// oldest first. Empty slice when none.
	GetNotesByGarmentAccessoryID(ctx context.Context, gaID int64) ([]*models.GarmentAccessoryNote, error)

	// ReplaceNotesForAccessory reconciles the stored note set with the
	// incoming one by accessory_note_id: links absent from items are
	// deleted, new ones inserted, matching rows left untouched. The
	// resulting set is returned.
	ReplaceNotesForAccessory(ctx context.Context, gaID int64, items []*models.GarmentAccessoryNote) ([]*models.GarmentAccessoryNote, error)

	// DeleteNotesByGarmentAccessoryID removes all note links of a
	// garment accessory. Returns the number of deleted rows.
	DeleteNotesByGarmentAccessoryID(ctx context.Context, gaID int64) (int, error)
}
