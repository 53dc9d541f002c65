package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

var garmentAccessorySpec = storage.TableSpec{
	Columns:   []string{"id", "product_id", "amount_cutting", "passing_delivery_date", "created_at"},
	Search:    nil,
	HasStatus: true,
}

var accessoryNoteSpec = storage.TableSpec{
	Columns:   []string{"id", "title", "created_at"},
	Search:    []string{"title", "summary"},
	HasStatus: true,
}

const garmentAccessoryColumns = "id, product_id, amount_cutting, passing_delivery_date, status, created_at, updated_at"

func scanGarmentAccessory(row interface{ Scan(...any) error }) (*models.GarmentAccessory, error) {
	ga := &models.GarmentAccessory{}
	var passing sql.NullTime

	err := row.Scan(
		&ga.ID,
		&ga.ProductID,
		&ga.AmountCutting,
		&passing,
		&ga.Status,
		&ga.CreatedAt,
		&ga.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if passing.Valid {
		ga.PassingDeliveryDate = &passing.Time
	}
	return ga, nil
}

// CreateGarmentAccessory inserts an accessory record and fills in its ID.
func (s *Storage) CreateGarmentAccessory(ctx context.Context, ga *models.GarmentAccessory) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO garment_accessories (product_id, amount_cutting, passing_delivery_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ga.ProductID, ga.AmountCutting, nullTime(ga.PassingDeliveryDate), ga.Status, ga.CreatedAt, ga.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert garment accessory: %w", err)
	}

	ga.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get garment accessory id: %w", err)
	}
	return nil
}

// GetGarmentAccessoryByID retrieves an accessory record by primary key.
func (s *Storage) GetGarmentAccessoryByID(ctx context.Context, id int64) (*models.GarmentAccessory, error) {
	ga, err := scanGarmentAccessory(s.db.QueryRowContext(ctx,
		`SELECT `+garmentAccessoryColumns+` FROM garment_accessories WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get garment accessory: %w", err)
	}
	return ga, nil
}

// GetGarmentAccessoryByProductID retrieves the accessory record of a product.
func (s *Storage) GetGarmentAccessoryByProductID(ctx context.Context, productID int64) (*models.GarmentAccessory, error) {
	ga, err := scanGarmentAccessory(s.db.QueryRowContext(ctx,
		`SELECT `+garmentAccessoryColumns+` FROM garment_accessories WHERE product_id = ?`, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get garment accessory: %w", err)
	}
	return ga, nil
}

// ListGarmentAccessories returns accessory records matching the query
// plus the unpaged total.
func (s *Storage) ListGarmentAccessories(ctx context.Context, q storage.ListQuery) ([]*models.GarmentAccessory, int, error) {
	where, args, err := garmentAccessorySpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := garmentAccessorySpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "garment_accessories", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + garmentAccessoryColumns + ` FROM garment_accessories`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query garment accessories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []*models.GarmentAccessory
	for rows.Next() {
		ga, err := scanGarmentAccessory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan garment accessory: %w", err)
		}
		items = append(items, ga)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, total, nil
}

// UpdateGarmentAccessory updates an accessory record by primary key.
func (s *Storage) UpdateGarmentAccessory(ctx context.Context, ga *models.GarmentAccessory) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE garment_accessories
		SET product_id = ?, amount_cutting = ?, passing_delivery_date = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, ga.ProductID, ga.AmountCutting, nullTime(ga.PassingDeliveryDate), ga.Status, ga.UpdatedAt, ga.ID)
	if err != nil {
		return fmt.Errorf("failed to update garment accessory: %w", err)
	}
	return requireRow(result)
}

// DeleteGarmentAccessory removes an accessory record by primary key.
func (s *Storage) DeleteGarmentAccessory(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM garment_accessories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete garment accessory: %w", err)
	}
	return requireRow(result)
}

// CreateAccessoryNote inserts a note and fills in its ID.
func (s *Storage) CreateAccessoryNote(ctx context.Context, note *models.AccessoryNote) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accessory_notes (title, summary, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.Title, note.Summary, note.Status, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert accessory note: %w", err)
	}

	note.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get accessory note id: %w", err)
	}
	return nil
}

// GetAccessoryNoteByID retrieves a note by primary key.
func (s *Storage) GetAccessoryNoteByID(ctx context.Context, id int64) (*models.AccessoryNote, error) {
	n := &models.AccessoryNote{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, summary, status, created_at, updated_at FROM accessory_notes WHERE id = ?
	`, id).Scan(&n.ID, &n.Title, &n.Summary, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get accessory note: %w", err)
	}
	return n, nil
}

// ListAccessoryNotes returns notes matching the query plus the unpaged
// total.
func (s *Storage) ListAccessoryNotes(ctx context.Context, q storage.ListQuery) ([]*models.AccessoryNote, int, error) {
	where, args, err := accessoryNoteSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := accessoryNoteSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "accessory_notes", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, summary, status, created_at, updated_at FROM accessory_notes`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accessory notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notes []*models.AccessoryNote
	for rows.Next() {
		n := &models.AccessoryNote{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Summary, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan accessory note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return notes, total, nil
}

// UpdateAccessoryNote updates a note by primary key.
func (s *Storage) UpdateAccessoryNote(ctx context.Context, note *models.AccessoryNote) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accessory_notes SET title = ?, summary = ?, status = ?, updated_at = ? WHERE id = ?
	`, note.Title, note.Summary, note.Status, note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update accessory note: %w", err)
	}
	return requireRow(result)
}

// DeleteAccessoryNote removes a note by primary key.
func (s *Storage) DeleteAccessoryNote(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accessory_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete accessory note: %w", err)
	}
	return requireRow(result)
}

// GetNotesByGarmentAccessoryID returns the current note links of a
// garment accessory, oldest first.
func (s *Storage) GetNotesByGarmentAccessoryID(ctx context.Context, gaID int64) ([]*models.GarmentAccessoryNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, garment_accessory_id, accessory_note_id, status, created_at, updated_at
		FROM garment_accessory_notes
		WHERE garment_accessory_id = ?
		ORDER BY id
	`, gaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accessory note links: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var links []*models.GarmentAccessoryNote
	for rows.Next() {
		l := &models.GarmentAccessoryNote{}
		if err := rows.Scan(&l.ID, &l.GarmentAccessoryID, &l.AccessoryNoteID, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan accessory note link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return links, nil
}

// ReplaceNotesForAccessory reconciles the stored note set with the
// incoming one by accessory_note_id: absent links are deleted, new ones
// inserted, matching rows left untouched.
func (s *Storage) ReplaceNotesForAccessory(ctx context.Context, gaID int64, items []*models.GarmentAccessoryNote) ([]*models.GarmentAccessoryNote, error) {
	existing, err := s.GetNotesByGarmentAccessoryID(ctx, gaID)
	if err != nil {
		return nil, err
	}

	existingKeys := make(map[int64]bool, len(existing))
	for _, l := range existing {
		existingKeys[l.AccessoryNoteID] = true
	}
	incomingKeys := make(map[int64]bool, len(items))
	for _, l := range items {
		incomingKeys[l.AccessoryNoteID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var toDelete []int64
	for _, l := range existing {
		if !incomingKeys[l.AccessoryNoteID] {
			toDelete = append(toDelete, l.AccessoryNoteID)
		}
	}
	if len(toDelete) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(toDelete)), ", ")
		args := make([]any, 0, len(toDelete)+1)
		args = append(args, gaID)
		for _, key := range toDelete {
			args = append(args, key)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM garment_accessory_notes WHERE garment_accessory_id = ? AND accessory_note_id IN (`+placeholders+`)`,
			args...); err != nil {
			return nil, fmt.Errorf("failed to delete accessory note links: %w", err)
		}
	}

	for _, l := range items {
		if existingKeys[l.AccessoryNoteID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO garment_accessory_notes (garment_accessory_id, accessory_note_id, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, gaID, l.AccessoryNoteID, models.StatusActive, l.CreatedAt, l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert accessory note link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetNotesByGarmentAccessoryID(ctx, gaID)
}

// DeleteNotesByGarmentAccessoryID removes all note links of a garment
// accessory.
func (s *Storage) DeleteNotesByGarmentAccessoryID(ctx context.Context, gaID int64) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM garment_accessory_notes WHERE garment_accessory_id = ?`, gaID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete accessory note links: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
