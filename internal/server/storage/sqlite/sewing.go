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

var sewingLineSpec = storage.TableSpec{
	Columns:   []string{"id", "name", "created_at"},
	Search:    []string{"name"},
	HasStatus: true,
}

var sewingLineDeliverySpec = storage.TableSpec{
	Columns:   []string{"id", "sewing_line_id", "product_id", "quantity_original", "quantity_sewed", "expired_date", "created_at"},
	Search:    nil,
	HasStatus: true,
}

const deliveryColumns = "id, sewing_line_id, product_id, quantity_original, quantity_sewed, expired_date, status, created_at, updated_at"

func scanDelivery(row interface{ Scan(...any) error }) (*models.SewingLineDelivery, error) {
	d := &models.SewingLineDelivery{}
	var expired sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.SewingLineID,
		&d.ProductID,
		&d.QuantityOriginal,
		&d.QuantitySewed,
		&expired,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expired.Valid {
		d.ExpiredDate = &expired.Time
	}
	return d, nil
}

// CreateSewingLine inserts a sewing line and fills in its ID.
func (s *Storage) CreateSewingLine(ctx context.Context, line *models.SewingLine) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sewing_lines (name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, line.Name, line.Status, line.CreatedAt, line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sewing line: %w", err)
	}

	line.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get sewing line id: %w", err)
	}
	return nil
}

// GetSewingLineByID retrieves a sewing line by primary key.
func (s *Storage) GetSewingLineByID(ctx context.Context, id int64) (*models.SewingLine, error) {
	l := &models.SewingLine{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, created_at, updated_at FROM sewing_lines WHERE id = ?
	`, id).Scan(&l.ID, &l.Name, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sewing line: %w", err)
	}
	return l, nil
}

// ListSewingLines returns sewing lines matching the query plus the
// unpaged total.
func (s *Storage) ListSewingLines(ctx context.Context, q storage.ListQuery) ([]*models.SewingLine, int, error) {
	where, args, err := sewingLineSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := sewingLineSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "sewing_lines", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, status, created_at, updated_at FROM sewing_lines`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sewing lines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var lines []*models.SewingLine
	for rows.Next() {
		l := &models.SewingLine{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan sewing line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return lines, total, nil
}

// UpdateSewingLine updates a sewing line by primary key.
func (s *Storage) UpdateSewingLine(ctx context.Context, line *models.SewingLine) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sewing_lines SET name = ?, status = ?, updated_at = ? WHERE id = ?
	`, line.Name, line.Status, line.UpdatedAt, line.ID)
	if err != nil {
		return fmt.Errorf("failed to update sewing line: %w", err)
	}
	return requireRow(result)
}

// DeleteSewingLine removes a sewing line by primary key.
func (s *Storage) DeleteSewingLine(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sewing_lines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sewing line: %w", err)
	}
	return requireRow(result)
}

// CreateSewingLineDelivery inserts a delivery and fills in its ID.
func (s *Storage) CreateSewingLineDelivery(ctx context.Context, d *models.SewingLineDelivery) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sewing_line_deliveries (sewing_line_id, product_id, quantity_original, quantity_sewed, expired_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.SewingLineID, d.ProductID, d.QuantityOriginal, d.QuantitySewed, nullTime(d.ExpiredDate), d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}

	d.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get delivery id: %w", err)
	}
	return nil
}

// GetSewingLineDeliveryByID retrieves a delivery by primary key.
func (s *Storage) GetSewingLineDeliveryByID(ctx context.Context, id int64) (*models.SewingLineDelivery, error) {
	d, err := scanDelivery(s.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM sewing_line_deliveries WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	return d, nil
}

// GetDeliveriesByProductID returns the deliveries of a product,
// oldest first.
func (s *Storage) GetDeliveriesByProductID(ctx context.Context, productID int64) ([]*models.SewingLineDelivery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+deliveryColumns+` FROM sewing_line_deliveries WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var deliveries []*models.SewingLineDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return deliveries, nil
}

// ListSewingLineDeliveries returns deliveries matching the query plus
// the unpaged total.
func (s *Storage) ListSewingLineDeliveries(ctx context.Context, q storage.ListQuery) ([]*models.SewingLineDelivery, int, error) {
	where, args, err := sewingLineDeliverySpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := sewingLineDeliverySpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "sewing_line_deliveries", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + deliveryColumns + ` FROM sewing_line_deliveries`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query deliveries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var deliveries []*models.SewingLineDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return deliveries, total, nil
}

// UpdateSewingLineDelivery updates a delivery by primary key.
func (s *Storage) UpdateSewingLineDelivery(ctx context.Context, d *models.SewingLineDelivery) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sewing_line_deliveries
		SET sewing_line_id = ?, product_id = ?, quantity_original = ?, quantity_sewed = ?, expired_date = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, d.SewingLineID, d.ProductID, d.QuantityOriginal, d.QuantitySewed, nullTime(d.ExpiredDate), d.Status, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update delivery: %w", err)
	}
	return requireRow(result)
}

// DeleteSewingLineDelivery removes a delivery by primary key.
func (s *Storage) DeleteSewingLineDelivery(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sewing_line_deliveries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery: %w", err)
	}
	return requireRow(result)
}

// ReplaceDeliveriesForProduct reconciles the stored delivery set with
// the incoming one by sewing_line_id: rows absent from items are
// deleted, new ones inserted with status active, matching rows left
// untouched.
func (s *Storage) ReplaceDeliveriesForProduct(ctx context.Context, productID int64, items []*models.SewingLineDelivery) ([]*models.SewingLineDelivery, error) {
	existing, err := s.GetDeliveriesByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existingKeys := make(map[int64]bool, len(existing))
	for _, d := range existing {
		existingKeys[d.SewingLineID] = true
	}
	incomingKeys := make(map[int64]bool, len(items))
	for _, d := range items {
		incomingKeys[d.SewingLineID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var toDelete []int64
	for _, d := range existing {
		if !incomingKeys[d.SewingLineID] {
			toDelete = append(toDelete, d.SewingLineID)
		}
	}
	if len(toDelete) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(toDelete)), ", ")
		args := make([]any, 0, len(toDelete)+1)
		args = append(args, productID)
		for _, key := range toDelete {
			args = append(args, key)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sewing_line_deliveries WHERE product_id = ? AND sewing_line_id IN (`+placeholders+`)`,
			args...); err != nil {
			return nil, fmt.Errorf("failed to delete deliveries: %w", err)
		}
	}

	for _, d := range items {
		if existingKeys[d.SewingLineID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sewing_line_deliveries (sewing_line_id, product_id, quantity_original, quantity_sewed, expired_date, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, d.SewingLineID, productID, d.QuantityOriginal, d.QuantitySewed, nullTime(d.ExpiredDate), models.StatusActive, d.CreatedAt, d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert delivery: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetDeliveriesByProductID(ctx, productID)
}

// DeleteDeliveriesByProductID removes all deliveries of a product.
func (s *Storage) DeleteDeliveriesByProductID(ctx context.Context, productID int64) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sewing_line_deliveries WHERE product_id = ?`, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete deliveries: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
