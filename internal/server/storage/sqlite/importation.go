package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

var importationSpec = storage.TableSpec{
	Columns:   []string{"id", "product_id", "quantity", "date_imported", "created_at"},
	Search:    nil,
	HasStatus: true,
}

const importationColumns = "id, product_id, quantity, date_imported, status, created_at, updated_at"

func scanImportation(row interface{ Scan(...any) error }) (*models.Importation, error) {
	imp := &models.Importation{}
	var imported sql.NullTime

	err := row.Scan(
		&imp.ID,
		&imp.ProductID,
		&imp.Quantity,
		&imported,
		&imp.Status,
		&imp.CreatedAt,
		&imp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imported.Valid {
		imp.DateImported = &imported.Time
	}
	return imp, nil
}

// CreateImportation inserts an import record and fills in its ID.
func (s *Storage) CreateImportation(ctx context.Context, imp *models.Importation) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO importations (product_id, quantity, date_imported, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, imp.ProductID, imp.Quantity, nullTime(imp.DateImported), imp.Status, imp.CreatedAt, imp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert importation: %w", err)
	}

	imp.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get importation id: %w", err)
	}
	return nil
}

// GetImportationByID retrieves an import record by primary key.
func (s *Storage) GetImportationByID(ctx context.Context, id int64) (*models.Importation, error) {
	imp, err := scanImportation(s.db.QueryRowContext(ctx,
		`SELECT `+importationColumns+` FROM importations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get importation: %w", err)
	}
	return imp, nil
}

// GetImportationsByProductID returns a product's imports, oldest first.
func (s *Storage) GetImportationsByProductID(ctx context.Context, productID int64) ([]*models.Importation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+importationColumns+` FROM importations WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query importations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var imps []*models.Importation
	for rows.Next() {
		imp, err := scanImportation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan importation: %w", err)
		}
		imps = append(imps, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return imps, nil
}

// ListImportations returns import records matching the query plus the
// unpaged total.
func (s *Storage) ListImportations(ctx context.Context, q storage.ListQuery) ([]*models.Importation, int, error) {
	where, args, err := importationSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := importationSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "importations", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + importationColumns + ` FROM importations`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query importations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var imps []*models.Importation
	for rows.Next() {
		imp, err := scanImportation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan importation: %w", err)
		}
		imps = append(imps, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return imps, total, nil
}

// UpdateImportation updates an import record by primary key.
func (s *Storage) UpdateImportation(ctx context.Context, imp *models.Importation) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE importations
		SET product_id = ?, quantity = ?, date_imported = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, imp.ProductID, imp.Quantity, nullTime(imp.DateImported), imp.Status, imp.UpdatedAt, imp.ID)
	if err != nil {
		return fmt.Errorf("failed to update importation: %w", err)
	}
	return requireRow(result)
}

// DeleteImportation removes an import record by primary key.
func (s *Storage) DeleteImportation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM importations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete importation: %w", err)
	}
	return requireRow(result)
}
