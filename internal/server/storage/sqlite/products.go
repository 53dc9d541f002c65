package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

var productSpec = storage.TableSpec{
	Columns:   []string{"id", "product_code", "quantity_po", "date_input_npl", "date_output_fcr", "created_at"},
	Search:    []string{"product_code"},
	HasStatus: true,
}

const productColumns = "id, product_code, quantity_po, date_input_npl, date_output_fcr, status, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var inputNPL, outputFCR sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.ProductCode,
		&p.QuantityPO,
		&inputNPL,
		&outputFCR,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if inputNPL.Valid {
		p.DateInputNPL = &inputNPL.Time
	}
	if outputFCR.Valid {
		p.DateOutputFCR = &outputFCR.Time
	}
	return p, nil
}

// CreateProduct inserts a product and fills in its ID.
func (s *Storage) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (product_code, quantity_po, date_input_npl, date_output_fcr, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		product.ProductCode,
		product.QuantityPO,
		nullTime(product.DateInputNPL),
		nullTime(product.DateOutputFCR),
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get product id: %w", err)
	}
	return nil
}

// GetProductByID retrieves a product by primary key.
func (s *Storage) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// ListProducts returns products matching the query plus the unpaged total.
func (s *Storage) ListProducts(ctx context.Context, q storage.ListQuery) ([]*models.Product, int, error) {
	where, args, err := productSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := productSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "products", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates a product by primary key.
func (s *Storage) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET product_code = ?, quantity_po = ?, date_input_npl = ?, date_output_fcr = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		product.ProductCode,
		product.QuantityPO,
		nullTime(product.DateInputNPL),
		nullTime(product.DateOutputFCR),
		product.Status,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(result)
}

// DeleteProduct removes a product by primary key.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row result to ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// nullTime adapts an optional time for a nullable column.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
