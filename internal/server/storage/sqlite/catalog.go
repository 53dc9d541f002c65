package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

// The three catalog entities (colors, production groups, printable
// places) share the same simple shape.

var colorSpec = storage.TableSpec{
	Columns:   []string{"id", "name", "hex_color", "created_at"},
	Search:    []string{"name"},
	HasStatus: true,
}

var groupSpec = storage.TableSpec{
	Columns:   []string{"id", "name", "created_at"},
	Search:    []string{"name"},
	HasStatus: true,
}

var printSpec = storage.TableSpec{
	Columns:   []string{"id", "name", "created_at"},
	Search:    []string{"name"},
	HasStatus: true,
}

// CreateColor inserts a color and fills in its ID.
func (s *Storage) CreateColor(ctx context.Context, color *models.Color) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO colors (name, hex_color, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, color.Name, color.HexColor, color.Status, color.CreatedAt, color.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert color: %w", err)
	}

	color.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get color id: %w", err)
	}
	return nil
}

// GetColorByID retrieves a color by primary key.
func (s *Storage) GetColorByID(ctx context.Context, id int64) (*models.Color, error) {
	c := &models.Color{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, hex_color, status, created_at, updated_at FROM colors WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.HexColor, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get color: %w", err)
	}
	return c, nil
}

// ListColors returns colors matching the query plus the unpaged total.
func (s *Storage) ListColors(ctx context.Context, q storage.ListQuery) ([]*models.Color, int, error) {
	where, args, err := colorSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := colorSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "colors", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, hex_color, status, created_at, updated_at FROM colors`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query colors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var colors []*models.Color
	for rows.Next() {
		c := &models.Color{}
		if err := rows.Scan(&c.ID, &c.Name, &c.HexColor, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return colors, total, nil
}

// UpdateColor updates a color by primary key.
func (s *Storage) UpdateColor(ctx context.Context, color *models.Color) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE colors SET name = ?, hex_color = ?, status = ?, updated_at = ? WHERE id = ?
	`, color.Name, color.HexColor, color.Status, color.UpdatedAt, color.ID)
	if err != nil {
		return fmt.Errorf("failed to update color: %w", err)
	}
	return requireRow(result)
}

// DeleteColor removes a color by primary key.
func (s *Storage) DeleteColor(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM colors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete color: %w", err)
	}
	return requireRow(result)
}

// CreateGroup inserts a production group and fills in its ID.
func (s *Storage) CreateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO production_groups (name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, group.Name, group.Status, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	group.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get group id: %w", err)
	}
	return nil
}

// GetGroupByID retrieves a production group by primary key.
func (s *Storage) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	g := &models.Group{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, created_at, updated_at FROM production_groups WHERE id = ?
	`, id).Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// GetGroupByName retrieves a production group by exact name.
func (s *Storage) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	g := &models.Group{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, created_at, updated_at FROM production_groups WHERE name = ?
	`, name).Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// ListGroups returns production groups matching the query plus the
// unpaged total.
func (s *Storage) ListGroups(ctx context.Context, q storage.ListQuery) ([]*models.Group, int, error) {
	where, args, err := groupSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := groupSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "production_groups", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, status, created_at, updated_at FROM production_groups`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query groups: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var groups []*models.Group
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return groups, total, nil
}

// UpdateGroup updates a production group by primary key.
func (s *Storage) UpdateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE production_groups SET name = ?, status = ?, updated_at = ? WHERE id = ?
	`, group.Name, group.Status, group.UpdatedAt, group.ID)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return requireRow(result)
}

// DeleteGroup removes a production group by primary key.
func (s *Storage) DeleteGroup(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM production_groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireRow(result)
}

// CreatePrint inserts a printable place and fills in its ID.
func (s *Storage) CreatePrint(ctx context.Context, print *models.Print) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO prints (name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, print.Name, print.Status, print.CreatedAt, print.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert print: %w", err)
	}

	print.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get print id: %w", err)
	}
	return nil
}

// GetPrintByID retrieves a printable place by primary key.
func (s *Storage) GetPrintByID(ctx context.Context, id int64) (*models.Print, error) {
	p := &models.Print{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, created_at, updated_at FROM prints WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get print: %w", err)
	}
	return p, nil
}

// ListPrints returns printable places matching the query plus the
// unpaged total.
func (s *Storage) ListPrints(ctx context.Context, q storage.ListQuery) ([]*models.Print, int, error) {
	where, args, err := printSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := printSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "prints", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, status, created_at, updated_at FROM prints`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query prints: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var prints []*models.Print
	for rows.Next() {
		p := &models.Print{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan print: %w", err)
		}
		prints = append(prints, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return prints, total, nil
}

// UpdatePrint updates a printable place by primary key.
func (s *Storage) UpdatePrint(ctx context.Context, print *models.Print) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE prints SET name = ?, status = ?, updated_at = ? WHERE id = ?
	`, print.Name, print.Status, print.UpdatedAt, print.ID)
	if err != nil {
		return fmt.Errorf("failed to update print: %w", err)
	}
	return requireRow(result)
}

// DeletePrint removes a printable place by primary key.
func (s *Storage) DeletePrint(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete print: %w", err)
	}
	return requireRow(result)
}
