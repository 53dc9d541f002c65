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

var roleSpec = storage.TableSpec{
	Columns: []string{"id", "role", "short_name", "created_at"},
	Search:  []string{"role", "short_name", "description"},
}

// CreateRole inserts a role and fills in its ID.
func (s *Storage) CreateRole(ctx context.Context, role *models.Role) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO roles (role, short_name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, role.Role, role.ShortName, role.Description, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert role: %w", err)
	}

	role.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get role id: %w", err)
	}
	return nil
}

// GetRoleByID retrieves a role by primary key.
func (s *Storage) GetRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	r := &models.Role{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, role, short_name, description, created_at, updated_at FROM roles WHERE id = ?
	`, id).Scan(&r.ID, &r.Role, &r.ShortName, &r.Description, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r, nil
}

// GetRoleByName retrieves a role by its unique name.
func (s *Storage) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	r := &models.Role{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, role, short_name, description, created_at, updated_at FROM roles WHERE role = ?
	`, name).Scan(&r.ID, &r.Role, &r.ShortName, &r.Description, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r, nil
}

// ListRoles returns roles matching the query plus the unpaged total.
func (s *Storage) ListRoles(ctx context.Context, q storage.ListQuery) ([]*models.Role, int, error) {
	where, args, err := roleSpec.BuildWhere(q)
	if err != nil {
		return nil, 0, err
	}
	tail, err := roleSpec.BuildTail(q)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countRows(ctx, "roles", where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, role, short_name, description, created_at, updated_at FROM roles`
	if where != "" {
		query += " WHERE " + where
	}
	query += tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query roles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var roles []*models.Role
	for rows.Next() {
		r := &models.Role{}
		if err := rows.Scan(&r.ID, &r.Role, &r.ShortName, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return roles, total, nil
}

// UpdateRole updates a role by primary key.
func (s *Storage) UpdateRole(ctx context.Context, role *models.Role) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE roles SET role = ?, short_name = ?, description = ?, updated_at = ? WHERE id = ?
	`, role.Role, role.ShortName, role.Description, role.UpdatedAt, role.ID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return requireRow(result)
}

// DeleteRole removes a role by primary key.
func (s *Storage) DeleteRole(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return requireRow(result)
}

// GetRolesByUserID returns the user's role links, oldest first.
func (s *Storage) GetRolesByUserID(ctx context.Context, userID string) ([]*models.UserRole, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, role_id, created_at, updated_at
		FROM user_roles
		WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var links []*models.UserRole
	for rows.Next() {
		l := &models.UserRole{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.RoleID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return links, nil
}

// ReplaceRolesForUser reconciles the stored role set with the incoming
// one by role_id: links absent from items are deleted, new ones
// inserted, matching rows left untouched.
func (s *Storage) ReplaceRolesForUser(ctx context.Context, userID string, items []*models.UserRole) ([]*models.UserRole, error) {
	existing, err := s.GetRolesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existingKeys := make(map[int64]bool, len(existing))
	for _, l := range existing {
		existingKeys[l.RoleID] = true
	}
	incomingKeys := make(map[int64]bool, len(items))
	for _, l := range items {
		incomingKeys[l.RoleID] = true
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
		if !incomingKeys[l.RoleID] {
			toDelete = append(toDelete, l.RoleID)
		}
	}
	if len(toDelete) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(toDelete)), ", ")
		args := make([]any, 0, len(toDelete)+1)
		args = append(args, userID)
		for _, key := range toDelete {
			args = append(args, key)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_roles WHERE user_id = ? AND role_id IN (`+placeholders+`)`,
			args...); err != nil {
			return nil, fmt.Errorf("failed to delete user roles: %w", err)
		}
	}

	for _, l := range items {
		if existingKeys[l.RoleID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role_id, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, userID, l.RoleID, l.CreatedAt, l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert user role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetRolesByUserID(ctx, userID)
}

// DeleteRolesByUserID removes all role links of a user.
func (s *Storage) DeleteRolesByUserID(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user roles: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
