package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

func createTestRole(t *testing.T, ctx context.Context, s *Storage, name string) *models.Role {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	role := &models.Role{
		Role:      name,
		ShortName: name[:3],
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateRole(ctx, role))
	return role
}

func TestRoleStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	role := createTestRole(t, ctx, s, "warehouse_manager")

	retrieved, err := s.GetRoleByName(ctx, "warehouse_manager")
	require.NoError(t, err)
	assert.Equal(t, role.ID, retrieved.ID)

	_, err = s.GetRoleByName(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	role.Description = "manages the warehouse"
	role.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.UpdateRole(ctx, role))

	retrieved, err = s.GetRoleByID(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "manages the warehouse", retrieved.Description)

	require.NoError(t, s.DeleteRole(ctx, role.ID))
	_, err = s.GetRoleByID(ctx, role.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserRoleStorage_ReplaceRolesForUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)
	admin := createTestRole(t, ctx, s, "administrator")
	cutter := createTestRole(t, ctx, s, "cutting_operator")
	sewer := createTestRole(t, ctx, s, "sewing_operator")

	now := time.Now().UTC().Truncate(time.Second)
	link := func(roleID int64) *models.UserRole {
		return &models.UserRole{UserID: user.ID, RoleID: roleID, CreatedAt: now, UpdatedAt: now}
	}

	initial, err := s.ReplaceRolesForUser(ctx, user.ID, []*models.UserRole{link(admin.ID), link(cutter.ID)})
	require.NoError(t, err)
	require.Len(t, initial, 2)
	keptCutter := initial[1]

	result, err := s.ReplaceRolesForUser(ctx, user.ID, []*models.UserRole{link(cutter.ID), link(sewer.ID)})
	require.NoError(t, err)
	require.Len(t, result, 2)

	roleIDs := make(map[int64]*models.UserRole, len(result))
	for _, l := range result {
		roleIDs[l.RoleID] = l
	}
	assert.NotContains(t, roleIDs, admin.ID)
	assert.Contains(t, roleIDs, sewer.ID)
	require.Contains(t, roleIDs, cutter.ID)
	assert.Equal(t, keptCutter.ID, roleIDs[cutter.ID].ID)
}

func TestUserRoleStorage_DeleteRolesByUserID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s)
	role := createTestRole(t, ctx, s, "trainer")

	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.ReplaceRolesForUser(ctx, user.ID, []*models.UserRole{
		{UserID: user.ID, RoleID: role.ID, CreatedAt: now, UpdatedAt: now},
	})
	require.NoError(t, err)

	deleted, err := s.DeleteRolesByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	links, err := s.GetRolesByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
