package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// RoleHandler serves the role catalog and the per-user role
// assignments.
type RoleHandler struct {
	logger    *slog.Logger
	roles     storage.RoleStorage
	userRoles storage.UserRoleStorage
	users     storage.UserStorage
	now       func() time.Time
}

// NewRoleHandler creates the role endpoint set. now may be nil, in
// which case time.Now is used.
func NewRoleHandler(
	logger *slog.Logger,
	roles storage.RoleStorage,
	userRoles storage.UserRoleStorage,
	users storage.UserStorage,
	now func() time.Time,
) *RoleHandler {
	if now == nil {
		now = time.Now
	}
	return &RoleHandler{logger: logger, roles: roles, userRoles: userRoles, users: users, now: now}
}

// Create handles POST /api/v1/roles. Role names are unique.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var role models.Role
	if !decodeBody(h.logger, w, r, &role) {
		return
	}
	if role.Role == "" {
		sendError(h.logger, w, http.StatusBadRequest, "role is required")
		return
	}
	if _, err := h.roles.GetRoleByName(ctx, role.Role); err == nil {
		sendError(h.logger, w, http.StatusBadRequest, "role already exists")
		return
	}
	now := h.now()
	role.CreatedAt, role.UpdatedAt = now, now

	if err := h.roles.CreateRole(ctx, &role); err != nil {
		h.logger.ErrorContext(ctx, "failed to create role", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, role, api.MessageCreated)
}

// Get handles GET /api/v1/roles/{id}.
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	role, err := h.roles.GetRoleByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, role, api.MessageSuccess)
}

// Find handles POST /api/v1/roles/find.
func (h *RoleHandler) Find(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	roles, total, err := h.roles.ListRoles(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, roles, len(roles), page, pageSize, total)
}

// Update handles PUT /api/v1/roles/{id}. Omitted fields keep their
// stored values.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateRoleRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	role, err := h.roles.GetRoleByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Role != nil {
		role.Role = *req.Role
	}
	if req.ShortName != nil {
		role.ShortName = *req.ShortName
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	role.UpdatedAt = h.now()

	if err := h.roles.UpdateRole(ctx, role); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, role, api.MessageUpdated)
}

// Delete handles DELETE /api/v1/roles/{id}.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.roles.DeleteRole(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// GetUserRoles handles GET /api/v1/user-roles/userID/{userID}.
func (h *RoleHandler) GetUserRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("userID")
	if _, err := h.users.GetUserByID(ctx, userID); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	links, err := h.userRoles.GetRolesByUserID(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, links, api.MessageSuccess)
}

// ReplaceUserRoles handles PUT /api/v1/user-roles/userID/{userID}. The
// stored role set is reconciled against the incoming list by role id.
func (h *RoleHandler) ReplaceUserRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("userID")
	if _, err := h.users.GetUserByID(ctx, userID); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	var req api.ReplaceUserRolesRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	now := h.now()
	items := make([]*models.UserRole, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.UserRole{
			UserID:    userID,
			RoleID:    item.RoleID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	links, err := h.userRoles.ReplaceRolesForUser(ctx, userID, items)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, links, api.MessageUpdated)
}

// DeleteUserRoles handles DELETE /api/v1/user-roles/userID/{userID}.
func (h *RoleHandler) DeleteUserRoles(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	deleted, err := h.userRoles.DeleteRolesByUserID(r.Context(), userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, http.StatusOK, api.Response{Message: api.MessageDeleted, Length: deleted})
}
