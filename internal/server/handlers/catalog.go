package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// CatalogHandler serves the small lookup catalogs: colors, production
// groups and printable places. They share the same CRUD shape.
type CatalogHandler struct {
	logger *slog.Logger
	colors storage.ColorStorage
	groups storage.GroupStorage
	prints storage.PrintStorage
	now    func() time.Time
}

// NewCatalogHandler creates the catalog endpoint set. now may be nil,
// in which case time.Now is used.
func NewCatalogHandler(
	logger *slog.Logger,
	colors storage.ColorStorage,
	groups storage.GroupStorage,
	prints storage.PrintStorage,
	now func() time.Time,
) *CatalogHandler {
	if now == nil {
		now = time.Now
	}
	return &CatalogHandler{logger: logger, colors: colors, groups: groups, prints: prints, now: now}
}

// stamp sets defaults shared by all catalog rows.
func (h *CatalogHandler) stamp(status *models.Status, created, updated *time.Time) {
	if *status == "" {
		*status = models.StatusActive
	}
	now := h.now()
	*created, *updated = now, now
}

// CreateColor handles POST /api/v1/colors.
func (h *CatalogHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var color models.Color
	if !decodeBody(h.logger, w, r, &color) {
		return
	}
	if color.Name == "" {
		sendError(h.logger, w, http.StatusBadRequest, "name is required")
		return
	}
	h.stamp(&color.Status, &color.CreatedAt, &color.UpdatedAt)

	if err := h.colors.CreateColor(ctx, &color); err != nil {
		h.logger.ErrorContext(ctx, "failed to create color", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, color, api.MessageCreated)
}

// GetColor handles GET /api/v1/colors/{id}.
func (h *CatalogHandler) GetColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	color, err := h.colors.GetColorByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, color, api.MessageSuccess)
}

// FindColors handles POST /api/v1/colors/find.
func (h *CatalogHandler) FindColors(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	colors, total, err := h.colors.ListColors(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, colors, len(colors), page, pageSize, total)
}

// UpdateColor handles PUT /api/v1/colors/{id}. Omitted fields keep
// their stored values.
func (h *CatalogHandler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateColorRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	color, err := h.colors.GetColorByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Name != nil {
		color.Name = *req.Name
	}
	if req.HexColor != nil {
		color.HexColor = *req.HexColor
	}
	if err := mergeStatus(&color.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	color.UpdatedAt = h.now()

	if err := h.colors.UpdateColor(ctx, color); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, color, api.MessageUpdated)
}

// DeleteColor handles DELETE /api/v1/colors/{id}.
func (h *CatalogHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.colors.DeleteColor(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// CreateGroup handles POST /api/v1/groups. Group names are unique.
func (h *CatalogHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var group models.Group
	if !decodeBody(h.logger, w, r, &group) {
		return
	}
	if group.Name == "" {
		sendError(h.logger, w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := h.groups.GetGroupByName(ctx, group.Name); err == nil {
		sendError(h.logger, w, http.StatusBadRequest, "group already exists")
		return
	}
	h.stamp(&group.Status, &group.CreatedAt, &group.UpdatedAt)

	if err := h.groups.CreateGroup(ctx, &group); err != nil {
		h.logger.ErrorContext(ctx, "failed to create group", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, group, api.MessageCreated)
}

// GetGroup handles GET /api/v1/groups/{id}.
func (h *CatalogHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	group, err := h.groups.GetGroupByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, group, api.MessageSuccess)
}

// FindGroups handles POST /api/v1/groups/find.
func (h *CatalogHandler) FindGroups(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	groups, total, err := h.groups.ListGroups(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, groups, len(groups), page, pageSize, total)
}

// UpdateGroup handles PUT /api/v1/groups/{id}. Omitted fields keep
// their stored values.
func (h *CatalogHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateGroupRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	group, err := h.groups.GetGroupByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Name != nil {
		group.Name = *req.Name
	}
	if err := mergeStatus(&group.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	group.UpdatedAt = h.now()

	if err := h.groups.UpdateGroup(ctx, group); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, group, api.MessageUpdated)
}

// DeleteGroup handles DELETE /api/v1/groups/{id}.
func (h *CatalogHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.groups.DeleteGroup(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// CreatePrint handles POST /api/v1/prints.
func (h *CatalogHandler) CreatePrint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var print models.Print
	if !decodeBody(h.logger, w, r, &print) {
		return
	}
	if print.Name == "" {
		sendError(h.logger, w, http.StatusBadRequest, "name is required")
		return
	}
	h.stamp(&print.Status, &print.CreatedAt, &print.UpdatedAt)

	if err := h.prints.CreatePrint(ctx, &print); err != nil {
		h.logger.ErrorContext(ctx, "failed to create print", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, print, api.MessageCreated)
}

// GetPrint handles GET /api/v1/prints/{id}.
func (h *CatalogHandler) GetPrint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	print, err := h.prints.GetPrintByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, print, api.MessageSuccess)
}

// FindPrints handles POST /api/v1/prints/find.
func (h *CatalogHandler) FindPrints(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	prints, total, err := h.prints.ListPrints(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, prints, len(prints), page, pageSize, total)
}

// UpdatePrint handles PUT /api/v1/prints/{id}. Omitted fields keep
// their stored values.
func (h *CatalogHandler) UpdatePrint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdatePrintRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	print, err := h.prints.GetPrintByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Name != nil {
		print.Name = *req.Name
	}
	if err := mergeStatus(&print.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	print.UpdatedAt = h.now()

	if err := h.prints.UpdatePrint(ctx, print); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, print, api.MessageUpdated)
}

// DeletePrint handles DELETE /api/v1/prints/{id}.
func (h *CatalogHandler) DeletePrint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.prints.DeletePrint(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}
