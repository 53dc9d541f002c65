package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// AccessoryHandler serves garment accessories, the accessory note
// catalog and the note links between them.
type AccessoryHandler struct {
	logger      *slog.Logger
	accessories storage.GarmentAccessoryStorage
	notes       storage.AccessoryNoteStorage
	noteLinks   storage.GarmentAccessoryNoteStorage
	now         func() time.Time
}

// NewAccessoryHandler creates the accessory endpoint set. now may be
// nil, in which case time.Now is used.
func NewAccessoryHandler(
	logger *slog.Logger,
	accessories storage.GarmentAccessoryStorage,
	notes storage.AccessoryNoteStorage,
	noteLinks storage.GarmentAccessoryNoteStorage,
	now func() time.Time,
) *AccessoryHandler {
	if now == nil {
		now = time.Now
	}
	return &AccessoryHandler{
		logger:      logger,
		accessories: accessories,
		notes:       notes,
		noteLinks:   noteLinks,
		now:         now,
	}
}

// Create handles POST /api/v1/garment-accessories.
func (h *AccessoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ga models.GarmentAccessory
	if !decodeBody(h.logger, w, r, &ga) {
		return
	}
	if ga.ProductID == 0 {
		sendError(h.logger, w, http.StatusBadRequest, "productID is required")
		return
	}
	if ga.Status == "" {
		ga.Status = models.StatusActive
	}
	now := h.now()
	ga.CreatedAt, ga.UpdatedAt = now, now

	if err := h.accessories.CreateGarmentAccessory(ctx, &ga); err != nil {
		h.logger.ErrorContext(ctx, "failed to create garment accessory", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, ga, api.MessageCreated)
}

// Get handles GET /api/v1/garment-accessories/{id}.
func (h *AccessoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	ga, err := h.accessories.GetGarmentAccessoryByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, ga, api.MessageSuccess)
}

// GetByProductID handles GET /api/v1/garment-accessories/productID/{productID}.
func (h *AccessoryHandler) GetByProductID(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(h.logger, w, r, "productID")
	if !ok {
		return
	}
	ga, err := h.accessories.GetGarmentAccessoryByProductID(r.Context(), productID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, ga, api.MessageSuccess)
}

// Find handles POST /api/v1/garment-accessories/find.
func (h *AccessoryHandler) Find(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	gas, total, err := h.accessories.ListGarmentAccessories(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, gas, len(gas), page, pageSize, total)
}

// Update handles PUT /api/v1/garment-accessories/{id}. Omitted fields
// keep their stored values.
func (h *AccessoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateGarmentAccessoryRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	ga, err := h.accessories.GetGarmentAccessoryByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.ProductID != nil {
		ga.ProductID = *req.ProductID
	}
	if req.AmountCutting != nil {
		ga.AmountCutting = *req.AmountCutting
	}
	if req.PassingDeliveryDate != nil {
		ga.PassingDeliveryDate = req.PassingDeliveryDate
	}
	if err := mergeStatus(&ga.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	ga.UpdatedAt = h.now()

	if err := h.accessories.UpdateGarmentAccessory(ctx, ga); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, ga, api.MessageUpdated)
}

// Delete handles DELETE /api/v1/garment-accessories/{id}. Note links
// go with the accessory.
func (h *AccessoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if _, err := h.noteLinks.DeleteNotesByGarmentAccessoryID(ctx, id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if err := h.accessories.DeleteGarmentAccessory(ctx, id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// CreateNote handles POST /api/v1/accessory-notes.
func (h *AccessoryHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var note models.AccessoryNote
	if !decodeBody(h.logger, w, r, &note) {
		return
	}
	if note.Title == "" {
		sendError(h.logger, w, http.StatusBadRequest, "title is required")
		return
	}
	if note.Status == "" {
		note.Status = models.StatusActive
	}
	now := h.now()
	note.CreatedAt, note.UpdatedAt = now, now

	if err := h.notes.CreateAccessoryNote(ctx, &note); err != nil {
		h.logger.ErrorContext(ctx, "failed to create accessory note", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, note, api.MessageCreated)
}

// GetNote handles GET /api/v1/accessory-notes/{id}.
func (h *AccessoryHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	note, err := h.notes.GetAccessoryNoteByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, note, api.MessageSuccess)
}

// FindNotes handles POST /api/v1/accessory-notes/find.
func (h *AccessoryHandler) FindNotes(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	notes, total, err := h.notes.ListAccessoryNotes(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, notes, len(notes), page, pageSize, total)
}

// UpdateNote handles PUT /api/v1/accessory-notes/{id}. Omitted fields
// keep their stored values.
func (h *AccessoryHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateAccessoryNoteRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	note, err := h.notes.GetAccessoryNoteByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Summary != nil {
		note.Summary = *req.Summary
	}
	if err := mergeStatus(&note.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	note.UpdatedAt = h.now()

	if err := h.notes.UpdateAccessoryNote(ctx, note); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, note, api.MessageUpdated)
}

// DeleteNote handles DELETE /api/v1/accessory-notes/{id}.
func (h *AccessoryHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.notes.DeleteAccessoryNote(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// GetNoteLinks handles
// GET /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}.
func (h *AccessoryHandler) GetNoteLinks(w http.ResponseWriter, r *http.Request) {
	gaID, ok := pathID(h.logger, w, r, "garmentAccessoryID")
	if !ok {
		return
	}
	links, err := h.noteLinks.GetNotesByGarmentAccessoryID(r.Context(), gaID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, links, api.MessageSuccess)
}

// ReplaceNoteLinks handles
// PUT /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}.
// The stored note set is reconciled against the incoming list by
// accessory note id.
func (h *AccessoryHandler) ReplaceNoteLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gaID, ok := pathID(h.logger, w, r, "garmentAccessoryID")
	if !ok {
		return
	}
	var req api.ReplaceAccessoryNotesRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	now := h.now()
	items := make([]*models.GarmentAccessoryNote, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.GarmentAccessoryNote{
			GarmentAccessoryID: gaID,
			AccessoryNoteID:    item.AccessoryNoteID,
			Status:             models.StatusActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}

	links, err := h.noteLinks.ReplaceNotesForAccessory(ctx, gaID, items)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, links, api.MessageUpdated)
}

// DeleteNoteLinks handles
// DELETE /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}.
func (h *AccessoryHandler) DeleteNoteLinks(w http.ResponseWriter, r *http.Request) {
	gaID, ok := pathID(h.logger, w, r, "garmentAccessoryID")
	if !ok {
		return
	}
	deleted, err := h.noteLinks.DeleteNotesByGarmentAccessoryID(r.Context(), gaID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, http.StatusOK, api.Response{Message: api.MessageDeleted, Length: deleted})
}
