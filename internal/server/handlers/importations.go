package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// ImportationHandler serves the material-import records.
type ImportationHandler struct {
	logger       *slog.Logger
	importations storage.ImportationStorage
	now          func() time.Time
}

// NewImportationHandler creates the importation endpoint set. now may
// be nil, in which case time.Now is used.
func NewImportationHandler(logger *slog.Logger, importations storage.ImportationStorage, now func() time.Time) *ImportationHandler {
	if now == nil {
		now = time.Now
	}
	return &ImportationHandler{logger: logger, importations: importations, now: now}
}

// Create handles POST /api/v1/importations.
func (h *ImportationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var imp models.Importation
	if !decodeBody(h.logger, w, r, &imp) {
		return
	}
	if imp.ProductID == 0 {
		sendError(h.logger, w, http.StatusBadRequest, "productID is required")
		return
	}
	if imp.Status == "" {
		imp.Status = models.StatusActive
	}
	now := h.now()
	imp.CreatedAt, imp.UpdatedAt = now, now

	if err := h.importations.CreateImportation(ctx, &imp); err != nil {
		h.logger.ErrorContext(ctx, "failed to create importation", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, imp, api.MessageCreated)
}

// Get handles GET /api/v1/importations/{id}.
func (h *ImportationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	imp, err := h.importations.GetImportationByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, imp, api.MessageSuccess)
}

// GetByProductID handles GET /api/v1/importations/productID/{productID}.
func (h *ImportationHandler) GetByProductID(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(h.logger, w, r, "productID")
	if !ok {
		return
	}
	imps, err := h.importations.GetImportationsByProductID(r.Context(), productID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, imps, api.MessageSuccess)
}

// Find handles POST /api/v1/importations/find.
func (h *ImportationHandler) Find(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	imps, total, err := h.importations.ListImportations(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, imps, len(imps), page, pageSize, total)
}

// Update handles PUT /api/v1/importations/{id}. Omitted fields keep
// their stored values.
func (h *ImportationHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateImportationRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	imp, err := h.importations.GetImportationByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.ProductID != nil {
		imp.ProductID = *req.ProductID
	}
	if req.Quantity != nil {
		imp.Quantity = *req.Quantity
	}
	if req.DateImported != nil {
		imp.DateImported = req.DateImported
	}
	if err := mergeStatus(&imp.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	imp.UpdatedAt = h.now()

	if err := h.importations.UpdateImportation(ctx, imp); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, imp, api.MessageUpdated)
}

// Delete handles DELETE /api/v1/importations/{id}.
func (h *ImportationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.importations.DeleteImportation(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}
