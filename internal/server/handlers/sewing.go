package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// SewingHandler serves the sewing lines and the per-product delivery
// assignments.
type SewingHandler struct {
	logger     *slog.Logger
	lines      storage.SewingLineStorage
	deliveries storage.SewingLineDeliveryStorage
	now        func() time.Time
}

// NewSewingHandler creates the sewing endpoint set. now may be nil, in
// which case time.Now is used.
func NewSewingHandler(
	logger *slog.Logger,
	lines storage.SewingLineStorage,
	deliveries storage.SewingLineDeliveryStorage,
	now func() time.Time,
) *SewingHandler {
	if now == nil {
		now = time.Now
	}
	return &SewingHandler{logger: logger, lines: lines, deliveries: deliveries, now: now}
}

// CreateLine handles POST /api/v1/sewing-lines.
func (h *SewingHandler) CreateLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var line models.SewingLine
	if !decodeBody(h.logger, w, r, &line) {
		return
	}
	if line.Name == "" {
		sendError(h.logger, w, http.StatusBadRequest, "name is required")
		return
	}
	if line.Status == "" {
		line.Status = models.StatusActive
	}
	now := h.now()
	line.CreatedAt, line.UpdatedAt = now, now

	if err := h.lines.CreateSewingLine(ctx, &line); err != nil {
		h.logger.ErrorContext(ctx, "failed to create sewing line", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, line, api.MessageCreated)
}

// GetLine handles GET /api/v1/sewing-lines/{id}.
func (h *SewingHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	line, err := h.lines.GetSewingLineByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, line, api.MessageSuccess)
}

// FindLines handles POST /api/v1/sewing-lines/find.
func (h *SewingHandler) FindLines(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	lines, total, err := h.lines.ListSewingLines(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, lines, len(lines), page, pageSize, total)
}

// UpdateLine handles PUT /api/v1/sewing-lines/{id}. Omitted fields
// keep their stored values.
func (h *SewingHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateSewingLineRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	line, err := h.lines.GetSewingLineByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.Name != nil {
		line.Name = *req.Name
	}
	if err := mergeStatus(&line.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	line.UpdatedAt = h.now()

	if err := h.lines.UpdateSewingLine(ctx, line); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, line, api.MessageUpdated)
}

// DeleteLine handles DELETE /api/v1/sewing-lines/{id}.
func (h *SewingHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.lines.DeleteSewingLine(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// CreateDelivery handles POST /api/v1/sewing-line-deliveries.
func (h *SewingHandler) CreateDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var d models.SewingLineDelivery
	if !decodeBody(h.logger, w, r, &d) {
		return
	}
	if d.ProductID == 0 || d.SewingLineID == 0 {
		sendError(h.logger, w, http.StatusBadRequest, "productID and sewingLineID are required")
		return
	}
	if d.Status == "" {
		d.Status = models.StatusActive
	}
	now := h.now()
	d.CreatedAt, d.UpdatedAt = now, now

	if err := h.deliveries.CreateSewingLineDelivery(ctx, &d); err != nil {
		h.logger.ErrorContext(ctx, "failed to create sewing line delivery", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}
	sendData(h.logger, w, http.StatusCreated, d, api.MessageCreated)
}

// GetDelivery handles GET /api/v1/sewing-line-deliveries/{id}.
func (h *SewingHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	d, err := h.deliveries.GetSewingLineDeliveryByID(r.Context(), id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, d, api.MessageSuccess)
}

// GetDeliveriesByProductID handles
// GET /api/v1/sewing-line-deliveries/productID/{productID}.
func (h *SewingHandler) GetDeliveriesByProductID(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(h.logger, w, r, "productID")
	if !ok {
		return
	}
	deliveries, err := h.deliveries.GetDeliveriesByProductID(r.Context(), productID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, deliveries, api.MessageSuccess)
}

// FindDeliveries handles POST /api/v1/sewing-line-deliveries/find.
func (h *SewingHandler) FindDeliveries(w http.ResponseWriter, r *http.Request) {
	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	deliveries, total, err := h.deliveries.ListSewingLineDeliveries(r.Context(), listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	page, pageSize := pageOf(req)
	sendList(h.logger, w, deliveries, len(deliveries), page, pageSize, total)
}

// UpdateDelivery handles PUT /api/v1/sewing-line-deliveries/{id}.
// Omitted fields keep their stored values.
func (h *SewingHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	var req api.UpdateSewingLineDeliveryRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	d, err := h.deliveries.GetSewingLineDeliveryByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.SewingLineID != nil {
		d.SewingLineID = *req.SewingLineID
	}
	if req.ProductID != nil {
		d.ProductID = *req.ProductID
	}
	if req.QuantityOriginal != nil {
		d.QuantityOriginal = *req.QuantityOriginal
	}
	if req.QuantitySewed != nil {
		d.QuantitySewed = *req.QuantitySewed
	}
	if req.ExpiredDate != nil {
		d.ExpiredDate = req.ExpiredDate
	}
	if err := mergeStatus(&d.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	d.UpdatedAt = h.now()

	if err := h.deliveries.UpdateSewingLineDelivery(ctx, d); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, d, api.MessageUpdated)
}

// ReplaceDeliveries handles
// PUT /api/v1/sewing-line-deliveries/productID/{productID}. The stored
// delivery set is reconciled against the incoming list by sewing line
// id: absent rows deleted, new rows inserted, matching rows untouched.
func (h *SewingHandler) ReplaceDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := pathID(h.logger, w, r, "productID")
	if !ok {
		return
	}
	var req api.ReplaceDeliveriesRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	now := h.now()
	items := make([]*models.SewingLineDelivery, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.SewingLineDelivery{
			SewingLineID:     item.SewingLineID,
			ProductID:        productID,
			QuantityOriginal: item.QuantityOriginal,
			QuantitySewed:    item.QuantitySewed,
			ExpiredDate:      item.ExpiredDate,
			Status:           models.StatusActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	deliveries, err := h.deliveries.ReplaceDeliveriesForProduct(ctx, productID, items)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, deliveries, api.MessageUpdated)
}

// DeleteDelivery handles DELETE /api/v1/sewing-line-deliveries/{id}.
func (h *SewingHandler) DeleteDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}
	if err := h.deliveries.DeleteSewingLineDelivery(r.Context(), id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}

// DeleteDeliveriesByProductID handles
// DELETE /api/v1/sewing-line-deliveries/productID/{productID}.
func (h *SewingHandler) DeleteDeliveriesByProductID(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(h.logger, w, r, "productID")
	if !ok {
		return
	}
	deleted, err := h.deliveries.DeleteDeliveriesByProductID(r.Context(), productID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, http.StatusOK, api.Response{Message: api.MessageDeleted, Length: deleted})
}
