package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/pkg/api"
)

// ProductHandler serves the product CRUD endpoints.
type ProductHandler struct {
	logger   *slog.Logger
	products storage.ProductStorage
	now      func() time.Time
}

// NewProductHandler creates the product endpoint set. now may be nil,
// in which case time.Now is used.
func NewProductHandler(logger *slog.Logger, products storage.ProductStorage, now func() time.Time) *ProductHandler {
	if now == nil {
		now = time.Now
	}
	return &ProductHandler{logger: logger, products: products, now: now}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var product models.Product
	if !decodeBody(h.logger, w, r, &product) {
		return
	}
	if product.ProductCode == "" {
		sendError(h.logger, w, http.StatusBadRequest, "productCode is required")
		return
	}
	if product.Status == "" {
		product.Status = models.StatusActive
	}
	now := h.now()
	product.CreatedAt, product.UpdatedAt = now, now

	if err := h.products.CreateProduct(ctx, &product); err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}

	sendData(h.logger, w, http.StatusCreated, product, api.MessageCreated)
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}

	product, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, product, api.MessageSuccess)
}

// Find handles POST /api/v1/products/find.
func (h *ProductHandler) Find(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	products, total, err := h.products.ListProducts(ctx, listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	page, pageSize := pageOf(req)
	sendList(h.logger, w, products, len(products), page, pageSize, total)
}

// Update handles PUT /api/v1/products/{id}. Omitted fields keep their
// stored values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}

	var req api.UpdateProductRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	product, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	if req.ProductCode != nil {
		product.ProductCode = *req.ProductCode
	}
	if req.QuantityPO != nil {
		product.QuantityPO = *req.QuantityPO
	}
	if req.DateInputNPL != nil {
		product.DateInputNPL = req.DateInputNPL
	}
	if req.DateOutputFCR != nil {
		product.DateOutputFCR = req.DateOutputFCR
	}
	if err := mergeStatus(&product.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	product.UpdatedAt = h.now()

	if err := h.products.UpdateProduct(ctx, product); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, product, api.MessageUpdated)
}

// Delete handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(h.logger, w, r, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(ctx, id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}
