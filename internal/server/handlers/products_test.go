package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage/sqlite"
	"github.com/seamline/backoffice/pkg/api"
)

func setupProductHandler(t *testing.T) *ProductHandler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewProductHandler(slog.Default(), store, func() time.Time { return fixed })
}

func createProductVia(t *testing.T, h *ProductHandler, code string) models.Product {
	t.Helper()

	w := postJSON(t, h.Create, "/api/v1/products",
		models.Product{ProductCode: code, QuantityPO: 1200})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	env := decodeEnvelope(t, w, &created)
	assert.Equal(t, api.MessageCreated, env.Message)
	return created
}

func getProduct(h *ProductHandler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Get(w, req)
	return w
}

func TestProductHandler_CreateAndGet(t *testing.T) {
	h := setupProductHandler(t)

	created := createProductVia(t, h, "PO-2026-001")
	require.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)

	t.Run("get returns the stored product", func(t *testing.T) {
		w := getProduct(h, "1")
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Product
		decodeEnvelope(t, w, &got)
		assert.Equal(t, "PO-2026-001", got.ProductCode)
		assert.Equal(t, 1200, got.QuantityPO)
	})

	t.Run("missing id is 404", func(t *testing.T) {
		w := getProduct(h, "999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		w := getProduct(h, "abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing productCode is 400", func(t *testing.T) {
		w := postJSON(t, h.Create, "/api/v1/products", models.Product{QuantityPO: 10})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Find(t *testing.T) {
	h := setupProductHandler(t)
	for _, code := range []string{"SS26-0001", "SS26-0002", "FW26-0001"} {
		createProductVia(t, h, code)
	}

	w := postJSON(t, h.Find, "/api/v1/products/find", api.ListRequest{
		Search:    api.Search{Term: "SS26"},
		Paginator: api.Paginator{Page: 1, PageSize: 10},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data  []models.Product `json:"data"`
		Total int              `json:"total"`
		Page  int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 2)
	assert.Equal(t, 2, env.Total)
	assert.Equal(t, 1, env.Page)
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	h := setupProductHandler(t)
	created := createProductVia(t, h, "PO-2026-002")
	id := strconv.FormatInt(created.ID, 10)

	t.Run("update touches only the provided fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+id,
			bytes.NewReader([]byte(`{"quantityPO": 1500}`)))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Update(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		got := getProduct(h, id)
		var updated models.Product
		decodeEnvelope(t, got, &updated)
		assert.Equal(t, 1500, updated.QuantityPO)
		assert.Equal(t, "PO-2026-002", updated.ProductCode)
		assert.Equal(t, models.StatusActive, updated.Status)
	})

	t.Run("unknown status is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+id,
			bytes.NewReader([]byte(`{"status": "archived"}`)))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Update(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusNotFound, getProduct(h, id).Code)
	})
}
