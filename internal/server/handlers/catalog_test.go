package handlers

import (
	"bytes"
	"context"
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
)

func setupCatalogHandler(t *testing.T) *CatalogHandler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewCatalogHandler(slog.Default(), store, store, store, func() time.Time { return fixed })
}

func putJSON(t *testing.T, handler http.HandlerFunc, target, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestCatalogHandler_Colors(t *testing.T) {
	h := setupCatalogHandler(t)

	w := postJSON(t, h.CreateColor, "/api/v1/colors",
		models.Color{Name: "Navy", HexColor: "#000080"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Color
	decodeEnvelope(t, w, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)
	id := strconv.FormatInt(created.ID, 10)

	t.Run("rename keeps the other fields", func(t *testing.T) {
		w := putJSON(t, h.UpdateColor, "/api/v1/colors/"+id, id, `{"name": "Navy Blue"}`)
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/colors/"+id, nil)
		req.SetPathValue("id", id)
		got := httptest.NewRecorder()
		h.GetColor(got, req)
		require.Equal(t, http.StatusOK, got.Code)

		var color models.Color
		decodeEnvelope(t, got, &color)
		assert.Equal(t, "Navy Blue", color.Name)
		assert.Equal(t, "#000080", color.HexColor)
		assert.Equal(t, models.StatusActive, color.Status)
	})

	t.Run("unknown status is 400", func(t *testing.T) {
		w := putJSON(t, h.UpdateColor, "/api/v1/colors/"+id, id, `{"status": "retired"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing id is 404", func(t *testing.T) {
		w := putJSON(t, h.UpdateColor, "/api/v1/colors/999", "999", `{"name": "Ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCatalogHandler_Groups(t *testing.T) {
	h := setupCatalogHandler(t)

	w := postJSON(t, h.CreateGroup, "/api/v1/groups", models.Group{Name: "Cutting A"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Group
	decodeEnvelope(t, w, &created)
	id := strconv.FormatInt(created.ID, 10)

	t.Run("duplicate name is 400", func(t *testing.T) {
		w := postJSON(t, h.CreateGroup, "/api/v1/groups", models.Group{Name: "Cutting A"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rename keeps the status", func(t *testing.T) {
		w := putJSON(t, h.UpdateGroup, "/api/v1/groups/"+id, id, `{"name": "Cutting B"}`)
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+id, nil)
		req.SetPathValue("id", id)
		got := httptest.NewRecorder()
		h.GetGroup(got, req)
		require.Equal(t, http.StatusOK, got.Code)

		var group models.Group
		decodeEnvelope(t, got, &group)
		assert.Equal(t, "Cutting B", group.Name)
		assert.Equal(t, models.StatusActive, group.Status)
	})
}

func TestCatalogHandler_Prints(t *testing.T) {
	h := setupCatalogHandler(t)

	w := postJSON(t, h.CreatePrint, "/api/v1/prints", models.Print{Name: "Chest logo"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Print
	decodeEnvelope(t, w, &created)
	id := strconv.FormatInt(created.ID, 10)

	t.Run("status change keeps the name", func(t *testing.T) {
		w := putJSON(t, h.UpdatePrint, "/api/v1/prints/"+id, id, `{"status": "deleted"}`)
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/prints/"+id, nil)
		req.SetPathValue("id", id)
		got := httptest.NewRecorder()
		h.GetPrint(got, req)
		require.Equal(t, http.StatusOK, got.Code)

		var print models.Print
		decodeEnvelope(t, got, &print)
		assert.Equal(t, "Chest logo", print.Name)
		assert.Equal(t, models.StatusDeleted, print.Status)
	})
}
