package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/internal/server/storage/sqlite"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string) error { return nil }

func setupAuthTest(t *testing.T) (*auth.Service, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := auth.TokenConfig{
		AccessSecret:  []byte("mw-access-secret"),
		RefreshSecret: []byte("mw-refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	return auth.NewService(slog.Default(), store, store, nopMailer{}, cfg, nil), store
}

func createAuthUser(t *testing.T, store *sqlite.Storage, email string, status models.UserStatus, isAdmin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hash),
		Status:    status,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func loginFor(t *testing.T, svc *auth.Service, email string) string {
	t.Helper()

	session, err := svc.Login(context.Background(), email, "pw123456")
	require.NoError(t, err)
	return session.AccessToken
}

func serveAuthed(mw func(http.Handler) http.Handler, token string) (*httptest.ResponseRecorder, string) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)
	return w, gotUserID
}

func TestAuth(t *testing.T) {
	svc, store := setupAuthTest(t)
	mw := Auth(slog.Default(), svc)

	user := createAuthUser(t, store, "active@example.com", models.StatusActive, false)
	token := loginFor(t, svc, "active@example.com")

	t.Run("valid token passes and sets the user id", func(t *testing.T) {
		w, userID := serveAuthed(mw, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		w, _ := serveAuthed(mw, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token is 403", func(t *testing.T) {
		w, _ := serveAuthed(mw, "not-a-jwt")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("pending user is 403", func(t *testing.T) {
		createAuthUser(t, store, "pending@example.com", models.StatusPending, false)
		w, _ := serveAuthed(mw, loginFor(t, svc, "pending@example.com"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("user removed after issue is 404", func(t *testing.T) {
		gone := createAuthUser(t, store, "gone@example.com", models.StatusActive, false)
		token := loginFor(t, svc, "gone@example.com")
		require.NoError(t, store.DeleteUser(context.Background(), gone.ID))

		w, _ := serveAuthed(mw, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	svc, store := setupAuthTest(t)
	mw := AdminAuth(slog.Default(), svc)

	createAuthUser(t, store, "worker@example.com", models.StatusActive, false)
	admin := createAuthUser(t, store, "admin@example.com", models.StatusActive, true)

	t.Run("non-admin is 401", func(t *testing.T) {
		w, _ := serveAuthed(mw, loginFor(t, svc, "worker@example.com"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		w, userID := serveAuthed(mw, loginFor(t, svc, "admin@example.com"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, admin.ID, userID)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "standard", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "lowercase scheme", header: "bearer abc", want: "abc", ok: true},
		{name: "empty", header: "", ok: false},
		{name: "no token", header: "Bearer ", ok: false},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := bearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
