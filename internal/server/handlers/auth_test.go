package handlers

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/seamline/backoffice/internal/server/middleware"
	"github.com/seamline/backoffice/internal/server/storage/sqlite"
	"github.com/seamline/backoffice/pkg/api"
)

var testTokenConfig = auth.TokenConfig{
	AccessSecret:  []byte("handler-access-secret"),
	RefreshSecret: []byte("handler-refresh-secret"),
	AccessTTL:     time.Hour,
	RefreshTTL:    7 * 24 * time.Hour,
}

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string) error { return nil }

func setupAuthHandler(t *testing.T) (*AuthHandler, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	svc := auth.NewService(slog.Default(), store, store, nopMailer{}, testTokenConfig, nil)
	return NewAuthHandler(slog.Default(), svc), store
}

func createHandlerUser(t *testing.T, store *sqlite.Storage, email, password string, status models.UserStatus) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hash),
		FullName:  "Handler Test",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) api.Response {
	t.Helper()

	var env struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return api.Response{Message: env.Message}
}

func TestAuthHandler_Login(t *testing.T) {
	h, store := setupAuthHandler(t)
	createHandlerUser(t, store, "boss@example.com", "pw123456", models.StatusActive)

	t.Run("success", func(t *testing.T) {
		w := postJSON(t, h.Login, "/api/v1/auth/login",
			api.LoginRequest{Email: "boss@example.com", Password: "pw123456"})
		require.Equal(t, http.StatusOK, w.Code)

		var data api.LoginData
		decodeEnvelope(t, w, &data)
		assert.Equal(t, "boss@example.com", data.User.Email)
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)

		// the password hash must never reach the wire
		assert.NotContains(t, w.Body.String(), `"password"`)
		assert.NotContains(t, w.Body.String(), "pw123456")
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		w := postJSON(t, h.Login, "/api/v1/auth/login",
			api.LoginRequest{Email: "boss@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		w := postJSON(t, h.Login, "/api/v1/auth/login",
			api.LoginRequest{Email: "ghost@example.com", Password: "pw123456"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed email is 400", func(t *testing.T) {
		w := postJSON(t, h.Login, "/api/v1/auth/login",
			api.LoginRequest{Email: "not-an-email", Password: "pw123456"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		h.Login(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	h, store := setupAuthHandler(t)
	createHandlerUser(t, store, "boss@example.com", "pw123456", models.StatusActive)

	w := postJSON(t, h.Login, "/api/v1/auth/login",
		api.LoginRequest{Email: "boss@example.com", Password: "pw123456"})
	require.Equal(t, http.StatusOK, w.Code)
	var login api.LoginData
	decodeEnvelope(t, w, &login)

	t.Run("refresh returns a new access token", func(t *testing.T) {
		w := postJSON(t, h.Refresh, "/api/v1/auth/refresh",
			api.RefreshRequest{RefreshToken: login.RefreshToken})
		require.Equal(t, http.StatusOK, w.Code)

		var data api.RefreshData
		decodeEnvelope(t, w, &data)
		assert.NotEmpty(t, data.AccessToken)
	})

	t.Run("refresh with garbage is 403", func(t *testing.T) {
		w := postJSON(t, h.Refresh, "/api/v1/auth/refresh",
			api.RefreshRequest{RefreshToken: "garbage"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		w := postJSON(t, h.Logout, "/api/v1/auth/logout",
			api.LogoutRequest{RefreshToken: login.RefreshToken})
		require.Equal(t, http.StatusOK, w.Code)

		// refresh after logout fails
		w = postJSON(t, h.Refresh, "/api/v1/auth/refresh",
			api.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// a second logout reports the token as already gone
		w = postJSON(t, h.Logout, "/api/v1/auth/logout",
			api.LogoutRequest{RefreshToken: login.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_UserInfo(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	svc := auth.NewService(slog.Default(), store, store, nopMailer{}, testTokenConfig, nil)
	h := NewAuthHandler(slog.Default(), svc)
	createHandlerUser(t, store, "boss@example.com", "pw123456", models.StatusActive)

	w := postJSON(t, h.Login, "/api/v1/auth/login",
		api.LoginRequest{Email: "boss@example.com", Password: "pw123456"})
	require.Equal(t, http.StatusOK, w.Code)
	var login api.LoginData
	decodeEnvelope(t, w, &login)

	protected := middleware.Auth(slog.Default(), svc)(http.HandlerFunc(h.UserInfo))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var data api.UserData
	decodeEnvelope(t, w, &data)
	assert.Equal(t, "boss@example.com", data.Email)

	// the password hash must never reach the wire
	assert.NotContains(t, w.Body.String(), `"password"`)
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	h, store := setupAuthHandler(t)
	user := createHandlerUser(t, store, "new@example.com", "pw123456", models.StatusPending)
	require.NoError(t, store.SetOTP(context.Background(), user.ID, "123456"))

	verify := func(email, code string) *httptest.ResponseRecorder {
		data, err := json.Marshal(api.VerifyOTPRequest{OTP: code})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-otp/"+email, bytes.NewReader(data))
		req.SetPathValue("email", email)
		w := httptest.NewRecorder()
		h.VerifyOTP(w, req)
		return w
	}

	t.Run("mismatch is 400", func(t *testing.T) {
		w := verify("new@example.com", "654321")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("match activates the account", func(t *testing.T) {
		w := verify("new@example.com", "123456")
		require.Equal(t, http.StatusOK, w.Code)

		var data api.UserData
		decodeEnvelope(t, w, &data)
		assert.Equal(t, string(models.StatusActive), data.Status)
	})

	t.Run("already active is 400", func(t *testing.T) {
		w := verify("new@example.com", "123456")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
