package handlers

import (
	"log/slog"
	"net/http"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/internal/server/middleware"
	"github.com/seamline/backoffice/internal/validation"
	"github.com/seamline/backoffice/pkg/api"
)

// AuthHandler serves the login, token lifecycle and OTP verification
// endpoints.
type AuthHandler struct {
	logger *slog.Logger
	svc    *auth.Service
}

// NewAuthHandler creates the auth endpoint set.
func NewAuthHandler(logger *slog.Logger, svc *auth.Service) *AuthHandler {
	return &AuthHandler{logger: logger, svc: svc}
}

// toUserData strips credential fields off a user for the wire.
func toUserData(u *models.User) api.UserData {
	return api.UserData{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		Status:    string(u.Status),
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password == "" {
		sendError(h.logger, w, http.StatusBadRequest, "password is required")
		return
	}

	session, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			slog.String("email", validation.NormalizeEmail(req.Email)), slog.Any("error", err))
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, api.LoginData{
		User:         toUserData(session.User),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, api.MessageSuccess)
}

// Refresh handles POST /api/v1/auth/refresh. It returns a new access
// token; the refresh token stays valid until logout or expiry.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		sendError(h.logger, w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	accessToken, err := h.svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.WarnContext(ctx, "token refresh rejected", slog.Any("error", err))
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, api.RefreshData{AccessToken: accessToken}, api.MessageSuccess)
}

// Logout handles POST /api/v1/auth/logout by revoking the stored
// refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LogoutRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		sendError(h.logger, w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	if err := h.svc.Revoke(ctx, req.RefreshToken); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, nil, api.MessageSuccess)
}

// SendOTP handles POST /api/v1/auth/otp/{email}.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.PathValue("email")
	if err := validation.ValidateEmail(email); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SendOTP(ctx, email); err != nil {
		h.logger.WarnContext(ctx, "otp send failed",
			slog.String("email", validation.NormalizeEmail(email)), slog.Any("error", err))
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, nil, "Verification code sent!")
}

// VerifyOTP handles POST /api/v1/auth/verify-otp/{email}.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.PathValue("email")
	if err := validation.ValidateEmail(email); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.VerifyOTPRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	if err := validation.ValidateOTP(req.OTP); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.VerifyOTP(ctx, email, req.OTP)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, toUserData(user), api.MessageSuccess)
}

// UserInfo handles GET /api/v1/auth/userinfo for the authenticated
// user.
func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.svc.LoadUser(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, toUserData(user), api.MessageSuccess)
}
