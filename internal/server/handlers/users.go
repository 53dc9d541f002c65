package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/internal/server/middleware"
	"github.com/seamline/backoffice/internal/server/storage"
	"github.com/seamline/backoffice/internal/validation"
	"github.com/seamline/backoffice/pkg/api"
)

// UserHandler serves the user management endpoints. Creation triggers
// the OTP verification mail; the new account stays pending until the
// code is confirmed.
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	svc    *auth.Service
	now    func() time.Time
}

// NewUserHandler creates the user endpoint set. now may be nil, in
// which case time.Now is used.
func NewUserHandler(logger *slog.Logger, users storage.UserStorage, svc *auth.Service, now func() time.Time) *UserHandler {
	if now == nil {
		now = time.Now
	}
	return &UserHandler{logger: logger, users: users, svc: svc, now: now}
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateUserRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.MessageCreationFailed)
		return
	}

	now := h.now()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     validation.NormalizeEmail(req.Email),
		Password:  hash,
		FullName:  req.FullName,
		Avatar:    req.Avatar,
		Status:    models.StatusPending,
		IsAdmin:   req.IsAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		h.logger.WarnContext(ctx, "failed to create user",
			slog.String("email", user.Email), slog.Any("error", err))
		sendServiceError(h.logger, w, err)
		return
	}

	// The account is unusable until verified, so the code goes out
	// right away. A mail failure does not undo the creation; the
	// owner can request a new code.
	if err := h.svc.SendOTP(ctx, user.Email); err != nil {
		h.logger.WarnContext(ctx, "failed to send verification code",
			slog.String("user_id", user.ID), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID), slog.String("email", user.Email))

	sendData(h.logger, w, http.StatusCreated, toUserData(user), api.MessageCreated)
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.users.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, toUserData(user), api.MessageSuccess)
}

// GetByEmail handles GET /api/v1/users/email/{email}.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.PathValue("email")
	if err := validation.ValidateEmail(email); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}
	sendData(h.logger, w, http.StatusOK, toUserData(user), api.MessageSuccess)
}

// Find handles POST /api/v1/users/find.
func (h *UserHandler) Find(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ListRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	users, total, err := h.users.ListUsers(ctx, listQueryFromRequest(req))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	data := make([]api.UserData, 0, len(users))
	for _, u := range users {
		data = append(data, toUserData(u))
	}

	page, pageSize := pageOf(req)
	sendList(h.logger, w, data, len(data), page, pageSize, total)
}

// Update handles PUT /api/v1/users/{id}. Only provided fields change.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateUserRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	user, err := h.users.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if err := mergeStatus(&user.Status, req.Status); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password != nil {
		if err := validation.ValidatePassword(*req.Password); err != nil {
			sendError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
			sendError(h.logger, w, http.StatusInternalServerError, api.MessageUpdateFailed)
			return
		}
		user.Password = hash
	}
	user.UpdatedAt = h.now()

	if err := h.users.UpdateUser(ctx, user); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendData(h.logger, w, http.StatusOK, toUserData(user), api.MessageUpdated)
}

// Delete handles DELETE /api/v1/users/{id}. The caller cannot delete
// their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if callerID, ok := middleware.UserIDFromContext(ctx); ok && callerID == id {
		sendError(h.logger, w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	if err := h.users.DeleteUser(ctx, id); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.String("user_id", id))
	sendData(h.logger, w, http.StatusOK, nil, api.MessageDeleted)
}
