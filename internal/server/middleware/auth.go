package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/pkg/api"
)

type contextKey string

// userIDKey carries the authenticated user id through the request
// context.
const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user id set by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Auth verifies the bearer access token, loads the user behind it and
// rejects accounts that may not act. The user id is attached to the
// request context for the handlers.
func Auth(logger *slog.Logger, svc *auth.Service) func(http.Handler) http.Handler {
	return authenticate(logger, svc, false)
}

// AdminAuth is Auth plus an is_admin requirement.
func AdminAuth(logger *slog.Logger, svc *auth.Service) func(http.Handler) http.Handler {
	return authenticate(logger, svc, true)
}

func authenticate(logger *slog.Logger, svc *auth.Service, requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn("missing or malformed Authorization header")
				rejectJSON(logger, w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := auth.VerifyAccessToken(svc.Config(), tokenString, svc.Now)
			if err != nil {
				logger.Warn("access token rejected", slog.Any("error", err))
				rejectJSON(logger, w, http.StatusForbidden, err.Error())
				return
			}

			user, err := svc.LoadUser(r.Context(), claims.UserID)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrUserNotFound):
					rejectJSON(logger, w, http.StatusNotFound, err.Error())
				case errors.Is(err, auth.ErrUserPending), errors.Is(err, auth.ErrUserDeleted):
					rejectJSON(logger, w, http.StatusForbidden, err.Error())
				default:
					logger.Error("failed to load user", slog.Any("error", err))
					rejectJSON(logger, w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			if requireAdmin && !user.IsAdmin {
				logger.Warn("admin endpoint rejected non-admin user",
					slog.String("user_id", user.ID))
				rejectJSON(logger, w, http.StatusUnauthorized, "administrator access required")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// rejectJSON writes an error envelope without pulling in the handlers
// package (which sits above the middleware in the import graph).
func rejectJSON(logger *slog.Logger, w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(api.Response{Message: message}); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
