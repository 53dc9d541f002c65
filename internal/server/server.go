// Package server wires storage, services, middleware and handlers into
// the HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/seamline/backoffice/internal/config"
	"github.com/seamline/backoffice/internal/mail"
	"github.com/seamline/backoffice/internal/server/auth"
	"github.com/seamline/backoffice/internal/server/handlers"
	"github.com/seamline/backoffice/internal/server/middleware"
	"github.com/seamline/backoffice/internal/server/storage/sqlite"
)

// Version is set via ldflags during build.
var Version = "dev"

// App owns the HTTP server and its dependencies.
type App struct {
	logger *slog.Logger
	cfg    *config.Config
	store  *sqlite.Storage
	srv    *http.Server
}

// NewApp opens the database and builds the full handler chain.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP)

	tokenCfg := auth.TokenConfig{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	authSvc := auth.NewService(logger, store, store, mailer, tokenCfg, nil)

	mux := NewRouter(logger, store, authSvc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{logger: logger, cfg: cfg, store: store, srv: srv}, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", a.cfg.Addr))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go a.cleanupExpiredTokens(ctx)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", slog.Any("error", err))
	}

	return a.store.Close()
}

// cleanupExpiredTokens periodically removes refresh-token rows past
// their expiry. Stale rows are harmless for auth (expiry is checked on
// refresh) but accumulate otherwise.
func (a *App) cleanupExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := a.store.DeleteExpiredTokens(ctx)
			if err != nil {
				a.logger.Warn("expired token cleanup failed", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				a.logger.Info("expired tokens removed", slog.Int("count", deleted))
			}
		}
	}
}

// NewRouter registers every endpoint with its middleware chain.
func NewRouter(logger *slog.Logger, store *sqlite.Storage, authSvc *auth.Service) http.Handler {
	mux := http.NewServeMux()

	authHandler := handlers.NewAuthHandler(logger, authSvc)
	userHandler := handlers.NewUserHandler(logger, store, authSvc, nil)
	productHandler := handlers.NewProductHandler(logger, store, nil)
	catalogHandler := handlers.NewCatalogHandler(logger, store, store, store, nil)
	accessoryHandler := handlers.NewAccessoryHandler(logger, store, store, store, nil)
	sewingHandler := handlers.NewSewingHandler(logger, store, store, nil)
	importationHandler := handlers.NewImportationHandler(logger, store, nil)
	roleHandler := handlers.NewRoleHandler(logger, store, store, store, nil)
	healthHandler := handlers.NewHealthHandler(logger, store, Version)

	authed := middleware.Auth(logger, authSvc)
	admin := middleware.AdminAuth(logger, authSvc)
	// Credential and OTP endpoints are the brute-force surface.
	loginLimit := middleware.RateLimit(10, time.Minute, logger)

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	mux.Handle("POST /api/v1/auth/login", loginLimit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("POST /api/v1/auth/otp/{email}", loginLimit(http.HandlerFunc(authHandler.SendOTP)))
	mux.Handle("POST /api/v1/auth/verify-otp/{email}", loginLimit(http.HandlerFunc(authHandler.VerifyOTP)))
	mux.Handle("GET /api/v1/auth/userinfo", authed(http.HandlerFunc(authHandler.UserInfo)))

	mux.Handle("POST /api/v1/users", admin(http.HandlerFunc(userHandler.Create)))
	mux.Handle("POST /api/v1/users/find", admin(http.HandlerFunc(userHandler.Find)))
	mux.Handle("GET /api/v1/users/{id}", authed(http.HandlerFunc(userHandler.Get)))
	mux.Handle("GET /api/v1/users/email/{email}", authed(http.HandlerFunc(userHandler.GetByEmail)))
	mux.Handle("PUT /api/v1/users/{id}", admin(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /api/v1/users/{id}", admin(http.HandlerFunc(userHandler.Delete)))

	mux.Handle("POST /api/v1/products", authed(http.HandlerFunc(productHandler.Create)))
	mux.Handle("POST /api/v1/products/find", authed(http.HandlerFunc(productHandler.Find)))
	mux.Handle("GET /api/v1/products/{id}", authed(http.HandlerFunc(productHandler.Get)))
	mux.Handle("PUT /api/v1/products/{id}", authed(http.HandlerFunc(productHandler.Update)))
	mux.Handle("DELETE /api/v1/products/{id}", authed(http.HandlerFunc(productHandler.Delete)))

	mux.Handle("POST /api/v1/colors", authed(http.HandlerFunc(catalogHandler.CreateColor)))
	mux.Handle("POST /api/v1/colors/find", authed(http.HandlerFunc(catalogHandler.FindColors)))
	mux.Handle("GET /api/v1/colors/{id}", authed(http.HandlerFunc(catalogHandler.GetColor)))
	mux.Handle("PUT /api/v1/colors/{id}", authed(http.HandlerFunc(catalogHandler.UpdateColor)))
	mux.Handle("DELETE /api/v1/colors/{id}", authed(http.HandlerFunc(catalogHandler.DeleteColor)))

	mux.Handle("POST /api/v1/groups", authed(http.HandlerFunc(catalogHandler.CreateGroup)))
	mux.Handle("POST /api/v1/groups/find", authed(http.HandlerFunc(catalogHandler.FindGroups)))
	mux.Handle("GET /api/v1/groups/{id}", authed(http.HandlerFunc(catalogHandler.GetGroup)))
	mux.Handle("PUT /api/v1/groups/{id}", authed(http.HandlerFunc(catalogHandler.UpdateGroup)))
	mux.Handle("DELETE /api/v1/groups/{id}", authed(http.HandlerFunc(catalogHandler.DeleteGroup)))

	mux.Handle("POST /api/v1/prints", authed(http.HandlerFunc(catalogHandler.CreatePrint)))
	mux.Handle("POST /api/v1/prints/find", authed(http.HandlerFunc(catalogHandler.FindPrints)))
	mux.Handle("GET /api/v1/prints/{id}", authed(http.HandlerFunc(catalogHandler.GetPrint)))
	mux.Handle("PUT /api/v1/prints/{id}", authed(http.HandlerFunc(catalogHandler.UpdatePrint)))
	mux.Handle("DELETE /api/v1/prints/{id}", authed(http.HandlerFunc(catalogHandler.DeletePrint)))

	mux.Handle("POST /api/v1/garment-accessories", authed(http.HandlerFunc(accessoryHandler.Create)))
	mux.Handle("POST /api/v1/garment-accessories/find", authed(http.HandlerFunc(accessoryHandler.Find)))
	mux.Handle("GET /api/v1/garment-accessories/{id}", authed(http.HandlerFunc(accessoryHandler.Get)))
	mux.Handle("GET /api/v1/garment-accessories/productID/{productID}", authed(http.HandlerFunc(accessoryHandler.GetByProductID)))
	mux.Handle("PUT /api/v1/garment-accessories/{id}", authed(http.HandlerFunc(accessoryHandler.Update)))
	mux.Handle("DELETE /api/v1/garment-accessories/{id}", authed(http.HandlerFunc(accessoryHandler.Delete)))

	mux.Handle("POST /api/v1/accessory-notes", authed(http.HandlerFunc(accessoryHandler.CreateNote)))
	mux.Handle("POST /api/v1/accessory-notes/find", authed(http.HandlerFunc(accessoryHandler.FindNotes)))
	mux.Handle("GET /api/v1/accessory-notes/{id}", authed(http.HandlerFunc(accessoryHandler.GetNote)))
	mux.Handle("PUT /api/v1/accessory-notes/{id}", authed(http.HandlerFunc(accessoryHandler.UpdateNote)))
	mux.Handle("DELETE /api/v1/accessory-notes/{id}", authed(http.HandlerFunc(accessoryHandler.DeleteNote)))

	mux.Handle("GET /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}", authed(http.HandlerFunc(accessoryHandler.GetNoteLinks)))
	mux.Handle("PUT /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}", authed(http.HandlerFunc(accessoryHandler.ReplaceNoteLinks)))
	mux.Handle("DELETE /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}", authed(http.HandlerFunc(accessoryHandler.DeleteNoteLinks)))

	mux.Handle("POST /api/v1/sewing-lines", authed(http.HandlerFunc(sewingHandler.CreateLine)))
	mux.Handle("POST /api/v1/sewing-lines/find", authed(http.HandlerFunc(sewingHandler.FindLines)))
	mux.Handle("GET /api/v1/sewing-lines/{id}", authed(http.HandlerFunc(sewingHandler.GetLine)))
	mux.Handle("PUT /api/v1/sewing-lines/{id}", authed(http.HandlerFunc(sewingHandler.UpdateLine)))
	mux.Handle("DELETE /api/v1/sewing-lines/{id}", authed(http.HandlerFunc(sewingHandler.DeleteLine)))

	mux.Handle("POST /api/v1/sewing-line-deliveries", authed(http.HandlerFunc(sewingHandler.CreateDelivery)))
	mux.Handle("POST /api/v1/sewing-line-deliveries/find", authed(http.HandlerFunc(sewingHandler.FindDeliveries)))
	mux.Handle("GET /api/v1/sewing-line-deliveries/{id}", authed(http.HandlerFunc(sewingHandler.GetDelivery)))
	mux.Handle("GET /api/v1/sewing-line-deliveries/productID/{productID}", authed(http.HandlerFunc(sewingHandler.GetDeliveriesByProductID)))
	mux.Handle("PUT /api/v1/sewing-line-deliveries/{id}", authed(http.HandlerFunc(sewingHandler.UpdateDelivery)))
	mux.Handle("PUT /api/v1/sewing-line-deliveries/productID/{productID}", authed(http.HandlerFunc(sewingHandler.ReplaceDeliveries)))
	mux.Handle("DELETE /api/v1/sewing-line-deliveries/{id}", authed(http.HandlerFunc(sewingHandler.DeleteDelivery)))
	mux.Handle("DELETE /api/v1/sewing-line-deliveries/productID/{productID}", authed(http.HandlerFunc(sewingHandler.DeleteDeliveriesByProductID)))

	mux.Handle("POST /api/v1/importations", authed(http.HandlerFunc(importationHandler.Create)))
	mux.Handle("POST /api/v1/importations/find", authed(http.HandlerFunc(importationHandler.Find)))
	mux.Handle("GET /api/v1/importations/{id}", authed(http.HandlerFunc(importationHandler.Get)))
	mux.Handle("GET /api/v1/importations/productID/{productID}", authed(http.HandlerFunc(importationHandler.GetByProductID)))
	mux.Handle("PUT /api/v1/importations/{id}", authed(http.HandlerFunc(importationHandler.Update)))
	mux.Handle("DELETE /api/v1/importations/{id}", authed(http.HandlerFunc(importationHandler.Delete)))

	mux.Handle("POST /api/v1/roles", admin(http.HandlerFunc(roleHandler.Create)))
	mux.Handle("POST /api/v1/roles/find", authed(http.HandlerFunc(roleHandler.Find)))
	mux.Handle("GET /api/v1/roles/{id}", authed(http.HandlerFunc(roleHandler.Get)))
	mux.Handle("PUT /api/v1/roles/{id}", admin(http.HandlerFunc(roleHandler.Update)))
	mux.Handle("DELETE /api/v1/roles/{id}", admin(http.HandlerFunc(roleHandler.Delete)))

	mux.Handle("GET /api/v1/user-roles/userID/{userID}", authed(http.HandlerFunc(roleHandler.GetUserRoles)))
	mux.Handle("PUT /api/v1/user-roles/userID/{userID}", admin(http.HandlerFunc(roleHandler.ReplaceUserRoles)))
	mux.Handle("DELETE /api/v1/user-roles/userID/{userID}", admin(http.HandlerFunc(roleHandler.DeleteUserRoles)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
