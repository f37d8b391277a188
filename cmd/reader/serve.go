// ABOUTME: serve command running the reader API server
// ABOUTME: Wires handlers onto the huma API and shuts down gracefully on SIGINT/SIGTERM

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reader-assist/api"
	"reader-assist/api/handlers"
	"reader-assist/api/middleware"
	"reader-assist/pkg/featureflags"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reader API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return runServer(ctx, a)
			})
		},
	}
	return cmd
}

// newRouter builds the API with every handler registered
func newRouter(a *app) (http.Handler, *middleware.RateLimiter) {
	var limiter *middleware.RateLimiter
	if a.cfg.Server.RateLimit > 0 && a.flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		limiter = middleware.NewRateLimiter(a.cfg.Server.RateLimit, a.cfg.Server.RateBurst)
	}

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:  a.logger,
		Limiter: limiter,
		Flags:   a.flags,
	})

	handlers.NewSessionHandler(a.registry, a.reader, a.logger).RegisterRoutes(humaAPI)
	handlers.NewChatHandler(a.registry, a.settings, a.deps.ChatBackend, a.logger).RegisterRoutes(humaAPI)
	handlers.NewSettingsHandler(a.settings, a.logger).RegisterRoutes(humaAPI)
	handlers.NewToolbarHandler(a.registry).RegisterRoutes(humaAPI)

	return router, limiter
}

func runServer(ctx context.Context, a *app) error {
	router, limiter := newRouter(a)
	if limiter != nil {
		defer limiter.Close()
	}

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.cfg.Chat.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
			"storage": a.cfg.Storage.Type,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("HTTP server error", map[string]interface{}{"error": err.Error()})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown", map[string]interface{}{"error": err.Error()})
		return err
	}

	a.logger.Info("Server stopped", nil)
	return nil
}
