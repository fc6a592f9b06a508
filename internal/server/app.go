package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/litescript/ls-celestial/internal/logging"
)

// App encapsulates the HTTP server lifecycle.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewApp builds the runnable app.
func NewApp(server *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &App{server: server, logger: logger.With("component", "server"), shutdownTimeout: shutdownTimeout}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		a.logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
