package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	cfgpkg "github.com/0xPexy/sentra-inspect/internal/config"
)

type HTTP struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func NewHTTP(cfg cfgpkg.ServerConfig, h http.Handler) *HTTP {
	return &HTTP{
		srv: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (h *HTTP) Start() error {
	if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains open requests for at most the configured timeout.
func (h *HTTP) Shutdown() error {
	timeout := h.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return h.srv.Shutdown(ctx)
}
