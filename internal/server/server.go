// Package server runs the API behind net/http with timeouts from config and a
// graceful shutdown that lets in-flight writes and exports finish.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 10 * time.Second

// Server wraps http.Server with graceful shutdown.
type Server struct {
	server          *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
	onStop          []func() error

	ready chan struct{}
	addr  net.Addr
}

func New(cfg config.ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}
	return &Server{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
		logger:          logger,
		shutdownTimeout: shutdown,
		ready:           make(chan struct{}),
	}
}

// OnStop registers fn to run after the listener has drained, in registration order.
func (s *Server) OnStop(fn func() error) {
	s.onStop = append(s.onStop, fn)
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr is the bound address; valid after Ready is closed.
func (s *Server) Addr() net.Addr { return s.addr }

// Run listens until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	s.addr = ln.Addr()
	close(s.ready)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.addr.String()))
		errCh <- s.server.Serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server", zap.Duration("timeout", s.shutdownTimeout))
		runErr = s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	for _, fn := range s.onStop {
		if err := fn(); err != nil {
			s.logger.Warn("stop hook failed", zap.Error(err))
		}
	}
	return runErr
}
