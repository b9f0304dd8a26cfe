package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/acksell/custmvc/controllers"
)

// DataContextFactory returns a fresh unit of work for one request.
type DataContextFactory func() controllers.DataContext

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Port is the HTTP port to listen on.
	Port int
	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server is the customer pages HTTP server.
type Server struct {
	config     ServerConfig
	handler    http.Handler
	httpServer *http.Server
}

// NewServer creates a server whose requests run against contexts from newDB.
func NewServer(config ServerConfig, newDB DataContextFactory) *Server {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	mux := http.NewServeMux()
	newHandler(newDB, config.Logger).RegisterRoutes(mux)

	return &Server{
		config:  config,
		handler: requestIDMiddleware(loggingMiddleware(config.Logger, mux)),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.config.Logger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
