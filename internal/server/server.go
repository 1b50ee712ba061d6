// Package server wires the conversion pipeline behind the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/metroplan/railnotes/internal/api"
	"github.com/metroplan/railnotes/internal/config"
	"github.com/metroplan/railnotes/internal/convert"
	"github.com/metroplan/railnotes/internal/providers"
	"github.com/metroplan/railnotes/internal/server/endpoints"
	"github.com/metroplan/railnotes/internal/svcctx"
)

// Server is the railnotes HTTP server.
type Server struct {
	httpServer *http.Server
	registry   *providers.Registry
	configMgr  *config.Manager
	logger     *slog.Logger

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu       sync.RWMutex
	services *svcctx.Services
	running  bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 0.0.0.0)
	Host string
	// Port is the port to listen on (default: 8000)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)
	registry.Reload(cfg.ConfigManager.Get().ToProviderRegistryConfig())

	s := &Server{
		registry:  registry,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	services, err := s.buildServices(cfg.ConfigManager.Get())
	if err != nil {
		return nil, err
	}
	s.services = services

	// Rebuild the converter when config changes so provider or retry
	// policy updates take effect without a restart.
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		registry.Reload(c.ToProviderRegistryConfig())
		svcs, err := s.buildServices(c)
		if err != nil {
			cfg.Logger.Error("config reload failed", "error", err)
			return
		}
		s.mu.Lock()
		s.services = svcs
		s.mu.Unlock()
		cfg.Logger.Info("services rebuilt from config")
	})

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      withCORS(s.withServices(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Conversions wait on the remote model
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildServices constructs the per-config service set.
func (s *Server) buildServices(c *config.Config) (*svcctx.Services, error) {
	client, err := s.registry.GetLLM(c.Provider)
	if err != nil {
		return nil, fmt.Errorf("default provider %q not available: %w", c.Provider, err)
	}

	conv, err := convert.New(convert.Config{
		Client:      client,
		MaxRetries:  c.Convert.MaxRetries,
		RetryDelay:  c.Convert.RetryDelay,
		Temperature: c.Convert.Temperature,
		MaxTokens:   c.Convert.MaxTokens,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, err
	}

	return &svcctx.Services{
		Converter: conv,
		Registry:  s.registry,
		Logger:    s.logger,
	}, nil
}

// Handler returns the fully assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	return err
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// withServices attaches the current service set to every request context.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		services := s.services
		s.mu.RUnlock()
		next.ServeHTTP(w, r.WithContext(svcctx.WithServices(r.Context(), services)))
	})
}

// requireInit rejects requests until the converter is available.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ConverterFrom(r.Context()) == nil {
			http.Error(w, `{"error":"service not initialized"}`, http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	}
}

// withCORS allows cross-origin requests from any origin. The service is
// consumed by a browser front end hosted elsewhere.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
