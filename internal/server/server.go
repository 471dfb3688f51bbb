// Package server configures the HTTP server and routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
	"github.com/fleveque/therapist-finder/internal/handler"
	"github.com/fleveque/therapist-finder/internal/shell"
)

// Deps holds what the handlers need. main builds these and passes them in.
type Deps struct {
	Finder   shell.Finder
	Provider string
	Model    string
}

// Server wraps the HTTP server and its router.
// The usual Go shape: a struct holding every piece the server needs, wired
// together once in New.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

// New creates and configures a new Server.
func New(cfg *config.Config, deps Deps, logger *zap.Logger) (*Server, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// gin trusts every proxy out of the box, which would let any client pick
	// its own ClientIP (and so its own rate-limit bucket) via X-Forwarded-For.
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	// Recovery turns a handler panic into a 500 instead of killing the process.
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.SetHTMLTemplate(handler.Templates())

	RegisterRoutes(router, cfg, deps, logger)

	s := &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			// A search waits on the completion backend, so leave room for a slow model
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return s, nil
}

// Start begins listening for HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("address", s.cfg.Server.Address()))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight searches.
// context.Context carries the deadline: when it expires, Shutdown gives up.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}

// Router returns the underlying Gin engine (useful for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
