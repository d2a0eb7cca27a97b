package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/api"
	"github.com/aptlinks/backend/internal/cache"
	"github.com/aptlinks/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a new server instance with all routes registered.
func New(cfg *config.Config, c cache.Cache) *Server {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, cfg, c)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
