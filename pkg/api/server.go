// Package api exposes the pricing engine over HTTP
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/craftquote/quote-engine/pkg/api/handlers"
	"github.com/craftquote/quote-engine/pkg/api/middleware"
)

// Server hosts the quote engine HTTP API
type Server struct {
	router *gin.Engine
	deps   *handlers.Deps
}

// NewServer builds the router with all routes and middleware registered
func NewServer(deps *handlers.Deps, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", deps.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/estimate", deps.Estimate)
		api.POST("/adjust", deps.Adjust)
		api.POST("/swap", deps.Swap)
		api.POST("/scenario", deps.Scenario)
		api.POST("/policy", deps.Policy)

		api.GET("/catalog/items", deps.CatalogItems)
		api.GET("/catalog/items/:id/replacements", deps.CatalogReplacements)
		api.GET("/catalog/categories", deps.CatalogCategories)
		api.GET("/catalog/component-types", deps.CatalogComponentTypes)

		api.POST("/versions", deps.SaveVersion)
		api.GET("/versions/:quotationID", deps.ListVersions)
	}

	return &Server{router: router, deps: deps}
}

// Router exposes the underlying gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully with a 10 second drain window.
func (s *Server) Run(port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", port).Info("Starting quote engine server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
