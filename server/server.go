// Package server serves the record storage API used by the api backend.
package server

import (
	"context"
	"net/http"

	"github.com/apper-canvas/taskflow/internal/recordapi"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configures a Server
type Options struct {
	// APIKeyHash is the bcrypt hash of the accepted public key.
	// Empty leaves the record routes open.
	APIKeyHash string
	// ProjectID, when set, must match the X-Project-Id header.
	ProjectID string
}

// Server is the record API server
type Server struct {
	store store.Store
	opts  Options
	echo  *echo.Echo
}

// New creates a server over an open store
func New(st store.Store, opts Options) *Server {
	s := &Server{
		store: st,
		opts:  opts,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderContentType, recordapi.HeaderProjectID, recordapi.HeaderAPIKey},
	}))

	// Health check
	e.GET("/health", s.handleHealth)

	records := e.Group(recordapi.BasePath)
	records.Use(s.authMiddleware)

	tasks := records.Group("/" + recordapi.TableTasks)
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTasks)
	tasks.GET("/:id", s.handleGetTask)
	tasks.PATCH("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)

	categories := records.Group("/" + recordapi.TableCategories)
	categories.GET("", s.handleListCategories)
	categories.POST("", s.handleCreateCategories)
	categories.GET("/:id", s.handleGetCategory)
	categories.PATCH("/:id", s.handleUpdateCategory)
	categories.DELETE("/:id", s.handleDeleteCategory)

	s.echo = e
}

// Close closes the store
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
