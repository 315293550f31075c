package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
	"github.com/soletrade/admin/web"
)

const loginPath = "/login"

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules      []Module // resource modules, behind the guard when enabled
	AuthModule   Module   // sign-in routes, never guarded
	DB           *gorm.DB
	Mode         string // "debug" or "release"
	CSRFSecret   string
	GuardEnabled bool
}

// RegisterRoutes registers all application routes on the given gin.Engine.
//
// When GuardEnabled is set, resource routes require a resolved session:
// unauthenticated API requests get a 401 JSON envelope and unauthenticated
// page requests redirect to /login with the original path preserved. Auth
// routes stay open either way so sign-in itself is always reachable.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.AuthModule == nil {
		return errors.New("auth module is required")
	}
	if strings.TrimSpace(deps.CSRFSecret) == "" {
		return errors.New("csrf secret is required")
	}

	// Static assets
	if err := registerStaticRoutesWithError(r, deps.Mode); err != nil {
		return fmt.Errorf("register static routes: %w", err)
	}

	// Health check
	r.GET("/health", healthHandler(deps.DB))

	// The console has no standalone home page.
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// API routes. CSRF is cookie-form bound, so only page routes carry it.
	api := r.Group("/api/v1")

	pages := r.Group("/")
	pages.Use(middleware.CSRF(deps.CSRFSecret))

	// Sign-in routes stay outside the guard.
	deps.AuthModule.RegisterRoutes(api, pages)

	if deps.GuardEnabled {
		guard := middleware.RequireSession(loginPath)
		api = api.Group("")
		api.Use(guard)
		pages = pages.Group("")
		pages.Use(guard)
	}

	// Register resource module routes.
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api, pages)
	}

	// Unknown API paths get a JSON 404; unknown page paths land on the dashboard.
	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that pings the database and reports status.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		status := "ok"
		code := http.StatusOK

		if db == nil {
			dbStatus = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
			c.JSON(code, gin.H{
				"status": status,
				"components": gin.H{
					"database": dbStatus,
				},
			})
			return
		}

		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
			if err != nil {
				dbStatus = "error"
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status": status,
			"components": gin.H{
				"database": dbStatus,
			},
		})
	}
}

// noRouteHandler returns a handler that redirects browsers to the dashboard
// and returns a JSON 404 for API clients.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
			return
		}
		if acceptsHTML(c) {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}

		renderError(c, http.StatusNotFound, "not found")
	}
}

func registerStaticRoutesWithError(r *gin.Engine, mode string) error {
	if mode == "debug" {
		debugStaticFS, err := resolveDebugStaticFS()
		if err != nil {
			return fmt.Errorf("resolve debug static filesystem: %w", err)
		}
		fileServer := http.StripPrefix("/static", http.FileServer(http.FS(debugStaticFS)))
		r.GET("/static/*filepath", func(c *gin.Context) {
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
		return nil
	}

	// Release mode: serve from embed.FS with cache headers.
	staticFS, err := fs.Sub(web.EmbeddedFS, "static")
	if err != nil {
		return fmt.Errorf("create sub filesystem for static assets: %w", err)
	}
	r.GET("/static/*filepath", cacheStaticHandler(http.FS(staticFS)))
	return nil
}

func resolveDebugStaticFS() (fs.FS, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("resolve current file path")
	}

	projectRoot := filepath.Clean(filepath.Join(filepath.Dir(currentFile), "..", ".."))
	staticDir := filepath.Join(projectRoot, "web", "static")
	if _, err := os.Stat(staticDir); err != nil {
		return nil, fmt.Errorf("stat static directory %q: %w", staticDir, err)
	}

	return os.DirFS(staticDir), nil
}

// cacheStaticHandler wraps an http.FileSystem handler and sets a Cache-Control
// header for release mode static assets.
func cacheStaticHandler(fsys http.FileSystem) gin.HandlerFunc {
	fileServer := http.StripPrefix("/static", http.FileServer(fsys))
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
