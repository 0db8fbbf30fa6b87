// Package http provides the HTTP server and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	"github.com/allisson/accounts/internal/config"
	fileHTTP "github.com/allisson/accounts/internal/file/http"
	"github.com/allisson/accounts/internal/metrics"
	postHTTP "github.com/allisson/accounts/internal/post/http"
	userHTTP "github.com/allisson/accounts/internal/user/http"
)

// Server represents the API HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before
// Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig holds the handlers and middleware wired into the router.
type RouterConfig struct {
	Config          *config.Config
	AuthHandler     *authHTTP.AuthHandler
	UserHandler     *userHTTP.UserHandler
	PostHandler     *postHTTP.PostHandler
	FileHandler     *fileHTTP.FileHandler
	AuthnMiddleware gin.HandlerFunc
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the Gin router with all application routes.
func (s *Server) SetupRouter(routerCfg RouterConfig) {
	cfg := routerCfg.Config
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && routerCfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			routerCfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")

	// Authentication
	auth := v1.Group("/auth")
	if cfg.RateLimitLoginEnabled {
		auth.Use(authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	auth.POST("/login", routerCfg.AuthHandler.LoginHandler)

	// Users: deletion is admin-only, the rest of the surface is public
	users := v1.Group("/users")
	users.POST("", routerCfg.UserHandler.RegisterUserHandler)
	users.GET("", routerCfg.UserHandler.ListUsersHandler)
	users.GET("/:id", routerCfg.UserHandler.GetUserHandler)
	users.PUT("/:id", routerCfg.UserHandler.UpdateUserHandler)
	usersAdmin := v1.Group("/users")
	usersAdmin.Use(routerCfg.AuthnMiddleware, authHTTP.AdminRequiredMiddleware(s.logger))
	usersAdmin.DELETE("/:id", routerCfg.UserHandler.DeleteUserHandler)

	// Posts: reads are public, mutations require authentication
	posts := v1.Group("/posts")
	posts.GET("", routerCfg.PostHandler.ListPostsHandler)
	posts.GET("/:id", routerCfg.PostHandler.GetPostHandler)
	postsAuth := v1.Group("/posts")
	postsAuth.Use(routerCfg.AuthnMiddleware)
	postsAuth.POST("", routerCfg.PostHandler.CreatePostHandler)
	postsAuth.PUT("/:id", routerCfg.PostHandler.UpdatePostHandler)
	postsAuth.DELETE("/:id", routerCfg.PostHandler.DeletePostHandler)

	// Files: downloads are public, everything else requires authentication
	files := v1.Group("/files")
	files.GET("/:filename", routerCfg.FileHandler.DownloadFileHandler)
	filesAuth := v1.Group("/files")
	filesAuth.Use(routerCfg.AuthnMiddleware)
	filesAuth.POST("/upload", routerCfg.FileHandler.UploadFileHandler)
	filesAuth.GET("", routerCfg.FileHandler.ListFilesHandler)
	filesAuth.DELETE("/:filename", routerCfg.FileHandler.DeleteFileHandler)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, checking the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("database ping failed", "error", err)
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
