package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abcall/clients/internal/api/dto"
	"github.com/abcall/clients/internal/api/handler"
	"github.com/abcall/clients/internal/api/middleware"
	"github.com/abcall/clients/internal/core/service"
	"github.com/abcall/clients/internal/infrastructure/metrics"
	"github.com/abcall/clients/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authService *service.AuthService,
	bus handler.Dispatcher,
	gatherer prometheus.Gatherer,
) (*Server, error) {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	clientHandler := handler.NewClientHandler(bus, logger)

	authenticated := middleware.AuthMiddleware(authService)
	privileged := middleware.RequireRole(authService)

	// Clients (superadmin only)
	router.GET("/clients", authenticated, privileged, clientHandler.ListClients)

	client := router.Group("/client")
	client.Use(authenticated)
	{
		// Any authenticated user may look up their own client
		client.GET("/my", clientHandler.MyClient)

		client.POST("", privileged, clientHandler.CreateClient)
		client.GET("/:client_id", privileged, clientHandler.GetClient)
		client.PUT("/:client_id", privileged, clientHandler.UpdateClient)
		client.DELETE("/:client_id", privileged, clientHandler.DeleteClient)
	}

	// Public routes (no auth required)
	router.GET("/clients/short", clientHandler.ListClientsShort)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
