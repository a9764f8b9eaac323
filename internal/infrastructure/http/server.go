package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/audit-service/internal/adapter/handler/http"
	"github.com/wekeepgrowing/audit-service/internal/config"
	"github.com/wekeepgrowing/audit-service/internal/infrastructure/database"
	"github.com/wekeepgrowing/audit-service/internal/infrastructure/provider/openrouter"
	"github.com/wekeepgrowing/audit-service/internal/infrastructure/provider/supabase"
	"github.com/wekeepgrowing/audit-service/internal/middleware/auth"
	"github.com/wekeepgrowing/audit-service/internal/usecase"
	"github.com/wekeepgrowing/audit-service/pkg/logger"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize providers
	summaryProvider := openrouter.NewClient(s.config.Service.OpenRouter, s.logger)
	authProvider := supabase.NewAuthClient(s.config.Service.Supabase, s.logger)

	// Initialize usecases and handlers
	auditService := usecase.NewAuditService(s.repos.Audit, s.logger)
	summaryService := usecase.NewSummaryService(summaryProvider, s.logger)

	auditHandler := handlers.NewAuditHandler(auditService, s.logger)
	summaryHandler := handlers.NewSummaryHandler(summaryService, s.logger)
	authHandler := handlers.NewAuthHandler(authProvider, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Supabase.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes delegate to the hosted auth service (no JWT required)
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.GET("/session", authHandler.Session)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	audits := protected.Group("/audits")
	audits.POST("", auditHandler.CreateAudit)
	audits.GET("", auditHandler.ListAudits)
	audits.POST("/generate-summary", summaryHandler.GenerateSummary)
	audits.GET("/:id", auditHandler.GetAudit)
	audits.PATCH("/:id", auditHandler.UpdateAudit)
	audits.DELETE("/:id", auditHandler.DeleteAudit)
	audits.POST("/:id/approve", auditHandler.ApproveAudit)
}
