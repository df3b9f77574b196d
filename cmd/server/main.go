package main

import (
	"log"
	"time"

	"legaldocs_api_go/config"
	"legaldocs_api_go/db"
	"legaldocs_api_go/handlers"
	"legaldocs_api_go/middleware"
	"legaldocs_api_go/models"
	"legaldocs_api_go/services"
	"legaldocs_api_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.Case{},
		&models.Document{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 with local fallback)
	services.InitializeStorage(cfg)

	handlers.InitSearchService()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/auth/register", handlers.RegisterHandler, middleware.RegisterRateLimiter.Middleware())
	e.POST("/api/auth/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/auth/logout", handlers.LogoutHandler)
		api.GET("/auth/me", handlers.MeHandler)
		api.GET("/profile", handlers.GetProfileHandler)
		api.PATCH("/profile", handlers.UpdateProfileHandler)

		api.GET("/clients", handlers.ListClientsHandler)
		api.POST("/clients", handlers.CreateClientHandler)
		api.GET("/clients/:id", handlers.GetClientHandler)
		api.PATCH("/clients/:id", handlers.UpdateClientHandler)
		api.DELETE("/clients/:id", handlers.DeleteClientHandler)
		api.GET("/clients/:id/cases", handlers.GetClientCasesHandler)

		api.GET("/cases", handlers.ListCasesHandler)
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases/statistics", handlers.CaseStatisticsHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PATCH("/cases/:id", handlers.UpdateCaseHandler)
		api.POST("/cases/:id/close", handlers.CloseCaseHandler)
		api.GET("/cases/:id/summary.pdf", handlers.CaseSummaryPDFHandler)

		api.GET("/documents", handlers.ListDocumentsHandler)
		api.POST("/documents", handlers.CreateDocumentHandler)
		api.GET("/documents/:id", handlers.GetDocumentHandler)
		api.PATCH("/documents/:id", handlers.UpdateDocumentHandler)
		api.DELETE("/documents/:id", handlers.DeleteDocumentHandler)
		api.GET("/documents/:id/download", handlers.DownloadDocumentHandler)

		api.GET("/dashboard", handlers.DashboardHandler)
		api.GET("/search", handlers.SearchHandler)

		// Staff-only routes
		staff := api.Group("")
		staff.Use(middleware.RequireStaff())
		{
			staff.DELETE("/cases/:id", handlers.DeleteCaseHandler)
			staff.GET("/reports/cases", handlers.ExportCasesHandler)
		}
	}

	// Background jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
			jobs.SendDeadlineReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
