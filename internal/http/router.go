package http

import (
	"html/template"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/libris/internal/auth"
	"github.com/avolkov/libris/internal/database"
)

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Catalog        CatalogStore
	Reservations   ReservationStore
	Database       *database.Database
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	TemplatesPath  string
	StaticPath     string
	Version        string
	CSRFSecret     []byte
	SecureCookies  bool
}

// NewRouter creates the Gin engine with all middleware and routes
// configured.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Load HTML templates; tests run without them. A configured path
	// that fails to parse is a wiring error, not a condition to limp
	// through with JSON fallbacks on every page.
	if cfg.TemplatesPath != "" {
		tmpl, err := template.ParseGlob(cfg.TemplatesPath + "/*.html")
		if err != nil {
			log.Fatalf("Failed to load templates from %s: %v", cfg.TemplatesPath, err)
		}
		router.SetHTMLTemplate(tmpl)
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	var authController *auth.AuthController
	if cfg.AuthService != nil {
		authController = auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath)
		authController.RegisterRoutes(router)
	}

	// Catalog routes, open to any visitor
	catalogController := NewCatalogController(cfg.Catalog)
	router.GET("/", catalogController.SearchPage)
	router.POST("/", catalogController.Search)
	router.GET("/add", catalogController.AddPage)
	router.POST("/add", catalogController.AddBook)
	router.GET("/remove", catalogController.RemovePage)
	router.POST("/remove", catalogController.RemoveSearch)
	router.GET("/remove/:id", catalogController.RemoveBook)

	// Session-gated routes
	dashboardController := NewDashboardController(cfg.Reservations)
	gated := router.Group("/")
	if cfg.AuthMiddleware != nil {
		gated.Use(cfg.AuthMiddleware.RequireAuth())
	}
	gated.GET("/dashboard", dashboardController.Dashboard)
	gated.GET("/borrow/:id", dashboardController.Borrow)
	gated.POST("/borrow/:id", dashboardController.Borrow)
	gated.GET("/return/:id", dashboardController.Return)
	gated.POST("/return/:id", dashboardController.Return)
	if authController != nil {
		gated.GET("/logout", authController.Logout)
	}

	return router
}
