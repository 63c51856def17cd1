package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketplace-gateway/backend"
	"marketplace-gateway/config"
	"marketplace-gateway/jobs"
	"marketplace-gateway/middleware"
	"marketplace-gateway/routes"
	"marketplace-gateway/services"
	"marketplace-gateway/utils"
	ws "marketplace-gateway/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()
	cfg := config.AppConfig

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backend API client and geocoder (the only external collaborators)
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	geocoder := utils.NewGeocoder(cfg.Geocode.BaseURL, cfg.Geocode.Timeout)

	// WebSocket hub for pushing workflow events to the UI
	hub := ws.NewHub()
	go hub.Run()

	// Workflow services
	dashboardService := services.NewDashboardService(backendClient, hub, cfg.Payments.CheckoutBaseURL)
	requestService := services.NewRequestService(backendClient)
	chatService := services.NewChatService(backendClient, hub, cfg.Polling.ChatInterval, cfg.Backend.Timeout)
	notificationService := services.NewNotificationService(backendClient)

	// New-quote watcher polls the backend for every watched client
	quoteWatcher := jobs.NewQuoteWatcher(backendClient, hub, cfg.Polling.QuoteInterval, cfg.Backend.Timeout)
	quoteWatcher.Start()
	defer quoteWatcher.Stop()

	routes.Init(routes.Dependencies{
		Backend:       backendClient,
		Dashboard:     dashboardService,
		Requests:      requestService,
		Chat:          chatService,
		Notifications: notificationService,
		Watcher:       quoteWatcher,
		Geocoder:      geocoder,
		Hub:           hub,
	})

	// Create router
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Marketplace Workflow Gateway is running",
			"time":    time.Now().UTC(),
		})
	})

	// Chat routes carry their own auth middleware (WebSocket upgrade uses a
	// query-string token)
	routes.ChatRoutes(router)

	// API routes
	api := router.Group("/api/v1")
	{
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterDashboardRoutes(protected)
			routes.RegisterServiceRequestRoutes(protected)
			routes.RegisterProfileRoutes(protected)

			locationRoutes := protected.Group("/location")
			routes.RegisterLocationRoutes(locationRoutes)

			notifications := api.Group("/notifications")
			notifications.Use(middleware.AuthMiddleware())
			routes.RegisterNotificationRoutes(notifications)
		}
	}

	// Periodically drop idle rate limiters
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			middleware.CleanupRateLimiters()
		}
	}()

	port := cfg.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
