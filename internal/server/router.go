package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/http/handlers"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/http/middleware"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	AllowOrigins        []string
	AuthMiddleware      *middleware.AuthMiddleware
	HealthHandler       *handlers.HealthHandler
	ProfileHandler      *handlers.ProfileHandler
	CampaignHandler     *handlers.CampaignHandler
	ApplicationHandler  *handlers.ApplicationHandler
	DeliveryHandler     *handlers.DeliveryHandler
	AdminHandler        *handlers.AdminHandler
	BillingHandler      *handlers.BillingHandler
	NotificationHandler *handlers.NotificationHandler
	MissionHandler      *handlers.MissionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("ponty-conecta"))
	router.Use(middleware.RequestLogger(cfg.Log))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/api/billing/webhook", cfg.BillingHandler.Webhook)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Profile
	api.POST("/profile/select", cfg.ProfileHandler.Select)
	api.GET("/profile/me", cfg.ProfileHandler.Me)
	api.PATCH("/profile", cfg.ProfileHandler.Update)
	api.POST("/profile/onboarding/step", cfg.ProfileHandler.OnboardingStep)
	api.POST("/profile/onboarding/finalize", cfg.ProfileHandler.Finalize)
	api.POST("/profile/switch", cfg.ProfileHandler.Switch)

	// Campaigns
	api.POST("/campaigns", cfg.CampaignHandler.Create)
	api.GET("/campaigns", cfg.CampaignHandler.List)
	api.PATCH("/campaigns/:id", cfg.CampaignHandler.Update)
	api.POST("/campaigns/:id/status", cfg.CampaignHandler.ChangeStatus)

	// Applications
	api.POST("/applications", cfg.ApplicationHandler.Apply)
	api.GET("/applications", cfg.ApplicationHandler.List)
	api.POST("/applications/:id/manage", cfg.ApplicationHandler.Manage)

	// Deliveries
	api.GET("/deliveries", cfg.DeliveryHandler.List)
	api.POST("/deliveries/:id/submit", cfg.DeliveryHandler.Submit)
	api.POST("/deliveries/:id/contest", cfg.DeliveryHandler.Contest)
	api.POST("/deliveries/:id/review", cfg.DeliveryHandler.Review)

	// Billing
	api.POST("/billing/checkout", cfg.BillingHandler.Checkout)
	api.POST("/billing/portal", cfg.BillingHandler.Portal)

	// Notifications and missions
	api.GET("/notifications", cfg.NotificationHandler.List)
	api.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
	api.POST("/notifications/:id/dismiss", cfg.NotificationHandler.Dismiss)
	api.GET("/missions", cfg.MissionHandler.List)

	// Admin
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.POST("/users/:id/role", cfg.AdminHandler.ChangeUserRole)
	admin.PATCH("/profiles/:id", cfg.AdminHandler.UpdateProfile)
	admin.POST("/disputes/:id/resolve", cfg.AdminHandler.ResolveDispute)
	admin.GET("/audit", cfg.AdminHandler.ListAudit)

	return router
}
