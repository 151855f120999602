// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payment-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                     *gin.Engine
	healthController           *controller.HealthController
	authController             *controller.AuthController
	cardController             *controller.CardController
	serviceController          *controller.ServiceController
	scheduledPaymentController *controller.ScheduledPaymentController
	paymentController          *controller.PaymentController
	dashboardController        *controller.DashboardController
	externalCardController     *controller.ExternalCardController
	loginRateLimiter           *middleware.RateLimiter
	authMiddleware             *middleware.AuthMiddleware
	apiKeyMiddleware           *middleware.APIKeyMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	cardController *controller.CardController,
	serviceController *controller.ServiceController,
	scheduledPaymentController *controller.ScheduledPaymentController,
	paymentController *controller.PaymentController,
	dashboardController *controller.DashboardController,
	externalCardController *controller.ExternalCardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	apiKeyMiddleware *middleware.APIKeyMiddleware,
) *Router {
	return &Router{
		healthController:           healthController,
		authController:             authController,
		cardController:             cardController,
		serviceController:          serviceController,
		scheduledPaymentController: scheduledPaymentController,
		paymentController:          paymentController,
		dashboardController:        dashboardController,
		externalCardController:     externalCardController,
		loginRateLimiter:           loginRateLimiter,
		authMiddleware:             authMiddleware,
		apiKeyMiddleware:           apiKeyMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// The external integration expects 405 rather than 404 when it hits a
	// known path with the wrong verb.
	r.engine.HandleMethodNotAllowed = true
	r.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Card routes (require authentication)
		if r.cardController != nil && r.authMiddleware != nil {
			cards := v1.Group("/cards")
			cards.Use(r.authMiddleware.Authenticate())
			{
				cards.GET("", r.cardController.List)
				cards.POST("", r.cardController.Create)
				cards.PATCH("/:id", r.cardController.Update)
				cards.DELETE("/:id", r.cardController.Delete)
				cards.PATCH("/:id/credit", r.cardController.UpdateCredit)
			}
		}

		// Service routes (require authentication)
		if r.serviceController != nil && r.authMiddleware != nil {
			services := v1.Group("/services")
			services.Use(r.authMiddleware.Authenticate())
			{
				services.GET("", r.serviceController.List)
				services.POST("", r.serviceController.Create)
				services.PATCH("/:id", r.serviceController.Update)
				services.DELETE("/:id", r.serviceController.Delete)
				services.POST("/:id/lines", r.serviceController.AddLine)
				services.PATCH("/:id/lines/:lineId", r.serviceController.UpdateLine)
				services.DELETE("/:id/lines/:lineId", r.serviceController.RemoveLine)
			}
		}

		// Scheduled payment template routes (require authentication)
		if r.scheduledPaymentController != nil && r.authMiddleware != nil {
			templates := v1.Group("/scheduled-payments")
			templates.Use(r.authMiddleware.Authenticate())
			{
				templates.GET("", r.scheduledPaymentController.List)
				templates.POST("", r.scheduledPaymentController.Create)
				templates.PATCH("/:id", r.scheduledPaymentController.Update)
				templates.DELETE("/:id", r.scheduledPaymentController.Delete)
			}
		}

		// Payment instance routes (require authentication)
		if r.paymentController != nil && r.authMiddleware != nil {
			instances := v1.Group("/payment-instances")
			instances.Use(r.authMiddleware.Authenticate())
			{
				instances.GET("", r.paymentController.List)
				instances.POST("", r.paymentController.Create)
				instances.POST("/generate", r.paymentController.Generate)
				instances.POST("/:id/payments", r.paymentController.RegisterPayment)
				instances.POST("/:id/cancel", r.paymentController.Cancel)
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("", r.dashboardController.Get)
			}
		}

		// External integration routes (require the static API token)
		if r.externalCardController != nil && r.apiKeyMiddleware != nil {
			external := v1.Group("/external")
			external.Use(r.apiKeyMiddleware.Authenticate())
			{
				external.GET("/cards", r.externalCardController.ListCredit)
				external.PATCH("/cards/:cardId/credit", r.externalCardController.UpdateCredit)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
