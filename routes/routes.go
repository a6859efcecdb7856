package routes

import (
	"net/http"
	"time"

	"cocoti/handlers"
	"cocoti/middleware"
	"cocoti/services/session"
	"cocoti/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AdminLoginPath is where the gate sends unauthenticated page requests.
const AdminLoginPath = "/admin/login"

// RegisterLegalRoutes registers the public legal-document endpoints.
func RegisterLegalRoutes(r *gin.Engine, lh *handlers.LegalHandler) {
	api := r.Group("/api/legal")
	{
		api.GET("/:locale/:doc", lh.GetDocumentHandler)
	}
}

// RegisterContentRoutes registers the public page-copy read endpoints.
func RegisterContentRoutes(r *gin.Engine, ch *handlers.ContentHandler) {
	api := r.Group("/api/content")
	{
		api.GET("/:locale", ch.ListPagesHandler)
		api.GET("/:locale/:page", ch.GetPageHandler)
	}
}

// RegisterAdminRoutes registers the admin auth endpoints and the gated CMS
// write endpoints.
func RegisterAdminRoutes(r *gin.Engine, ah *handlers.AdminAuthHandler, ch *handlers.ContentHandler, mgr session.Manager) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", ah.LoginHandler)
		api.POST("/refresh", ah.RefreshHandler)
		api.POST("/logout", ah.LogoutHandler)
		api.GET("/session", ah.SessionHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.AdminGate(mgr, AdminLoginPath))
		protected.GET("/me", ah.MeHandler)
		protected.PUT("/content/:locale/:page", ch.UpdatePageHandler)
	}
}

// RegisterPaymentRoutes registers the payment-provider return endpoint.
func RegisterPaymentRoutes(r *gin.Engine) {
	r.GET("/payment/return", handlers.PaymentReturnHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Cocoti", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, lh *handlers.LegalHandler, ch *handlers.ContentHandler, ah *handlers.AdminAuthHandler, mgr session.Manager) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterLegalRoutes(r, lh)
	RegisterContentRoutes(r, ch)
	RegisterAdminRoutes(r, ah, ch, mgr)
	RegisterPaymentRoutes(r)
	RegisterHealthRoute(r)
}
