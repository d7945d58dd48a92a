package routes

import (
	"net/http"
	"time"

	"farehub/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRideRoutes registers the ride intake and polling endpoints.
func RegisterRideRoutes(r *gin.Engine, h *handlers.RideHandler) {
	api := r.Group("/api/rides")
	{
		api.POST("/request", h.RequestRideHandler)
		api.GET("/booking/:id", h.GetBookingHandler)
		api.POST("/provider/webhook", h.ProviderWebhookHandler)
	}
}

// RegisterHealthRoute exposes a liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.RideHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRideRoutes(r, h)
	RegisterHealthRoute(r)
}
