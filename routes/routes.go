package routes

import (
	"time"

	"ingcap/config"
	"ingcap/handlers"
	"ingcap/metrics"
	"ingcap/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the public API consumed by the website.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg *config.Config) {
	api := r.Group("/api")
	{
		api.GET("/", hb.RootHandler)
		api.POST("/status", hb.CreateStatusCheckHandler)
		api.GET("/status", hb.GetStatusChecksHandler)

		api.POST("/send-booking", middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin), hb.SendBookingHandler)
		api.GET("/booked-slots/:date", hb.GetBookedSlotsHandler)
		api.GET("/test-email", hb.TestEmailHandler)

		// The admin listing is open unless ADMIN_JWT_SECRET is set.
		api.GET("/bookings", middleware.JWTAuthAdminMiddleware(cfg.AdminJWTSecret), hb.GetBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// RegisterRoutes applies CORS and registers every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg *config.Config) {
	r.Use(corsMiddleware(cfg.AllowedOrigins()))

	RegisterBookingRoutes(r, hb, cfg)
	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		// Credentials cannot be combined with a wildcard origin.
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
