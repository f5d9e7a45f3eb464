package routes

import (
	"time"

	"dreamhi/handlers"
	"dreamhi/middleware"
	"dreamhi/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuditionRoutes registers the booking endpoints of an announcement's
// audition processes.
func RegisterAuditionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/announcements/:announcementId/audition")
	api.Use(middleware.JWTAuthMiddleware(hb.Revocations, hb.Logger))
	{
		h := hb.AuditionHandler
		on := api.Group("/on/:processId")
		on.GET("/period", h.FindBookPeriod)
		on.PATCH("/period", h.CorrectBookPeriod)
		on.GET("/schedules", h.FindAllBook)
		on.POST("/schedules", h.ReserveSlot)
		on.GET("/schedules/mine", h.FindMyBook)
		on.DELETE("/schedules/:bookingId", h.CancelBook)
		on.GET("/file", h.FindFileURL)
		on.GET("/session", h.FindSessionID)
		on.POST("", h.SaveSession)
	}
}

// RegisterUserRoutes registers endpoints scoped to the caller.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.Revocations, hb.Logger)

	r.GET("/api/notifications", auth, hb.NotificationHandler.ListMine)
	r.POST("/api/auth/logout", auth, hb.AuthHandler.Logout)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(handlers.RequestLogger(hb.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin, hb.Logger))

	RegisterHealthRoute(r)
	RegisterAuditionRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
