package routes

import (
	"net/http"
	"time"

	"clinicore/handlers"
	"clinicore/middleware"
	"clinicore/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers so route registration takes one
// argument per group.
type Handlers struct {
	Booking      *handlers.BookingHandler
	Schedule     *handlers.ScheduleHandler
	Notification *handlers.NotificationHandler
}

// SetupRoutes wires CORS and every endpoint group onto the engine.
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, h)
	RegisterScheduleRoutes(r, h)
	RegisterNotificationRoutes(r, h)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterScheduleRoutes registers the doctor schedule endpoints. All of
// them operate on the authenticated doctor's own schedule.
func RegisterScheduleRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/schedules")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin))
		api.GET("", h.Schedule.List)
		api.PUT("", h.Schedule.Upsert)
		api.PATCH("/:weekday/availability", h.Schedule.SetAvailability)
	}
}

// RegisterNotificationRoutes registers the pull endpoint and the live
// stream.
func RegisterNotificationRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", h.Notification.List)
		api.POST("/read", h.Notification.MarkAllRead)
		api.GET("/stream", h.Notification.Stream)
	}
}
