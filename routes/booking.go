package routes

import (
	"clinicore/middleware"
	"clinicore/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking workflow.
// Availability, reservation and payment confirmation are public so guests
// can book; committed-appointment operations require authentication.
func RegisterBookingRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/booking")
	{
		api.GET("/availability/:doctorID", middleware.OptionalJWTAuth(), h.Booking.GetAvailability)
		api.POST("/reserve", middleware.OptionalJWTAuth(), h.Booking.Reserve)
		api.POST("/confirm", h.Booking.ConfirmPayment)
		api.GET("/orders/:orderID", h.Booking.GetOrder)
		api.POST("/appointments/:id/cancel", h.Booking.CancelAppointment)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/appointments/mine", h.Booking.ListMyAppointments)

		staff := api.Group("")
		staff.Use(middleware.JWTAuthMiddleware())
		staff.Use(middleware.RequireRoles(models.RoleDoctor, models.RoleNurse, models.RoleAdmin))
		staff.GET("/doctors/:doctorID/appointments", h.Booking.ListDoctorDay)
		staff.POST("/appointments/:id/complete", h.Booking.CompleteAppointment)
	}
}
