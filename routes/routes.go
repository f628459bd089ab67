package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recoveryoffice/config"
	"recoveryoffice/handlers"
)

// RegisterRoutes registers all endpoints and global middleware of the
// booking wizard service.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, servicesHandler *handlers.ServicesHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.AppConfig.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Catalog-Mode"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)
	r.GET("/api/services", servicesHandler.ListServices)

	session := r.Group("/api/booking/session")
	{
		session.POST("", bookingHandler.CreateSession)
		session.GET("/:sessionID", bookingHandler.GetSession)
		session.PUT("/:sessionID/service", bookingHandler.SelectService)
		session.PUT("/:sessionID/schedule", bookingHandler.SelectSchedule)
		session.PUT("/:sessionID/client", bookingHandler.SetClientInfo)
		session.PUT("/:sessionID/step", bookingHandler.SetStep)
		session.POST("/:sessionID/submit", bookingHandler.Submit)
		session.DELETE("/:sessionID", bookingHandler.CancelSession)
	}
}
