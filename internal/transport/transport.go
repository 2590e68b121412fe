package transport

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/transport/middleware"
)

func InitRoutes(bookingHandler *BookingHandler, timeout time.Duration) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(timeout))

	api := router.Group("/api/v1")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingHandler.AddBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:name", bookingHandler.GetBooking)
			bookings.PATCH("/:name", bookingHandler.UpdateBooking)
			bookings.DELETE("/:name", bookingHandler.Checkout)
			bookings.POST("/:name/feedback", bookingHandler.LeaveFeedback)
		}

		api.GET("/search", bookingHandler.SearchBookings)
		api.GET("/revenue", bookingHandler.CalculateRevenue)
		api.GET("/feedback", bookingHandler.ViewFeedback)
		api.POST("/export", bookingHandler.ExportCSV)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "hotel-accounting-system",
		})
	})

	return router
}
