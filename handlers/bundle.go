package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.RegisterRoutes.
type HandlerBundle struct {
	// Root endpoint
	RootHandler gin.HandlerFunc

	// Status check endpoints
	CreateStatusCheckHandler gin.HandlerFunc
	GetStatusChecksHandler   gin.HandlerFunc

	// Booking endpoints
	SendBookingHandler    gin.HandlerFunc
	GetBookingsHandler    gin.HandlerFunc
	GetBookedSlotsHandler gin.HandlerFunc
	TestEmailHandler      gin.HandlerFunc

	// Operations
	HealthHandler gin.HandlerFunc
}
