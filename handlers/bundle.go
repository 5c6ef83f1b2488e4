// File: handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	// Booking endpoints
	SubmitBooking gin.HandlerFunc
	ListBookings  gin.HandlerFunc
	GetCatalog    gin.HandlerFunc

	// Health endpoint
	Health gin.HandlerFunc
}
