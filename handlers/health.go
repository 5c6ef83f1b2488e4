package handlers

import (
	"net/http"

	"roombooking/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the latest health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Hi, I'm the room booking service",
		"health":  utils.GetHealthStatus(),
	})
}
