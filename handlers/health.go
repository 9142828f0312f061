package handlers

import (
	"net/http"

	"ingcap/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency snapshot. It answers 503 while the
// store is unreachable so load balancers can drain the instance.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := monitor.Status()
		if !snapshot.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": snapshot})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": snapshot})
	}
}
