package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and, when a database is configured, connectivity
func (d *Deps) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if d.DB != nil {
		if err := d.DB.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}
