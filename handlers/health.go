package handlers

import (
	"net/http"

	"dreamhi/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the latest dependency snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	message := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		message = "degraded"
	}
	respond(c, code, message, status)
}
