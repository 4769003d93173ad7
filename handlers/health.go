package handlers

import (
	"net/http"
	"time"

	"roomapp/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health. The endpoint answers as long as the
// process is up; collaborator reachability rides along from the background
// monitor snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  utils.GetHealthStatus(),
	})
}
