package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recoveryoffice/utils"
)

// HealthHandler returns the latest collaborator health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
