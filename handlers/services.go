package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recoveryoffice/services/catalog"
)

// ServicesHandler serves the bookable-service catalog.
type ServicesHandler struct {
	Catalog *catalog.Cache
	Logger  *zap.Logger
}

// NewServicesHandler assembles the catalog handler.
func NewServicesHandler(cat *catalog.Cache, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{Catalog: cat, Logger: logger}
}

// ListServices returns the current catalog. The mode field tells consumers
// whether they are looking at live data or the built-in fallback list.
func (h *ServicesHandler) ListServices(c *gin.Context) {
	entries, mode := h.Catalog.Load(c.Request.Context())
	c.Header("X-Catalog-Mode", string(mode))
	c.JSON(http.StatusOK, gin.H{
		"services": entries,
		"mode":     mode,
	})
}
