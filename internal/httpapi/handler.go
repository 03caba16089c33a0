package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hidroalerta/floodcore/internal/coordinator"
)

// Handler serves the read-only snapshot API.
type Handler struct {
	coord *coordinator.Coordinator
}

// NewHandler creates a new HTTP handler bound to a coordinator.
func NewHandler(coord *coordinator.Coordinator) *Handler {
	return &Handler{coord: coord}
}

// GetSnapshot handles GET /v1/snapshot: the full latest cycle result.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap := h.coord.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle has completed yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetAlerts handles GET /v1/alerts: just the active, severity-ordered
// alert list from the latest cycle.
func (h *Handler) GetAlerts(c *gin.Context) {
	snap := h.coord.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle has completed yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": snap.Alerts})
}

// GetBasin handles GET /v1/basins/:id: one basin's result or validation
// error from the latest cycle.
func (h *Handler) GetBasin(c *gin.Context) {
	snap := h.coord.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no cycle has completed yet"})
		return
	}

	id := c.Param("id")
	if result, ok := snap.Results[id]; ok {
		c.JSON(http.StatusOK, result)
		return
	}
	if basinErr, ok := snap.Errors[id]; ok {
		c.JSON(http.StatusUnprocessableEntity, basinErr)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown basin id: " + id})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
