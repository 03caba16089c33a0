// Package httpapi exposes the coordinator's published snapshot over a
// read-only Gin HTTP surface, plus the Prometheus scrape endpoint and the
// WebSocket push upgrade.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hidroalerta/floodcore/internal/coordinator"
	"github.com/hidroalerta/floodcore/internal/push"
)

// SetupRouter wires the read-only API, the metrics endpoint and the
// WebSocket hub into a Gin engine.
func SetupRouter(coord *coordinator.Coordinator, hub *push.Hub) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	handler := NewHandler(coord)

	v1 := router.Group("/v1")
	{
		v1.GET("/snapshot", handler.GetSnapshot)
		v1.GET("/alerts", handler.GetAlerts)
		v1.GET("/basins/:id", handler.GetBasin)
	}

	router.GET("/healthz", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/v1/stream", gin.WrapH(hub))

	return router
}
