package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hidroalerta/floodcore/internal/coordinator"
	"github.com/hidroalerta/floodcore/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthCheckReturnsOK(t *testing.T) {
	coord := coordinator.New(nil, nil)
	handler := NewHandler(coord)

	router := gin.New()
	router.GET("/healthz", handler.HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetSnapshotBeforeFirstCycleReturns503(t *testing.T) {
	coord := coordinator.New(nil, nil)
	handler := NewHandler(coord)

	router := gin.New()
	router.GET("/v1/snapshot", handler.GetSnapshot)

	req := httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestGetBasinReturnsResultAfterCycle(t *testing.T) {
	basin := domain.Basin{
		ID:      "b1",
		AreaKM2: 80,
		Bounds:  domain.Bounds{North: 40.2, South: 40.0, East: -3.3, West: -3.7},
		Thresholds: domain.Thresholds{Yellow: 50, Orange: 150, Red: 300},
	}
	coord := coordinator.New([]domain.Basin{basin}, nil)
	coord.RunCycle(context.Background(), map[string]domain.Station{}, nil, time.Now())

	handler := NewHandler(coord)
	router := gin.New()
	router.GET("/v1/basins/:id", handler.GetBasin)

	req := httptest.NewRequest(http.MethodGet, "/v1/basins/b1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodGet, "/v1/basins/unknown", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown basin, got %d", rec2.Code)
	}
}
