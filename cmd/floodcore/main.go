// Package main provides the flood early-warning coordinator binary: it
// loads the basin catalogue, runs the pipeline on a fixed interval, and
// exposes the result over a read-only HTTP API and a WebSocket push feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hidroalerta/floodcore/internal/catalog"
	"github.com/hidroalerta/floodcore/internal/coordinator"
	"github.com/hidroalerta/floodcore/internal/domain"
	"github.com/hidroalerta/floodcore/internal/httpapi"
	"github.com/hidroalerta/floodcore/internal/ingest"
	"github.com/hidroalerta/floodcore/internal/push"
)

const version = "0.1.0"

func main() {
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("floodcore version %s\n", version)
		return
	}

	port := getEnv("PORT", "8080")
	catalogPath := getEnv("CATALOG_PATH", "./data/basins.toml")
	stationFeedPath := getEnv("STATION_FEED_PATH", "")
	radarFeedPath := getEnv("RADAR_FEED_PATH", "")
	aemetAPIKey := getEnv("AEMET_API_KEY", "")
	cycleInterval := getEnvDuration("CYCLE_INTERVAL", 5*time.Minute)

	log.Printf("Starting floodcore coordinator...")
	log.Printf("Port: %s", port)
	log.Printf("Basin catalogue: %s", catalogPath)
	log.Printf("Cycle interval: %s", cycleInterval)
	if aemetAPIKey == "" {
		log.Printf("AEMET_API_KEY not set: radar disabled, running gauge-only")
	} else {
		log.Printf("Radar enabled via AEMET_API_KEY")
	}

	basins, err := catalog.Load(catalogPath)
	if err != nil {
		log.Fatalf("Failed to load basin catalogue: %v", err)
	}
	log.Printf("Loaded %d basins", len(basins))

	coord := coordinator.New(basins, prometheus.DefaultRegisterer)
	hub := push.NewHub()
	coord.Subscribe(func(snap domain.Snapshot) {
		hub.Broadcast(snap)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetch := func(ctx context.Context) (map[string]domain.Station, []domain.RadarPixel, error) {
		stations, err := ingest.LoadStationFeed(stationFeedPath)
		if err != nil {
			return nil, nil, err
		}
		if aemetAPIKey == "" {
			return stations, nil, nil
		}
		radarGrid, err := ingest.LoadRadarFeed(radarFeedPath)
		if err != nil {
			return nil, nil, err
		}
		return stations, radarGrid, nil
	}

	go coord.Run(ctx, cycleInterval, fetch)

	router := httpapi.SetupRouter(coord, hub)
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("  - GET  /healthz")
	log.Printf("  - GET  /v1/snapshot")
	log.Printf("  - GET  /v1/alerts")
	log.Printf("  - GET  /v1/basins/:id")
	log.Printf("  - GET  /metrics")
	log.Printf("  - GET  /v1/stream (WebSocket)")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses an environment variable as a Go duration,
// accepting a plain integer as a count of minutes for operator convenience.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
	return defaultValue
}

func printUsage() {
	fmt.Printf("Floodcore v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  floodcore [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                 Server port (default: 8080)")
	fmt.Println("  CATALOG_PATH         Basin catalogue TOML path (default: ./data/basins.toml)")
	fmt.Println("  STATION_FEED_PATH    JSON station feed path (optional)")
	fmt.Println("  RADAR_FEED_PATH      JSON radar feed path (optional)")
	fmt.Println("  AEMET_API_KEY        Radar activation key; unset forces gauge-only processing")
	fmt.Println("  CYCLE_INTERVAL       Cycle period, e.g. 10m or a bare minute count (default: 5m)")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET  /healthz           Health check")
	fmt.Println("  GET  /v1/snapshot       Latest cycle result")
	fmt.Println("  GET  /v1/alerts         Active, severity-ordered alert list")
	fmt.Println("  GET  /v1/basins/:id     One basin's result or validation error")
	fmt.Println("  GET  /metrics           Prometheus scrape endpoint")
	fmt.Println("  GET  /v1/stream         WebSocket push feed")
}
