package coordinator

import (
	"context"
	"log"
	"time"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// Fetch retrieves the inputs for the next cycle: normalized stations keyed
// by ID and the current radar grid (nil or empty when only an image
// reference is available).
type Fetch func(ctx context.Context) (map[string]domain.Station, []domain.RadarPixel, error)

// Run drives the cycle loop on a fixed interval until ctx is cancelled. A
// fetch failure is logged and the cycle is skipped; it does not stop the
// loop.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration, fetch Fetch) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stations, radarGrid, err := fetch(ctx)
			if err != nil {
				log.Printf("coordinator: fetch failed, skipping cycle: %v", err)
				continue
			}
			c.RunCycle(ctx, stations, radarGrid, time.Now())
		}
	}
}
