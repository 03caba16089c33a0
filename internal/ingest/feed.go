package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// LoadStationFeed reads a JSON array of RawStation from path and returns
// the normalized station map. Station scraping and the wire transport that
// produces this file are out of scope; this is the seam the coordinator's
// Fetch hook is built around.
func LoadStationFeed(path string) (map[string]domain.Station, error) {
	if path == "" {
		return map[string]domain.Station{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read station feed %s: %w", path, err)
	}
	var raw []RawStation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse station feed %s: %w", path, err)
	}
	return NormalizeStations(raw), nil
}

// LoadRadarFeed reads a JSON array of RawRadarPixel from path and returns
// the normalized grid. An absent path is a valid "no decoded radar this
// cycle" state, not an error.
func LoadRadarFeed(path string) ([]domain.RadarPixel, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read radar feed %s: %w", path, err)
	}
	var raw []RawRadarPixel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse radar feed %s: %w", path, err)
	}
	return NormalizeRadarGrid(raw), nil
}
