// Package ingest normalizes already-fetched station and radar feed records
// into domain types. The feed schemas are in scope (spec.md §6); the HTTP
// scraper/radar client that produces the raw records is not.
package ingest

import (
	"time"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// RawStation is the subset of a scraper record the core cares about.
// Temperature/humidity/pressure/wind are received but unused by the core.
type RawStation struct {
	ID           string     `json:"id"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`
	AltitudeM    *float64   `json:"altitude_m,omitempty"`
	PrecipMM     float64    `json:"precip_mm"`
	IntensityMMH float64    `json:"intensity_mmh"`
	Online       bool       `json:"online"`
	Timestamp    time.Time  `json:"timestamp"`
}

// NormalizeStations discards stations with zero coordinates, floors
// precipitation and intensity at 0, and resolves id collisions by letting
// later observations in raw replace earlier ones.
func NormalizeStations(raw []RawStation) map[string]domain.Station {
	out := make(map[string]domain.Station, len(raw))

	for _, r := range raw {
		if r.Lat == 0 && r.Lon == 0 {
			continue
		}

		precip := r.PrecipMM
		if precip < 0 {
			precip = 0
		}
		intensity := r.IntensityMMH
		if intensity < 0 {
			intensity = 0
		}

		out[r.ID] = domain.Station{
			ID:          r.ID,
			Lat:         r.Lat,
			Lon:         r.Lon,
			AltitudeM:   r.AltitudeM,
			PrecipMM:    precip,
			IntensityMM: intensity,
			Online:      r.Online,
			Timestamp:   r.Timestamp,
		}
	}

	return out
}

// StationSlice flattens a normalized station map for pipeline stages that
// need a slice rather than a map. The slice follows map iteration order,
// which is not defined.
func StationSlice(stations map[string]domain.Station) []domain.Station {
	out := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		out = append(out, s)
	}
	return out
}
