package ingest

import "github.com/hidroalerta/floodcore/internal/domain"

// RawRadarPixel is a decoded reflectivity sample as received from the
// radar feed.
type RawRadarPixel struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	ReflDBZ float64 `json:"refl_dbz"`
}

// NormalizeRadarGrid converts decoded radar pixels into domain values. An
// image-reference-only payload (no decoded pixels) should pass nil or an
// empty slice, which yields an empty grid and lets the pipeline fall back
// to its degenerate no-radar cases.
func NormalizeRadarGrid(raw []RawRadarPixel) []domain.RadarPixel {
	if len(raw) == 0 {
		return nil
	}
	out := make([]domain.RadarPixel, len(raw))
	for i, p := range raw {
		out[i] = domain.RadarPixel{Lat: p.Lat, Lon: p.Lon, ReflDBZ: p.ReflDBZ}
	}
	return out
}
