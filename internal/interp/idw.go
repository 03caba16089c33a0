// Package interp provides inverse-distance-weighted interpolation over
// scattered point samples, adapted from the teacher's grid-interpolation
// package to the spec's scattered-sample contract.
package interp

import (
	"math"

	"github.com/hidroalerta/floodcore/internal/domain"
	"github.com/hidroalerta/floodcore/internal/geodesy"
)

// Power is the fixed IDW exponent p = 2.
const Power = 2.0

// RadiusKM is the fixed search radius r = 50 km.
const RadiusKM = 50.0

// At estimates the scalar field at (lat, lon) from samples using inverse
// distance weighting. If a sample lies within geodesy.CoincidentKM its
// value is returned directly — the first such sample in iteration order
// wins, so callers should not depend on tie-breaking when several samples
// are colocated. If no sample lies within RadiusKM, At returns 0.
func At(lat, lon float64, samples []domain.WeightedSample) float64 {
	var weightedSum, weightSum float64
	any := false

	for _, s := range samples {
		d := geodesy.DistanceKM(lat, lon, s.Lat, s.Lon)
		if d < geodesy.CoincidentKM {
			return s.Value
		}
		if d > RadiusKM {
			continue
		}
		w := 1.0 / math.Pow(d, Power)
		weightedSum += w * s.Value
		weightSum += w
		any = true
	}

	if !any || weightSum == 0 {
		return 0
	}
	return weightedSum / weightSum
}
