// Package merge implements conditional radar-gauge rainfall merging
// (Sinclair & Pegram 2005 style): a radar field corrected by an
// interpolated gauge/radar bias ratio, blended with a gauge IDW field.
package merge

import (
	"math"

	"github.com/hidroalerta/floodcore/internal/domain"
	"github.com/hidroalerta/floodcore/internal/geodesy"
	"github.com/hidroalerta/floodcore/internal/interp"
	"github.com/hidroalerta/floodcore/internal/radar"
)

// GridResolutionDeg is the fixed resolution of the fusion grid.
const GridResolutionDeg = 0.02

// RadarWeight is the fixed blend weight given to the corrected radar field.
const RadarWeight = 0.4

// Result is the aggregated rainfall field over a region.
type Result struct {
	MeanMM       float64
	MaxIntensity float64
	Method       domain.RainfallMethod
}

// Estimate fuses gauge and radar fields over region and reports the mean
// and max grid values. Degenerate cases fall back per spec: no radar is
// pure gauge IDW, no gauges is pure radar-only IDW, and neither yields
// zeros.
func Estimate(region domain.Bounds, gauges []domain.Station, pixels []domain.RadarPixel) Result {
	hasGauges := len(gauges) > 0
	hasRadar := len(pixels) > 0

	if !hasGauges && !hasRadar {
		return Result{Method: domain.MethodNoData}
	}

	grid := buildGrid(region)

	if !hasRadar {
		mean, max := gaugeOnly(grid, gauges)
		return Result{MeanMM: mean, MaxIntensity: max, Method: domain.MethodDistributedIDW}
	}

	radarSamples := radarDepthSamples(pixels)

	if !hasGauges {
		mean, max := idwGrid(grid, radarSamples)
		return Result{MeanMM: mean, MaxIntensity: max, Method: domain.MethodRadarOnly}
	}

	biasSamples := buildBiasSamples(gauges, pixels, radarSamples)
	gaugeSamples := gaugeDepthSamples(gauges)

	var sum, max float64
	for _, p := range grid {
		radarVal := interp.At(p.Lat, p.Lon, radarSamples)
		correction := 1.0
		if len(biasSamples) > 0 {
			correction = clamp(interp.At(p.Lat, p.Lon, biasSamples), 0.1, 5.0)
		}
		stationVal := interp.At(p.Lat, p.Lon, gaugeSamples)
		fused := RadarWeight*(radarVal*correction) + (1-RadarWeight)*stationVal
		sum += fused
		if fused > max {
			max = fused
		}
	}

	mean := sum / float64(len(grid))
	return Result{MeanMM: mean, MaxIntensity: max, Method: domain.MethodDistributedFusion}
}

func gaugeOnly(grid []domain.WeightedSample, gauges []domain.Station) (mean, max float64) {
	samples := gaugeDepthSamples(gauges)
	return idwGrid(grid, samples)
}

func idwGrid(grid []domain.WeightedSample, samples []domain.WeightedSample) (mean, max float64) {
	var sum float64
	for _, p := range grid {
		v := interp.At(p.Lat, p.Lon, samples)
		sum += v
		if v > max {
			max = v
		}
	}
	if len(grid) == 0 {
		return 0, 0
	}
	return sum / float64(len(grid)), max
}

// buildGrid lays out a fixed regular grid over region at GridResolutionDeg,
// with coordinates rounded to three decimal places.
func buildGrid(region domain.Bounds) []domain.WeightedSample {
	grid := make([]domain.WeightedSample, 0)
	for lat := region.South; lat <= region.North+1e-9; lat += GridResolutionDeg {
		for lon := region.West; lon <= region.East+1e-9; lon += GridResolutionDeg {
			grid = append(grid, domain.WeightedSample{
				Lat: round3(lat),
				Lon: round3(lon),
			})
		}
	}
	return grid
}

func radarDepthSamples(pixels []domain.RadarPixel) []domain.WeightedSample {
	samples := make([]domain.WeightedSample, len(pixels))
	for i, p := range pixels {
		samples[i] = domain.WeightedSample{
			Lat:   p.Lat,
			Lon:   p.Lon,
			Value: radar.ToDepth(p.ReflDBZ, radar.MarshallPalmer),
		}
	}
	return samples
}

func gaugeDepthSamples(gauges []domain.Station) []domain.WeightedSample {
	samples := make([]domain.WeightedSample, len(gauges))
	for i, g := range gauges {
		samples[i] = domain.WeightedSample{Lat: g.Lat, Lon: g.Lon, Value: g.PrecipMM}
	}
	return samples
}

// buildBiasSamples finds, for each gauge, the nearest radar pixel by
// brute-force haversine search and builds a (lat, lon, ratio) bias sample.
func buildBiasSamples(gauges []domain.Station, pixels []domain.RadarPixel, radarSamples []domain.WeightedSample) []domain.WeightedSample {
	samples := make([]domain.WeightedSample, 0, len(gauges))

	for _, g := range gauges {
		nearestIdx := -1
		nearestDist := math.MaxFloat64
		for i, p := range pixels {
			d := geodesy.DistanceKM(g.Lat, g.Lon, p.Lat, p.Lon)
			if d < nearestDist {
				nearestDist = d
				nearestIdx = i
			}
		}
		if nearestIdx == -1 {
			continue
		}

		pRadar := radarSamples[nearestIdx].Value
		pGauge := g.PrecipMM

		var ratio float64
		switch {
		case pRadar > 0.1:
			ratio = math.Min(pGauge/pRadar, 5.0)
		case pGauge > 0:
			ratio = 3.0
		default:
			continue // no bias sample.
		}

		samples = append(samples, domain.WeightedSample{Lat: g.Lat, Lon: g.Lon, Value: ratio})
	}

	return samples
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
