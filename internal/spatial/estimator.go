// Package spatial drives the per-subcatchment rainfall estimation step:
// filtering gauges and radar pixels to a basin and its subcatchments, then
// fusing them via the merge package.
package spatial

import (
	"github.com/hidroalerta/floodcore/internal/domain"
	"github.com/hidroalerta/floodcore/internal/merge"
)

// BasinMargin is the bounds expansion applied when selecting gauges for a
// whole basin.
const BasinMargin = 0.15

// SubcatchmentMargin is the bounds expansion applied when selecting gauges
// for a single subcatchment.
const SubcatchmentMargin = 0.08

// SubcatchmentRainfall is one subcatchment's estimated rainfall field.
type SubcatchmentRainfall struct {
	SubcatchmentID string
	PrecipMM       float64
	IntensityMMH   float64
	Method         domain.RainfallMethod
	GaugeCount     int
	RadarCount     int
}

// BasinRainfall aggregates subcatchment rainfall into basin-level means.
type BasinRainfall struct {
	Subcatchments   []SubcatchmentRainfall
	MeanPrecipMM    float64
	MaxIntensityMMH float64
}

// Estimate computes per-subcatchment rainfall for a basin, falling back to
// a single whole-basin region when the basin has no subcatchments.
func Estimate(basin domain.Basin, stations []domain.Station, pixels []domain.RadarPixel) BasinRainfall {
	basinBounds := basin.Bounds.Expand(BasinMargin)
	basinGauges := filterGauges(stations, basinBounds)
	basinPixels := filterPixels(pixels, basin.Bounds)

	if len(basin.Subcatchments) == 0 {
		r := merge.Estimate(basin.Bounds, basinGauges, basinPixels)
		return BasinRainfall{
			Subcatchments: []SubcatchmentRainfall{{
				SubcatchmentID: basin.ID,
				PrecipMM:       r.MeanMM,
				IntensityMMH:   r.MaxIntensity,
				Method:         r.Method,
				GaugeCount:     len(basinGauges),
				RadarCount:     len(basinPixels),
			}},
			MeanPrecipMM:    r.MeanMM,
			MaxIntensityMMH: r.MaxIntensity,
		}
	}

	results := make([]SubcatchmentRainfall, len(basin.Subcatchments))
	var areaWeightedSum, totalArea, maxIntensity float64

	for i, sc := range basin.Subcatchments {
		scBounds := sc.Bounds.Expand(SubcatchmentMargin)
		scGauges := filterGauges(basinGauges, scBounds)
		scPixels := filterPixels(basinPixels, sc.Bounds)

		r := merge.Estimate(sc.Bounds, scGauges, scPixels)

		results[i] = SubcatchmentRainfall{
			SubcatchmentID: sc.ID,
			PrecipMM:       r.MeanMM,
			IntensityMMH:   r.MaxIntensity,
			Method:         r.Method,
			GaugeCount:     len(scGauges),
			RadarCount:     len(scPixels),
		}

		areaWeightedSum += r.MeanMM * sc.AreaKM2
		totalArea += sc.AreaKM2
		if r.MaxIntensity > maxIntensity {
			maxIntensity = r.MaxIntensity
		}
	}

	var meanPrecip float64
	if totalArea > 0 {
		meanPrecip = areaWeightedSum / totalArea
	}

	return BasinRainfall{
		Subcatchments:   results,
		MeanPrecipMM:    meanPrecip,
		MaxIntensityMMH: maxIntensity,
	}
}

func filterGauges(stations []domain.Station, bounds domain.Bounds) []domain.Station {
	out := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if !s.Online {
			continue
		}
		if bounds.Contains(s.Lat, s.Lon) {
			out = append(out, s)
		}
	}
	return out
}

func filterPixels(pixels []domain.RadarPixel, bounds domain.Bounds) []domain.RadarPixel {
	out := make([]domain.RadarPixel, 0, len(pixels))
	for _, p := range pixels {
		if bounds.Contains(p.Lat, p.Lon) {
			out = append(out, p)
		}
	}
	return out
}
