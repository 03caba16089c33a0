// Package radar converts reflectivity (dBZ) to rain rate and classifies
// rain intensity, per the Z-R relations the station/radar feeds carry.
package radar

import "math"

// Kind selects which Z-R power law to apply.
type Kind int

const (
	// MarshallPalmer is the default relation; merging always uses it.
	MarshallPalmer Kind = iota
	// Convective uses steeper coefficients suited to convective cells.
	Convective
)

type coeffs struct {
	a, b float64
}

var kindCoeffs = map[Kind]coeffs{
	MarshallPalmer: {a: 200, b: 1.6},
	Convective:     {a: 300, b: 1.4},
}

// ToDepth converts a reflectivity value (dBZ) to rain rate R in mm/h via
// Z = 10^(dBZ/10); R = (Z/a)^(1/b).
func ToDepth(dBZ float64, kind Kind) float64 {
	c, ok := kindCoeffs[kind]
	if !ok {
		c = kindCoeffs[MarshallPalmer]
	}
	z := math.Pow(10, dBZ/10)
	return math.Pow(z/c.a, 1/c.b)
}

// ToDBZ inverts ToDepth: given a rain rate in mm/h, returns the dBZ value
// that would produce it under the given relation. Used to exercise the
// round-trip property; returns -Inf for R == 0 and NaN for R < 0.
func ToDBZ(rainRateMMH float64, kind Kind) float64 {
	c, ok := kindCoeffs[kind]
	if !ok {
		c = kindCoeffs[MarshallPalmer]
	}
	z := c.a * math.Pow(rainRateMMH, c.b)
	return 10 * math.Log10(z)
}

// IntensityBand labels a rain-rate intensity bucket.
type IntensityBand string

const (
	BandNone       IntensityBand = "none"
	BandLight      IntensityBand = "light"
	BandModerate   IntensityBand = "moderate"
	BandHeavy      IntensityBand = "heavy"
	BandVeryHeavy  IntensityBand = "very_heavy"
	BandTorrential IntensityBand = "torrential"
)

// Classify buckets a rain rate (mm/h) into an intensity band using the
// upper bounds: none(1), light(5), moderate(15), heavy(30), very_heavy(60),
// torrential(inf).
func Classify(mmPerHour float64) IntensityBand {
	switch {
	case mmPerHour <= 1:
		return BandNone
	case mmPerHour <= 5:
		return BandLight
	case mmPerHour <= 15:
		return BandModerate
	case mmPerHour <= 30:
		return BandHeavy
	case mmPerHour <= 60:
		return BandVeryHeavy
	default:
		return BandTorrential
	}
}
