package hydrology

import (
	"math"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// ClarkDtHours is the fixed Clark unit hydrograph time step.
const ClarkDtHours = 0.25

// ClarkStorageFactor is the default ratio R = factor * tc when a
// subcatchment does not supply an explicit storage coefficient.
const ClarkStorageFactor = 0.7

// timeAreaCurve is the fixed symmetric parabolic S-curve. It must not be
// replaced by the textbook linear-triangular approximation: outputs will
// diverge from the reference implementation.
func timeAreaCurve(u float64) float64 {
	switch {
	case u < 0:
		return 0
	case u > 1:
		return 1
	case u <= 0.5:
		return 2 * u * u
	default:
		return 1 - 2*(1-u)*(1-u)
	}
}

// ClarkUnitHydrograph translates effective rainfall Pe (mm) through the
// time-area curve and a linear reservoir to produce the subcatchment's
// outflow hydrograph.
func ClarkUnitHydrograph(sc domain.Subcatchment, peMM float64) domain.Hydrograph {
	tc := TimeOfConcentrationHours(sc.TcHours, sc.LengthKM, sc.SlopePct, sc.AreaKM2)

	r := ClarkStorageFactor * tc
	if sc.StorageR != nil {
		r = *sc.StorageR
	}

	dt := ClarkDtHours
	steps := int(math.Ceil((tc + 4*r) / dt))
	if steps < 1 {
		steps = 1
	}

	volumeM3 := (peMM / 1000) * sc.AreaKM2 * 1e6

	c1 := dt / (r + 0.5*dt)
	c2 := 1 - c1

	samples := make([]domain.HydrographSample, steps)
	prevQ := 0.0

	for i := 0; i < steps; i++ {
		ti := float64(i) * dt

		var inflow float64
		if ti <= tc {
			frac := timeAreaCurve(ti/tc) - timeAreaCurve((ti-dt)/tc)
			if frac < 0 {
				frac = 0
			}
			inflow = frac * volumeM3 / (dt * 3600)
		}

		q := c1*inflow + c2*prevQ
		if q < 0 {
			q = 0
		}

		samples[i] = domain.HydrographSample{TimeH: ti, FlowCMS: q}
		prevQ = q
	}

	return domain.Hydrograph{DtHours: dt, Samples: samples}
}
