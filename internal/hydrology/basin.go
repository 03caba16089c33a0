package hydrology

import (
	"fmt"
	"math"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// SubcatchmentInput pairs a subcatchment with the rainfall estimated for
// it this cycle, the hand-off contract between the spatial estimator and
// the hydrology engine.
type SubcatchmentInput struct {
	Subcatchment domain.Subcatchment
	PrecipMM     float64
	IntensityMMH float64
	Method       domain.RainfallMethod
}

// ValidationError tags an unphysical basin or subcatchment parameter. The
// owning basin fails for the cycle; other basins are unaffected.
type ValidationError struct {
	BasinID string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("basin %s: %s", e.BasinID, e.Reason)
}

// validateSubcatchment rejects unphysical parameters: CN outside [30,100],
// non-positive area, or (when routing is present) X outside [0,0.5], K<=0,
// reaches<1.
func validateSubcatchment(basinID string, sc domain.Subcatchment) error {
	if sc.CN < 30 || sc.CN > 100 {
		return &ValidationError{BasinID: basinID, Reason: fmt.Sprintf("subcatchment %s: CN %v outside [30,100]", sc.ID, sc.CN)}
	}
	if sc.AreaKM2 <= 0 {
		return &ValidationError{BasinID: basinID, Reason: fmt.Sprintf("subcatchment %s: area %v must be > 0", sc.ID, sc.AreaKM2)}
	}
	if sc.Routing != nil {
		r := sc.Routing
		if r.X < 0 || r.X > 0.5 {
			return &ValidationError{BasinID: basinID, Reason: fmt.Sprintf("subcatchment %s: X %v outside [0,0.5]", sc.ID, r.X)}
		}
		if r.KHours <= 0 {
			return &ValidationError{BasinID: basinID, Reason: fmt.Sprintf("subcatchment %s: K %v must be > 0", sc.ID, r.KHours)}
		}
		if r.Reaches < 1 {
			return &ValidationError{BasinID: basinID, Reason: fmt.Sprintf("subcatchment %s: reaches %d must be >= 1", sc.ID, r.Reaches)}
		}
	}
	return nil
}

// RunSemiDistributed runs the full semi-distributed model for a basin: per
// subcatchment SCS-CN loss, Clark unit hydrograph, optional Muskingum
// routing, then superposition at the outlet. Returns a ValidationError
// (never a generic error) when a subcatchment carries unphysical
// parameters; the caller should record it and treat the basin as failed
// for the cycle.
func RunSemiDistributed(basin domain.Basin, inputs []SubcatchmentInput, meanPrecipMM, maxIntensityMMH float64) (domain.BasinResult, error) {
	results := make([]domain.SubcatchmentResult, len(inputs))
	routed := make([]domain.Hydrograph, len(inputs))

	for i, in := range inputs {
		sc := in.Subcatchment
		if err := validateSubcatchment(basin.ID, sc); err != nil {
			return domain.BasinResult{}, err
		}

		tc := TimeOfConcentrationHours(sc.TcHours, sc.LengthKM, sc.SlopePct, sc.AreaKM2)
		pe := EffectiveRainfallMM(in.PrecipMM, sc.CN)

		var clarkHydro domain.Hydrograph
		if pe > 0 {
			clarkHydro = ClarkUnitHydrograph(sc, pe)
		} else {
			clarkHydro = domain.Hydrograph{DtHours: ClarkDtHours, Samples: []domain.HydrographSample{{TimeH: 0, FlowCMS: 0}}}
		}

		routedHydro := clarkHydro
		if sc.Routing != nil {
			routedHydro = RouteMuskingum(clarkHydro, *sc.Routing)
		}
		routed[i] = routedHydro

		results[i] = domain.SubcatchmentResult{
			SubcatchmentID:  sc.ID,
			Method:          in.Method,
			PrecipMM:        in.PrecipMM,
			IntensityMMH:    in.IntensityMMH,
			EffectiveMM:     pe,
			ClarkPeakCMS:    clarkHydro.Peak().FlowCMS,
			RoutedPeakCMS:   routedHydro.Peak().FlowCMS,
			RationalPeakCMS: RationalPeakCMS(sc.CN, in.IntensityMMH, sc.AreaKM2),
			Routed:          routedHydro,
			TcHours:         tc,
			CN:              sc.CN,
			AreaKM2:         sc.AreaKM2,
		}
	}

	composite := composeHydrographs(routed)

	peak := composite.Peak()

	return domain.BasinResult{
		BasinID:         basin.ID,
		Method:          domain.BasinMethodSemiDistributed,
		DtHours:         ClarkDtHours,
		Composite:       composite,
		PeakFlowCMS:     peak.FlowCMS,
		PeakTimeH:       peak.TimeH,
		MeanPrecipMM:    meanPrecipMM,
		MaxIntensityMMH: maxIntensityMMH,
		Subcatchments:   results,
	}, nil
}

// composeHydrographs superposes a set of routed hydrographs at the outlet:
// composite[i].flow = sum of each hydrograph's sample i (0 if the
// hydrograph is shorter than i), over i = 0..ceil(Tmax/dt).
func composeHydrographs(hydros []domain.Hydrograph) domain.Hydrograph {
	dt := ClarkDtHours
	tMax := 0.0
	for _, h := range hydros {
		if len(h.Samples) > 0 {
			dt = h.DtHours
		}
		last := h.Last().TimeH
		if last > tMax {
			tMax = last
		}
	}

	n := int(math.Ceil(tMax/dt)) + 1
	samples := make([]domain.HydrographSample, n)
	for i := 0; i < n; i++ {
		samples[i] = domain.HydrographSample{TimeH: float64(i) * dt}
	}

	for _, h := range hydros {
		for i, s := range h.Samples {
			if i < n {
				samples[i].FlowCMS += s.FlowCMS
			}
		}
	}

	return domain.Hydrograph{DtHours: dt, Samples: samples}
}

// RunLumped computes the compatibility-shim lumped model: the basin is
// treated as a single subcatchment using basin-wide mean precipitation and
// max intensity, and reports max(rational, Clark) as the peak. It uses the
// coarse CN->C table rather than the fine per-subcatchment one (see
// DESIGN.md for the preserved asymmetry).
func RunLumped(basin domain.Basin, meanPrecipMM, maxIntensityMMH float64) (domain.BasinResult, error) {
	pseudo := domain.Subcatchment{
		ID:      basin.ID,
		AreaKM2: basin.AreaKM2,
		CN:      lumpedCN(basin),
		Bounds:  basin.Bounds,
	}

	if err := validateSubcatchment(basin.ID, pseudo); err != nil {
		return domain.BasinResult{}, err
	}

	pe := EffectiveRainfallMM(meanPrecipMM, pseudo.CN)

	var clarkHydro domain.Hydrograph
	if pe > 0 {
		clarkHydro = ClarkUnitHydrograph(pseudo, pe)
	} else {
		clarkHydro = domain.Hydrograph{DtHours: ClarkDtHours, Samples: []domain.HydrographSample{{TimeH: 0, FlowCMS: 0}}}
	}

	clarkPeak := clarkHydro.Peak().FlowCMS
	rationalPeak := LumpedRationalPeakCMS(pseudo.CN, maxIntensityMMH, pseudo.AreaKM2)

	peakFlow := math.Max(clarkPeak, rationalPeak)
	peakTime := clarkHydro.Peak().TimeH

	return domain.BasinResult{
		BasinID:      basin.ID,
		Method:       domain.BasinMethodLumped,
		DtHours:      ClarkDtHours,
		Composite:    clarkHydro,
		PeakFlowCMS:  peakFlow,
		PeakTimeH:    peakTime,
		MeanPrecipMM: meanPrecipMM,
		MaxIntensityMMH: maxIntensityMMH,
		Subcatchments: []domain.SubcatchmentResult{{
			SubcatchmentID:  basin.ID,
			PrecipMM:        meanPrecipMM,
			IntensityMMH:    maxIntensityMMH,
			EffectiveMM:     pe,
			ClarkPeakCMS:    clarkPeak,
			RoutedPeakCMS:   clarkPeak,
			RationalPeakCMS: rationalPeak,
			Routed:          clarkHydro,
			TcHours:         TimeOfConcentrationHours(nil, nil, pseudo.SlopePct, pseudo.AreaKM2),
			CN:              pseudo.CN,
			AreaKM2:         pseudo.AreaKM2,
		}},
	}, nil
}

// lumpedCN averages subcatchment CN area-weighted, falling back to 70 (a
// mid-range default) when the basin carries no subcatchment detail at all.
func lumpedCN(basin domain.Basin) float64 {
	if len(basin.Subcatchments) == 0 {
		return 70
	}
	var weighted, area float64
	for _, sc := range basin.Subcatchments {
		weighted += sc.CN * sc.AreaKM2
		area += sc.AreaKM2
	}
	if area == 0 {
		return 70
	}
	return weighted / area
}
