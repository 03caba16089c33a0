package hydrology

// fineRunoffCoeff is the per-subcatchment CN->C table used by the rational
// method sanity check, in 5-point CN steps.
func fineRunoffCoeff(cn float64) float64 {
	switch {
	case cn >= 90:
		return 0.85
	case cn >= 85:
		return 0.72
	case cn >= 80:
		return 0.60
	case cn >= 75:
		return 0.50
	case cn >= 70:
		return 0.40
	case cn >= 65:
		return 0.30
	case cn >= 60:
		return 0.22
	default:
		return 0.15
	}
}

// coarseRunoffCoeff is the lumped-fallback CN->C table, in 10-point CN
// steps. The spec preserves this asymmetry between the per-subcatchment and
// lumped paths rather than unifying them; see DESIGN.md.
func coarseRunoffCoeff(cn float64) float64 {
	switch {
	case cn >= 90:
		return 0.85
	case cn >= 80:
		return 0.60
	case cn >= 70:
		return 0.40
	case cn >= 60:
		return 0.22
	default:
		return 0.15
	}
}

// RationalPeakCMS computes the auxiliary rational-method peak flow
// Q = C(CN) * I * A / 3.6, using the fine per-subcatchment table.
func RationalPeakCMS(cn, intensityMMH, areaKM2 float64) float64 {
	return fineRunoffCoeff(cn) * intensityMMH * areaKM2 / 3.6
}

// LumpedRationalPeakCMS computes the rational-method peak using the
// coarser lumped-fallback table.
func LumpedRationalPeakCMS(cn, intensityMMH, areaKM2 float64) float64 {
	return coarseRunoffCoeff(cn) * intensityMMH * areaKM2 / 3.6
}
