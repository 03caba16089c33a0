package hydrology

import (
	"log"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// RouteMuskingum routes an inflow hydrograph through routing.Reaches
// identical reaches in series, each parameterized by routing.KHours and
// routing.X. A reach whose denominator D <= 0 is skipped (numerical
// guard) and logged; routing proceeds with the remaining reaches.
func RouteMuskingum(inflow domain.Hydrograph, routing domain.RoutingParams) domain.Hydrograph {
	dt := inflow.DtHours
	current := inflow

	for reach := 0; reach < routing.Reaches; reach++ {
		k := routing.KHours
		x := routing.X

		d := k - k*x + 0.5*dt
		if d <= 0 {
			log.Printf("hydrology: skipping muskingum reach %d, non-positive denominator D=%v", reach, d)
			continue
		}

		c0 := (-k*x + 0.5*dt) / d
		c1 := (k*x + 0.5*dt) / d
		c2 := (k - k*x - 0.5*dt) / d

		n := len(current.Samples)
		out := make([]domain.HydrographSample, n)
		if n == 0 {
			current = domain.Hydrograph{DtHours: dt, Samples: out}
			continue
		}

		out[0] = domain.HydrographSample{TimeH: current.Samples[0].TimeH, FlowCMS: current.Samples[0].FlowCMS}

		for i := 1; i < n; i++ {
			q := c0*current.Samples[i].FlowCMS + c1*current.Samples[i-1].FlowCMS + c2*out[i-1].FlowCMS
			if q < 0 {
				q = 0
			}
			out[i] = domain.HydrographSample{TimeH: current.Samples[i].TimeH, FlowCMS: q}
		}

		current = domain.Hydrograph{DtHours: dt, Samples: out}
	}

	return current
}
