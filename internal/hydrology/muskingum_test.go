package hydrology

import (
	"math"
	"testing"

	"github.com/hidroalerta/floodcore/internal/domain"
)

func pulseInflow(dt float64, steps int) domain.Hydrograph {
	samples := make([]domain.HydrographSample, steps)
	for i := 0; i < steps; i++ {
		flow := 0.0
		if i == 1 {
			flow = 100
		}
		samples[i] = domain.HydrographSample{TimeH: float64(i) * dt, FlowCMS: flow}
	}
	return domain.Hydrograph{DtHours: dt, Samples: samples}
}

func TestMuskingumAttenuatesAndDelaysPeak(t *testing.T) {
	dt := 0.25
	inflow := pulseInflow(dt, 41)
	routing := domain.RoutingParams{KHours: 1, X: 0.1, Reaches: 2}

	out := RouteMuskingum(inflow, routing)

	inPeak := inflow.Peak()
	outPeak := out.Peak()

	if outPeak.FlowCMS >= inPeak.FlowCMS {
		t.Fatalf("expected attenuated peak, got %v >= %v", outPeak.FlowCMS, inPeak.FlowCMS)
	}
	if outPeak.TimeH <= inPeak.TimeH {
		t.Fatalf("expected peak shifted later in time, got %v <= %v", outPeak.TimeH, inPeak.TimeH)
	}

	var inVol, outVol float64
	for _, s := range inflow.Samples {
		inVol += s.FlowCMS
	}
	for _, s := range out.Samples {
		outVol += s.FlowCMS
	}
	if math.Abs(outVol-inVol)/inVol > 0.001 {
		t.Fatalf("volume not conserved: in=%v out=%v", inVol, outVol)
	}
}

func TestMuskingumSkipsNonPositiveDenominatorReach(t *testing.T) {
	dt := 0.25
	inflow := pulseInflow(dt, 5)
	// D = K(1-X) + 0.5dt is always positive for valid K>0, X in [0,0.5];
	// exercise the numerical guard directly with an otherwise-invalid K,
	// the way it would be reached if basin-level validation were bypassed.
	routing := domain.RoutingParams{KHours: -1, X: 0.1, Reaches: 1}
	out := RouteMuskingum(inflow, routing)
	if len(out.Samples) != len(inflow.Samples) {
		t.Fatalf("expected hydrograph length preserved even when reach skipped")
	}
}

func TestMuskingumNoFlowStaysZero(t *testing.T) {
	dt := 0.25
	flat := domain.Hydrograph{DtHours: dt, Samples: []domain.HydrographSample{
		{TimeH: 0, FlowCMS: 0}, {TimeH: 0.25, FlowCMS: 0}, {TimeH: 0.5, FlowCMS: 0},
	}}
	routing := domain.RoutingParams{KHours: 1, X: 0.2, Reaches: 1}
	out := RouteMuskingum(flat, routing)
	for _, s := range out.Samples {
		if s.FlowCMS != 0 {
			t.Fatalf("expected zero flow throughout, got %v", s.FlowCMS)
		}
	}
}
