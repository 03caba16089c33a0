package hydrology

import (
	"math"
	"testing"

	"github.com/hidroalerta/floodcore/internal/domain"
)

func TestRunSemiDistributedDryBasinYieldsZeroPeak(t *testing.T) {
	tc := 2.0
	basin := domain.Basin{
		ID: "dry",
		Subcatchments: []domain.Subcatchment{
			{ID: "sc1", AreaKM2: 100, CN: 75, SlopePct: 5, TcHours: &tc},
		},
	}
	inputs := []SubcatchmentInput{
		{Subcatchment: basin.Subcatchments[0], PrecipMM: 0, IntensityMMH: 0, Method: domain.MethodDistributedIDW},
	}

	result, err := RunSemiDistributed(basin, inputs, 0, 0)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.PeakFlowCMS != 0 {
		t.Fatalf("expected zero peak flow for dry basin, got %v", result.PeakFlowCMS)
	}
}

func TestRunSemiDistributedRejectsUnphysicalCN(t *testing.T) {
	basin := domain.Basin{
		ID: "bad",
		Subcatchments: []domain.Subcatchment{
			{ID: "sc1", AreaKM2: 100, CN: 120},
		},
	}
	inputs := []SubcatchmentInput{
		{Subcatchment: basin.Subcatchments[0], PrecipMM: 10, IntensityMMH: 5},
	}
	_, err := RunSemiDistributed(basin, inputs, 0, 0)
	if err == nil {
		t.Fatal("expected validation error for CN outside [30,100]")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestRunSemiDistributedCompositeIsSumOfRoutedSubcatchments(t *testing.T) {
	tc1, tc2 := 1.0, 1.5
	basin := domain.Basin{
		ID: "multi",
		Subcatchments: []domain.Subcatchment{
			{ID: "sc1", AreaKM2: 50, CN: 80, TcHours: &tc1},
			{ID: "sc2", AreaKM2: 70, CN: 70, TcHours: &tc2},
		},
	}
	inputs := []SubcatchmentInput{
		{Subcatchment: basin.Subcatchments[0], PrecipMM: 40, IntensityMMH: 15, Method: domain.MethodDistributedIDW},
		{Subcatchment: basin.Subcatchments[1], PrecipMM: 40, IntensityMMH: 15, Method: domain.MethodDistributedIDW},
	}

	result, err := RunSemiDistributed(basin, inputs, 40, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PeakFlowCMS <= 0 {
		t.Fatalf("expected positive peak flow, got %v", result.PeakFlowCMS)
	}

	for i, sample := range result.Composite.Samples {
		var expected float64
		for _, sr := range result.Subcatchments {
			if i < len(sr.Routed.Samples) {
				expected += sr.Routed.Samples[i].FlowCMS
			}
		}
		if math.Abs(sample.FlowCMS-expected) > 1e-9 {
			t.Fatalf("composite[%d]=%v does not equal sum of routed subcatchments %v", i, sample.FlowCMS, expected)
		}
	}
}

func TestRationalPeakSpotCheck(t *testing.T) {
	// area=10km2, CN=85 (C=0.72), I=20mm/h -> Q=0.72*20*10/3.6=40.00 exactly.
	q := RationalPeakCMS(85, 20, 10)
	if math.Abs(q-40.0) > 1e-9 {
		t.Fatalf("expected exactly 40.0, got %v", q)
	}
}

func TestRunLumpedFallbackUsesMaxOfRationalAndClark(t *testing.T) {
	basin := domain.Basin{ID: "lumped", AreaKM2: 50, Bounds: domain.Bounds{North: 1, South: 0, East: 1, West: 0}}
	result, err := RunLumped(basin, 60, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != domain.BasinMethodLumped {
		t.Fatalf("expected lumped method tag, got %v", result.Method)
	}
	if result.PeakFlowCMS <= 0 {
		t.Fatalf("expected positive peak for wet lumped basin, got %v", result.PeakFlowCMS)
	}
}
