package spatial

import (
	"testing"

	"github.com/hidroalerta/floodcore/internal/domain"
)

func dryBasin() domain.Basin {
	return domain.Basin{
		ID:      "b1",
		AreaKM2: 100,
		Bounds:  domain.Bounds{North: 40.1, South: 40.0, East: -2.9, West: -3.0},
		Subcatchments: []domain.Subcatchment{
			{
				ID:      "sc1",
				AreaKM2: 100,
				CN:      75,
				Bounds:  domain.Bounds{North: 40.1, South: 40.0, East: -2.9, West: -3.0},
			},
		},
	}
}

func TestEstimateDryBasinYieldsZeroPrecip(t *testing.T) {
	stations := []domain.Station{
		{ID: "s1", Lat: 40.05, Lon: -2.95, PrecipMM: 0, IntensityMM: 0, Online: true},
	}
	r := Estimate(dryBasin(), stations, nil)
	if r.MeanPrecipMM != 0 {
		t.Fatalf("expected zero precip, got %v", r.MeanPrecipMM)
	}
	if r.Subcatchments[0].Method != domain.MethodDistributedIDW {
		t.Fatalf("expected distributed_idw, got %v", r.Subcatchments[0].Method)
	}
}

func TestEstimateOfflineGaugesExcluded(t *testing.T) {
	stations := []domain.Station{
		{ID: "s1", Lat: 40.05, Lon: -2.95, PrecipMM: 50, Online: false},
	}
	r := Estimate(dryBasin(), stations, nil)
	if r.Subcatchments[0].GaugeCount != 0 {
		t.Fatalf("expected offline gauge excluded, got count %d", r.Subcatchments[0].GaugeCount)
	}
}

func TestEstimateNoSubcatchmentsFallsBackToWholeBasin(t *testing.T) {
	basin := domain.Basin{
		ID:      "b2",
		AreaKM2: 50,
		Bounds:  domain.Bounds{North: 40.1, South: 40.0, East: -2.9, West: -3.0},
	}
	stations := []domain.Station{
		{ID: "s1", Lat: 40.05, Lon: -2.95, PrecipMM: 20, Online: true},
	}
	r := Estimate(basin, stations, nil)
	if len(r.Subcatchments) != 1 || r.Subcatchments[0].SubcatchmentID != "b2" {
		t.Fatalf("expected single whole-basin pseudo-subcatchment, got %+v", r.Subcatchments)
	}
}
