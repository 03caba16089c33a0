package radar

import (
	"math"
	"testing"
)

func TestToDepthMarshallPalmerSpotCheck(t *testing.T) {
	// dBZ=35: Z=10^3.5=3162.28; R=(3162.28/200)^(1/1.6) = 15.81^0.625 ~= 5.615 mm/h.
	r := ToDepth(35, MarshallPalmer)
	if math.Abs(r-5.615) > 0.02 {
		t.Fatalf("expected ~5.615 mm/h, got %v", r)
	}
}

func TestToDepthConvectiveDiffersFromMarshallPalmer(t *testing.T) {
	mp := ToDepth(40, MarshallPalmer)
	conv := ToDepth(40, Convective)
	if mp == conv {
		t.Fatalf("expected convective relation to differ from Marshall-Palmer")
	}
}

func TestRoundTripDBZPreservesValue(t *testing.T) {
	for _, dbz := range []float64{10, 25, 35, 50} {
		r := ToDepth(dbz, MarshallPalmer)
		back := ToDBZ(r, MarshallPalmer)
		if math.Abs(back-dbz) > 1e-6 {
			t.Fatalf("round trip failed for dBZ=%v: got %v", dbz, back)
		}
	}
}

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		mmh  float64
		want IntensityBand
	}{
		{0.5, BandNone},
		{1, BandNone},
		{3, BandLight},
		{5, BandLight},
		{10, BandModerate},
		{15, BandModerate},
		{25, BandHeavy},
		{30, BandHeavy},
		{45, BandVeryHeavy},
		{60, BandVeryHeavy},
		{100, BandTorrential},
	}
	for _, c := range cases {
		if got := Classify(c.mmh); got != c.want {
			t.Errorf("Classify(%v) = %v, want %v", c.mmh, got, c.want)
		}
	}
}
