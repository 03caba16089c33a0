// Package catalog loads the declarative basin catalogue (spec.md §6) from
// a TOML file. Loading is ambient configuration, not a core hydrological
// component — the catalogue itself is loaded once at startup and treated
// as immutable thereafter (spec.md §3 "Ownership & lifecycle").
package catalog

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hidroalerta/floodcore/internal/domain"
)

type fileBounds struct {
	North float64 `toml:"north"`
	South float64 `toml:"south"`
	East  float64 `toml:"east"`
	West  float64 `toml:"west"`
}

func (b fileBounds) toDomain() domain.Bounds {
	return domain.Bounds{North: b.North, South: b.South, East: b.East, West: b.West}
}

type fileThresholds struct {
	Yellow float64 `toml:"yellow"`
	Orange float64 `toml:"orange"`
	Red    float64 `toml:"red"`
}

type fileRouting struct {
	KHours  float64 `toml:"k_hours"`
	X       float64 `toml:"x"`
	Reaches int     `toml:"reaches"`
}

type fileSubcatchment struct {
	ID             string       `toml:"id"`
	AreaKM2        float64      `toml:"area_km2"`
	CN             float64      `toml:"cn"`
	SlopePct       float64      `toml:"slope_pct"`
	LengthKM       *float64     `toml:"length_km"`
	TcHours        *float64     `toml:"tc_hours"`
	StorageRHours  *float64     `toml:"storage_r_hours"`
	Bounds         fileBounds   `toml:"bounds"`
	Routing        *fileRouting `toml:"routing"`
}

func (s fileSubcatchment) toDomain() domain.Subcatchment {
	sc := domain.Subcatchment{
		ID:       s.ID,
		AreaKM2:  s.AreaKM2,
		CN:       s.CN,
		SlopePct: s.SlopePct,
		LengthKM: s.LengthKM,
		TcHours:  s.TcHours,
		StorageR: s.StorageRHours,
		Bounds:   s.Bounds.toDomain(),
	}
	if s.Routing != nil {
		sc.Routing = &domain.RoutingParams{
			KHours:  s.Routing.KHours,
			X:       s.Routing.X,
			Reaches: s.Routing.Reaches,
		}
	}
	return sc
}

type fileBasin struct {
	ID             string             `toml:"id"`
	Name           string             `toml:"name"`
	Type           string             `toml:"type"`
	AreaKM2        float64            `toml:"area_km2"`
	OutletLat      float64            `toml:"outlet_lat"`
	OutletLon      float64            `toml:"outlet_lon"`
	Bounds         fileBounds         `toml:"bounds"`
	Thresholds     fileThresholds     `toml:"thresholds"`
	Subcatchments  []fileSubcatchment `toml:"subcatchments"`
}

func (b fileBasin) toDomain() domain.Basin {
	subs := make([]domain.Subcatchment, len(b.Subcatchments))
	for i, s := range b.Subcatchments {
		subs[i] = s.toDomain()
	}
	return domain.Basin{
		ID:      b.ID,
		Name:    b.Name,
		Type:    b.Type,
		AreaKM2: b.AreaKM2,
		Bounds:  b.Bounds.toDomain(),
		OutletLat: b.OutletLat,
		OutletLon: b.OutletLon,
		Thresholds: domain.Thresholds{
			Yellow: b.Thresholds.Yellow,
			Orange: b.Thresholds.Orange,
			Red:    b.Thresholds.Red,
		},
		Subcatchments: subs,
	}
}

type file struct {
	Basins []fileBasin `toml:"basins"`
}

// Load reads and parses a basin catalogue TOML file.
func Load(path string) ([]domain.Basin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read basin catalogue %s: %w", path, err)
	}
	return Decode(string(data))
}

// Decode parses a basin catalogue from a TOML string.
func Decode(data string) ([]domain.Basin, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse basin catalogue: %w", err)
	}

	basins := make([]domain.Basin, len(f.Basins))
	for i, b := range f.Basins {
		basins[i] = b.toDomain()
	}

	if err := validateThresholds(basins); err != nil {
		return nil, err
	}

	return basins, nil
}

func validateThresholds(basins []domain.Basin) error {
	for _, b := range basins {
		t := b.Thresholds
		if !(t.Yellow < t.Orange && t.Orange < t.Red) {
			return fmt.Errorf("basin %s: thresholds must be strictly increasing (yellow=%v orange=%v red=%v)", b.ID, t.Yellow, t.Orange, t.Red)
		}
	}
	return nil
}
