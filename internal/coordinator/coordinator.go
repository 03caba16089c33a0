// Package coordinator orchestrates a single cycle of the pipeline: it fans
// per-basin work out over a bounded worker pool, waits for the pool to
// drain, and publishes the resulting Snapshot via an atomic swap so readers
// never observe a half-updated cycle.
package coordinator

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hidroalerta/floodcore/internal/alert"
	"github.com/hidroalerta/floodcore/internal/domain"
	"github.com/hidroalerta/floodcore/internal/hydrology"
	"github.com/hidroalerta/floodcore/internal/spatial"
)

// Coordinator owns the basin catalogue, the published Snapshot and the
// rolling alert history across cycles. The catalogue is immutable once
// handed to New; everything else is rebuilt or appended each cycle.
type Coordinator struct {
	basins  []domain.Basin
	metrics *metrics
	seq     atomic.Int64
	current atomic.Pointer[domain.Snapshot]

	historyMu sync.Mutex
	history   []domain.Alert

	subsMu      sync.Mutex
	subscribers []func(domain.Snapshot)
}

// New builds a Coordinator for a fixed basin catalogue. reg may be nil to
// skip Prometheus registration (e.g. in tests).
func New(basins []domain.Basin, reg prometheus.Registerer) *Coordinator {
	return &Coordinator{
		basins:  basins,
		metrics: newMetrics(reg),
	}
}

// Snapshot returns the most recently published cycle result, or nil before
// the first cycle completes.
func (c *Coordinator) Snapshot() *domain.Snapshot {
	return c.current.Load()
}

// Subscribe registers fn to be called with every snapshot published by
// RunCycle, after it is stored. Used to fan a cycle's result out to the
// push broadcaster without the coordinator importing it directly.
func (c *Coordinator) Subscribe(fn func(domain.Snapshot)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Coordinator) notify(snap domain.Snapshot) {
	c.subsMu.Lock()
	subs := make([]func(domain.Snapshot), len(c.subscribers))
	copy(subs, c.subscribers)
	c.subsMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// basinOutcome is the per-basin result of one cycle, produced concurrently
// and merged into the Snapshot sequentially.
type basinOutcome struct {
	basinID string
	result  domain.BasinResult
	alert   domain.Alert
	err     *domain.BasinError
}

// RunCycle executes one full pipeline cycle: spatial rainfall estimation
// and hydrology per basin (fanned out over a bounded worker pool sized to
// runtime.NumCPU()), alert classification, and snapshot publication. It
// returns the newly published Snapshot.
func (c *Coordinator) RunCycle(ctx context.Context, stations map[string]domain.Station, radarGrid []domain.RadarPixel, now time.Time) *domain.Snapshot {
	start := time.Now()

	stationSlice := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		stationSlice = append(stationSlice, s)
	}

	n := runtime.NumCPU()
	if n > len(c.basins) && len(c.basins) > 0 {
		n = len(c.basins)
	}
	if n < 1 {
		n = 1
	}
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))

	outcomes := make([]basinOutcome, len(c.basins))
	for i, basin := range c.basins {
		i, basin := i, basin
		pool.Submit(func() {
			outcomes[i] = processBasin(basin, stationSlice, radarGrid, now)
		})
	}
	pool.StopAndWait()

	results := make(map[string]domain.BasinResult, len(c.basins))
	errs := make(map[string]domain.BasinError)

	c.historyMu.Lock()
	for _, o := range outcomes {
		if o.err != nil {
			errs[o.basinID] = *o.err
			c.metrics.basinsFailed.Inc()
			continue
		}
		results[o.basinID] = o.result
		c.metrics.basinsProcessed.Inc()
		if o.alert.Level != domain.AlertGreen {
			c.metrics.alertsEmitted.WithLabelValues(string(o.alert.Level)).Inc()
		}
		c.history = alert.AppendTo(c.history, o.alert)
	}
	active := alert.OrderBySeverity(c.history)
	c.historyMu.Unlock()

	snap := &domain.Snapshot{
		Sequence:  c.seq.Add(1),
		Timestamp: now,
		Stations:  stations,
		RadarGrid: radarGrid,
		Results:   results,
		Errors:    errs,
		Alerts:    active,
	}

	c.current.Store(snap)
	c.metrics.cycleDuration.Observe(time.Since(start).Seconds())
	c.notify(*snap)

	return snap
}

// processBasin runs the spatial estimator and hydrology engine for one
// basin. It is a pure function of its arguments so it is safe to call
// concurrently from the worker pool.
func processBasin(basin domain.Basin, stations []domain.Station, radarGrid []domain.RadarPixel, now time.Time) basinOutcome {
	rainfall := spatial.Estimate(basin, stations, radarGrid)

	var (
		result domain.BasinResult
		err    error
	)

	if len(basin.Subcatchments) == 0 {
		result, err = hydrology.RunLumped(basin, rainfall.MeanPrecipMM, rainfall.MaxIntensityMMH)
	} else {
		inputs := make([]hydrology.SubcatchmentInput, len(basin.Subcatchments))
		for i, sc := range basin.Subcatchments {
			r := rainfall.Subcatchments[i]
			inputs[i] = hydrology.SubcatchmentInput{
				Subcatchment: sc,
				PrecipMM:     r.PrecipMM,
				IntensityMMH: r.IntensityMMH,
				Method:       r.Method,
			}
		}
		result, err = hydrology.RunSemiDistributed(basin, inputs, rainfall.MeanPrecipMM, rainfall.MaxIntensityMMH)
	}

	if err != nil {
		log.Printf("coordinator: basin %s failed validation: %v", basin.ID, err)
		return basinOutcome{
			basinID: basin.ID,
			err: &domain.BasinError{
				BasinID:   basin.ID,
				Message:   err.Error(),
				Timestamp: now,
			},
		}
	}

	result.Timestamp = now
	a := alert.BuildAlert(basin.ID, result.PeakFlowCMS, result.MeanPrecipMM, result.MaxIntensityMMH, basin.Thresholds, now)

	return basinOutcome{basinID: basin.ID, result: result, alert: a}
}
