// Package engine rebuilds the current state of every tank from the brewery's
// form-response sheet and the live telemetry feed. It is pure: the same inputs
// always give the same snapshot and nothing is kept between calls.
package engine

import (
	"time"

	"brewery_dashboard/internal/models"
)

// DefaultVessels is the brewery's tank list in display order.
func DefaultVessels() []string {
	return []string{
		"FV1", "FV2", "FV3", "FV4", "FV5", "FV6", "FV7",
		"FV8", "FV9", "FV10", "FVL1", "FVL2", "FVL3",
	}
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Vessels         []string
	Columns         Columns
	Location        *time.Location // zone the sheet's dates are written in
	PrimingConstant float64
	FruitEfficiency float64
	OnWarning       func(ParseWarning)
}

// Adjustments are per-vessel "what if" inputs keyed by vessel id.
type Adjustments map[string]models.Adjustment

// For returns the adjustment for a vessel, matching ids case-insensitively.
func (a Adjustments) For(vessel string) models.Adjustment {
	if adj, ok := a[vessel]; ok {
		return adj
	}
	want := models.NormalizeVesselID(vessel)
	for k, adj := range a {
		if models.NormalizeVesselID(k) == want {
			return adj
		}
	}
	return models.Adjustment{}
}

// Engine reconstructs vessel snapshots. It holds configuration only.
type Engine struct {
	vessels []string
	f       fields
	builder vesselBuilder
}

// New returns an Engine with defaults applied to opts.
func New(opts Options) *Engine {
	if len(opts.Vessels) == 0 {
		opts.Vessels = DefaultVessels()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PrimingConstant <= 0 {
		opts.PrimingConstant = DefaultPrimingConstant
	}
	if opts.FruitEfficiency <= 0 {
		opts.FruitEfficiency = DefaultFruitEfficiency
	}
	f := fields{cols: opts.Columns.withDefaults(), loc: opts.Location, warn: opts.OnWarning}
	return &Engine{
		vessels: append([]string(nil), opts.Vessels...),
		f:       f,
		builder: vesselBuilder{f: f, primingConstant: opts.PrimingConstant, fruitEfficiency: opts.FruitEfficiency},
	}
}

// Vessels returns the configured vessel ids in display order.
func (e *Engine) Vessels() []string {
	return append([]string(nil), e.vessels...)
}

// Reconstruct builds one VesselState per configured vessel. feed is nil when the
// telemetry source could not be read. The only error is *NoDataError.
func (e *Engine) Reconstruct(t Table, feed *TelemetryFeed, adj Adjustments) ([]models.VesselState, error) {
	records, err := Normalize(t)
	if err != nil {
		return nil, err
	}

	rows := make([]dated, len(records))
	byBatch := make(map[string][]dated)
	for i, r := range records {
		rows[i] = dated{rec: r, at: e.f.timestamp(r)}
		if id := e.f.batchID(r); id != "" {
			byBatch[id] = append(byBatch[id], rows[i])
		}
	}

	facts := make(map[string]batchFacts)
	states := make([]models.VesselState, 0, len(e.vessels))
	for _, id := range e.vessels {
		states = append(states, e.vessel(rows, byBatch, facts, id, adj.For(id)))
	}

	states = ResolveDuplicateBatches(states)
	return ReconcileTelemetry(states, feed), nil
}

func (e *Engine) vessel(rows []dated, byBatch map[string][]dated, facts map[string]batchFacts, id string, adj models.Adjustment) models.VesselState {
	c := e.f.classify(rows, id)
	empty := func() models.VesselState {
		st := models.EmptyVessel(id, c.Latest())
		st.Adjustment = adj
		return st
	}

	if e.f.vesselPackaged(c) {
		return empty()
	}
	cur, ok := c.Current()
	if !ok {
		return empty()
	}
	batch := e.f.batchID(cur.Record)
	if batch == "" {
		return empty()
	}
	bf, seen := facts[batch]
	if !seen {
		bf = e.f.summarize(byBatch[batch])
		facts[batch] = bf
	}
	if bf.packaged {
		return empty()
	}
	return e.builder.build(id, cur, bf, adj)
}
