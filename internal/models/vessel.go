package models

import (
	"strings"
	"time"
)

// EventKind identifies which form a spreadsheet row was filled from.
type EventKind string

const (
	KindFermentation EventKind = "fermentation"
	KindBrewingDay   EventKind = "brewing_day"
	KindTransfer     EventKind = "transfer"
)

// Stage is the display grouping of a vessel's production stage.
type Stage string

const (
	StageFermenting Stage = "fermenting"
	StageCrashed    Stage = "crashed"
	StageDryHop     Stage = "dry_hop"
	StageBrite      Stage = "brite"
	StageBrewingDay Stage = "brewing_day"
	StageUnknown    Stage = "unknown"
)

// ShowsBriteMetrics reports whether the tile should show carbonation, D.O. and BBT volume.
func (s Stage) ShowsBriteMetrics() bool { return s == StageBrite }

// ShowsFermentMetrics reports whether the tile should show gravity, pH and tank volume.
func (s Stage) ShowsFermentMetrics() bool {
	switch s {
	case StageFermenting, StageCrashed, StageDryHop, StageBrewingDay:
		return true
	}
	return false
}

// GravityPoint is one dated gravity reading in °P.
type GravityPoint struct {
	Time    time.Time `json:"time"`
	Gravity float64   `json:"gravity"`
}

// Telemetry is the live reading attached from the monitoring feed.
type Telemetry struct {
	Temperature *float64 `json:"temperature,omitempty"` // °C
	SetPoint    *float64 `json:"set_point,omitempty"`   // °C
}

// Adjustment holds caller-supplied "what if" inputs for a vessel.
type Adjustment struct {
	DexCount    int     `json:"dex_count"`
	FruitVolume float64 `json:"fruit_volume"` // liters
}

// IsZero reports whether the adjustment changes nothing.
func (a Adjustment) IsZero() bool { return a.DexCount == 0 && a.FruitVolume == 0 }

// VesselState is the reconstructed snapshot of one tank.
type VesselState struct {
	VesselID    string    `json:"vessel_id"`
	IsEmpty     bool      `json:"is_empty"`
	BatchID     string    `json:"batch_id,omitempty"`
	BatchURL    string    `json:"batch_url,omitempty"`
	StageText   string    `json:"stage_text,omitempty"`
	Stage       Stage     `json:"stage,omitempty"`
	CurrentKind EventKind `json:"current_kind,omitempty"`

	GravityHistory           []GravityPoint `json:"gravity_history"`
	AverageOriginalExtract   *float64       `json:"average_original_extract,omitempty"`   // °P
	EffectiveOriginalExtract *float64       `json:"effective_original_extract,omitempty"` // °P, after dex
	ActualExtract            *float64       `json:"actual_extract,omitempty"`             // °P
	Gravity                  *float64       `json:"gravity,omitempty"`                    // display value, °P
	LatestPH                 *float64       `json:"latest_ph,omitempty"`
	Carbonation              *float64       `json:"carbonation,omitempty"`      // vols
	DissolvedOxygen          *float64       `json:"dissolved_oxygen,omitempty"` // ppb
	Operator                 string         `json:"operator,omitempty"`

	FillVolumeTotal  float64  `json:"fill_volume_total"`            // liters
	DisplayVolume    float64  `json:"display_volume"`               // liters, includes fruit
	BrightTankVolume *float64 `json:"bright_tank_volume,omitempty"` // liters
	ABV              *float64 `json:"abv,omitempty"`                // %, one decimal

	LastEventTimestamp time.Time  `json:"last_event_timestamp"`
	Telemetry          *Telemetry `json:"telemetry,omitempty"`
	Adjustment         Adjustment `json:"adjustment"`
}

// EmptyVessel returns an unoccupied state that keeps lastEvent for auditing.
func EmptyVessel(id string, lastEvent time.Time) VesselState {
	return VesselState{
		VesselID:           id,
		IsEmpty:            true,
		GravityHistory:     []GravityPoint{},
		LastEventTimestamp: lastEvent,
	}
}

// Cleared returns the Empty form of v, keeping identity, timestamp, telemetry and adjustment.
func (v VesselState) Cleared() VesselState {
	out := EmptyVessel(v.VesselID, v.LastEventTimestamp)
	out.Telemetry = v.Telemetry
	out.Adjustment = v.Adjustment
	return out
}

const batchLabelMax = 25

// BatchLabel is the batch id shortened for tile headers.
func (v VesselState) BatchLabel() string {
	r := []rune(v.BatchID)
	if len(r) <= batchLabelMax {
		return v.BatchID
	}
	return string(r[:batchLabelMax])
}

// ChartSeries is a gravity chart with the average OE as the leading "OG" point.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

const chartDateLayout = "02/01/2006"

// ChartSeries builds the gravity chart. The OG point is only prepended here, never stored in history.
func (v VesselState) ChartSeries() ChartSeries {
	cs := ChartSeries{Labels: []string{}, Values: []float64{}}
	if v.AverageOriginalExtract != nil {
		cs.Labels = append(cs.Labels, "OG")
		cs.Values = append(cs.Values, *v.AverageOriginalExtract)
	}
	for _, p := range v.GravityHistory {
		cs.Labels = append(cs.Labels, p.Time.Format(chartDateLayout))
		cs.Values = append(cs.Values, p.Gravity)
	}
	return cs
}

// NormalizeVesselID canonicalizes a tank code for comparisons ("fv 1" -> "FV1").
func NormalizeVesselID(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
