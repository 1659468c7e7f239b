package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func f(v float64) *float64 { return &v }

func TestNormalizeVesselID(t *testing.T) {
	cases := map[string]string{
		"FV1":    "FV1",
		" fv1 ":  "FV1",
		"fv 10":  "FV10",
		"Fvl\t2": "FVL2",
		"":       "",
		"   ":    "",
	}
	for in, want := range cases {
		if got := NormalizeVesselID(in); got != want {
			t.Fatalf("NormalizeVesselID(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestBatchLabel(t *testing.T) {
	short := VesselState{BatchID: "B-12 Pils"}
	if got := short.BatchLabel(); got != "B-12 Pils" {
		t.Fatalf("short label=%q", got)
	}
	long := VesselState{BatchID: "Ünfiltered Lager Summer Special 2024"}
	got := long.BatchLabel()
	if len([]rune(got)) != 25 || got != "Ünfiltered Lager Summer S" {
		t.Fatalf("long label=%q", got)
	}
}

func TestChartSeries(t *testing.T) {
	v := VesselState{
		AverageOriginalExtract: f(12.2),
		GravityHistory: []GravityPoint{
			{Time: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Gravity: 8},
			{Time: time.Date(2024, 5, 5, 9, 30, 0, 0, time.UTC), Gravity: 2.5},
		},
	}
	want := ChartSeries{
		Labels: []string{"OG", "03/05/2024", "05/05/2024"},
		Values: []float64{12.2, 8, 2.5},
	}
	if diff := cmp.Diff(want, v.ChartSeries()); diff != "" {
		t.Fatalf("chart mismatch (-want +got):\n%s", diff)
	}
	if len(v.GravityHistory) != 2 {
		t.Fatalf("OG point leaked into history")
	}

	noOE := VesselState{GravityHistory: v.GravityHistory[:1]}
	if got := noOE.ChartSeries(); len(got.Labels) != 1 || got.Labels[0] != "03/05/2024" {
		t.Fatalf("chart without OE=%+v", got)
	}

	empty := EmptyVessel("FV2", time.Time{}).ChartSeries()
	if empty.Labels == nil || empty.Values == nil || len(empty.Labels) != 0 {
		t.Fatalf("empty chart must be non-nil and empty: %+v", empty)
	}
}

func TestCleared(t *testing.T) {
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tel := &Telemetry{Temperature: f(1.5)}
	v := VesselState{
		VesselID:           "FV3",
		BatchID:            "B-9",
		Stage:              StageCrashed,
		Gravity:            f(2.1),
		FillVolumeTotal:    1000,
		LastEventTimestamp: at,
		Telemetry:          tel,
		Adjustment:         Adjustment{DexCount: 1},
	}
	want := VesselState{
		VesselID:           "FV3",
		IsEmpty:            true,
		GravityHistory:     []GravityPoint{},
		LastEventTimestamp: at,
		Telemetry:          tel,
		Adjustment:         Adjustment{DexCount: 1},
	}
	if diff := cmp.Diff(want, v.Cleared()); diff != "" {
		t.Fatalf("cleared mismatch (-want +got):\n%s", diff)
	}
}

func TestStageMetricFlags(t *testing.T) {
	cases := []struct {
		stage       Stage
		brite, ferm bool
	}{
		{StageBrite, true, false},
		{StageFermenting, false, true},
		{StageCrashed, false, true},
		{StageDryHop, false, true},
		{StageBrewingDay, false, true},
		{StageUnknown, false, false},
	}
	for _, tc := range cases {
		if got := tc.stage.ShowsBriteMetrics(); got != tc.brite {
			t.Fatalf("%s brite=%v", tc.stage, got)
		}
		if got := tc.stage.ShowsFermentMetrics(); got != tc.ferm {
			t.Fatalf("%s ferment=%v", tc.stage, got)
		}
	}
}

func TestSnapshotVessel(t *testing.T) {
	s := Snapshot{Vessels: []VesselState{EmptyVessel("FV1", time.Time{}), EmptyVessel("FVL2", time.Time{})}}
	if v, ok := s.Vessel(" fvl2"); !ok || v.VesselID != "FVL2" {
		t.Fatalf("lookup fvl2: %+v %v", v, ok)
	}
	if _, ok := s.Vessel("FV9"); ok {
		t.Fatalf("FV9 should not be found")
	}
}
