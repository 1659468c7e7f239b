package engine

import (
	"testing"

	"brewery_dashboard/internal/models"
)

func TestResolveDuplicateBatches(t *testing.T) {
	a := occupied("FV1", "BatchX")
	a.LastEventTimestamp = day(1, 5, 2024)
	b := occupied("FV2", "BatchX")
	b.LastEventTimestamp = day(3, 5, 2024)
	c := occupied("FV3", "BatchY")
	c.LastEventTimestamp = day(2, 5, 2024)
	d := models.EmptyVessel("FV4", day(9, 5, 2024))

	out := ResolveDuplicateBatches([]models.VesselState{a, b, c, d})

	if !out[0].IsEmpty || out[0].BatchID != "" || len(out[0].GravityHistory) != 0 {
		t.Fatalf("older duplicate should be emptied: %+v", out[0])
	}
	if !out[0].LastEventTimestamp.Equal(day(1, 5, 2024)) {
		t.Fatalf("emptied duplicate must keep its timestamp, got %v", out[0].LastEventTimestamp)
	}
	if out[1].IsEmpty || out[1].BatchID != "BatchX" {
		t.Fatalf("newest holder should keep the batch: %+v", out[1])
	}
	if out[2].IsEmpty || out[2].BatchID != "BatchY" {
		t.Fatalf("unrelated batch touched: %+v", out[2])
	}
	if !out[3].IsEmpty {
		t.Fatalf("empty vessel changed: %+v", out[3])
	}
	if a.IsEmpty {
		t.Fatalf("input mutated")
	}
}

func TestResolveDuplicateBatches_TieKeepsFirstVessel(t *testing.T) {
	a := occupied("FV1", "Z")
	b := occupied("FV2", "Z")
	a.LastEventTimestamp = day(1, 5, 2024)
	b.LastEventTimestamp = day(1, 5, 2024)
	out := ResolveDuplicateBatches([]models.VesselState{a, b})
	if out[0].IsEmpty || !out[1].IsEmpty {
		t.Fatalf("tie should keep display order: %+v / %+v", out[0], out[1])
	}
}
