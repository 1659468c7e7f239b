package engine

import (
	"math"
	"testing"
)

func TestPlatoToSG(t *testing.T) {
	if got := PlatoToSG(0); !near(got, 1.00001) {
		t.Fatalf("SG(0): want 1.00001, got %v", got)
	}
	if got := PlatoToSG(12); math.Abs(got-1.04842) > 1e-4 {
		t.Fatalf("SG(12): want ~1.04842, got %v", got)
	}
}

func TestABVModels_KnownExtracts(t *testing.T) {
	a, ok := ABVLinear(12.0, 2.5)
	if !ok || math.Abs(a-4.9006) > 1e-3 {
		t.Fatalf("linear: want ~4.9006, got %v (ok=%v)", a, ok)
	}
	b, ok := ABVSpecificGravity(12.0, 2.5)
	if !ok || math.Abs(b-5.1481) > 1e-3 {
		t.Fatalf("specific gravity: want ~5.1481, got %v (ok=%v)", b, ok)
	}
	mean, ok := CombinedABV(12.0, 2.5)
	if !ok {
		t.Fatalf("combined undefined")
	}
	if got := RoundTenth(mean); got != 5.0 {
		t.Fatalf("rounded combined: want 5.0, got %v", got)
	}
	// same inputs, same answer
	again, _ := CombinedABV(12.0, 2.5)
	if again != mean {
		t.Fatalf("not reproducible: %v vs %v", mean, again)
	}
}

func TestABVModels_Undefined(t *testing.T) {
	// 1.775 - SG(oe) crosses zero well above any real wort; a NaN input must not leak through.
	if _, ok := ABVLinear(math.NaN(), 2); ok {
		t.Fatalf("linear should be undefined for NaN")
	}
	if _, ok := ABVSpecificGravity(math.Inf(1), 2); ok {
		t.Fatalf("specific gravity should be undefined for +Inf")
	}
	if _, ok := CombinedABV(math.NaN(), 2); ok {
		t.Fatalf("combined should be undefined when a model is")
	}
}

func TestEffectiveOE(t *testing.T) {
	tests := []struct {
		name   string
		oe     float64
		volume float64
		dex    int
		want   float64
	}{
		{"no dex", 12, 1000, 0, 12},
		{"one unit in 1000 L", 12, 1000, 1, 14.3},
		{"two units in 500 L", 12, 500, 2, 12 + 2*4.6},
		{"no volume", 12, 0, 3, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveOE(tt.oe, tt.volume, tt.dex, DefaultPrimingConstant); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDilute(t *testing.T) {
	abv, vol := Dilute(5.2, 1000, 50, 0.8)
	if !near(vol, 1040) {
		t.Fatalf("volume: want 1040, got %v", vol)
	}
	if !near(abv, 5.2*1000/1040) {
		t.Fatalf("abv: want %v, got %v", 5.2*1000/1040, abv)
	}

	abv, vol = Dilute(5.2, 1000, 0, 0.8)
	if abv != 5.2 || vol != 1000 {
		t.Fatalf("no fruit should be a no-op, got %v %v", abv, vol)
	}

	abv, vol = Dilute(5.2, 0, 100, 0.8)
	if abv != 5.2 || !near(vol, 80) {
		t.Fatalf("zero base volume: got %v %v", abv, vol)
	}
}
