package engine

import "math"

// Default adjustment constants.
const (
	DefaultPrimingConstant = 2.3 // °P added per dextrose unit per 1000 L
	DefaultFruitEfficiency = 0.8 // fraction of fruit volume that ends up as liquid
)

// PlatoToSG converts degrees Plato to specific gravity.
func PlatoToSG(p float64) float64 {
	return 1.00001 +
		0.0038661*p +
		0.000013488*p*p +
		0.000000043074*p*p*p
}

// ABVLinear is the linear approximation (OE-AE)/(2.0665-0.010665*OE).
func ABVLinear(oe, ae float64) (float64, bool) {
	den := 2.0665 - 0.010665*oe
	if den == 0 {
		return 0, false
	}
	return finite((oe - ae) / den)
}

// ABVSpecificGravity converts both extracts to SG and applies
// [76.08(OG-FG)/(1.775-OG)]*(FG/0.794).
func ABVSpecificGravity(oe, ae float64) (float64, bool) {
	og, fg := PlatoToSG(oe), PlatoToSG(ae)
	den := 1.775 - og
	if den == 0 {
		return 0, false
	}
	return finite((76.08 * (og - fg) / den) * (fg / 0.794))
}

// CombinedABV is the unrounded mean of both models, defined only when both are.
func CombinedABV(oe, ae float64) (float64, bool) {
	a, okA := ABVLinear(oe, ae)
	b, okB := ABVSpecificGravity(oe, ae)
	if !okA || !okB {
		return 0, false
	}
	return (a + b) / 2, true
}

// RoundTenth rounds to one decimal place.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// EffectiveOE raises oe for dex dextrose additions dissolved in volume liters.
// Without a positive volume the addition cannot be scaled and oe is returned as is.
func EffectiveOE(oe, volume float64, dex int, primingConstant float64) float64 {
	if dex == 0 || volume <= 0 {
		return oe
	}
	return oe + (primingConstant/(volume/1000))*float64(dex)
}

// Dilute adds fruit (scaled by efficiency) to base liters and scales abv by
// base/adjusted. It returns the diluted abv and the adjusted volume.
func Dilute(abv, base, fruit, efficiency float64) (float64, float64) {
	added := fruit * efficiency
	if added <= 0 {
		return abv, base
	}
	adjusted := base + added
	if base <= 0 {
		return abv, adjusted
	}
	return abv * base / adjusted, adjusted
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
