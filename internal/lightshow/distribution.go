package lightshow

import "github.com/coreman2200/beatlights/internal/easing"

// Offset spreads value across count selected lights and returns the share
// for the light at rank. For Wave, carry is subtracted from value first and
// curve reshapes the rank fraction. A zero value or an unknown type yields 0.
func (d DistributionType) Offset(rank, count int, value, carry float32, curve easing.Easing) float32 {
	if value == 0 {
		return 0
	}
	switch d {
	case Wave:
		fraction := float32(rank) / float32(max(count, 1))
		fraction = curve.Ease(fraction)
		return fraction * (value - carry)
	case Step:
		return value * float32(rank)
	default:
		return 0
	}
}
