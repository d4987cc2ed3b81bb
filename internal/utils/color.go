package utils

import (
	"strconv"
)

// Display-safe lightness bounds for derived colors.
const (
	MinLightness = 20.0
	MaxLightness = 90.0
)

// HSL is a color in hue/saturation/lightness space.
// H is in degrees [0,360), S and L are percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String renders the color in CSS notation.
// Example: HSL{H: 189, S: 70, L: 77.5} -> "hsl(189, 70%, 77.5%)"
func (c HSL) String() string {
	return "hsl(" + formatComponent(c.H) + ", " + formatComponent(c.S) + "%, " + formatComponent(c.L) + "%)"
}

// WithLightness returns a copy of c with L replaced by l clamped to the
// display-safe range.
func (c HSL) WithLightness(l float64) HSL {
	c.L = ClampLightness(l)
	return c
}

// ClampLightness bounds l to [MinLightness, MaxLightness].
func ClampLightness(l float64) float64 {
	if l < MinLightness {
		return MinLightness
	}
	if l > MaxLightness {
		return MaxLightness
	}
	return l
}

func formatComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
