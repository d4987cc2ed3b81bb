package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSL_String(t *testing.T) {
	tests := []struct {
		name     string
		color    HSL
		expected string
	}{
		{
			name:     "integer components",
			color:    HSL{H: 189, S: 70, L: 75},
			expected: "hsl(189, 70%, 75%)",
		},
		{
			name:     "fractional lightness",
			color:    HSL{H: 270, S: 70, L: 77.5},
			expected: "hsl(270, 70%, 77.5%)",
		},
		{
			name:     "gray",
			color:    HSL{H: 0, S: 0, L: 80},
			expected: "hsl(0, 0%, 80%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.color.String())
		})
	}
}

func TestHSL_WithLightness(t *testing.T) {
	base := HSL{H: 145, S: 65, L: 70}

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"within range", 72.5, 72.5},
		{"too dark", 5, MinLightness},
		{"too light", 97.5, MaxLightness},
		{"lower bound", MinLightness, MinLightness},
		{"upper bound", MaxLightness, MaxLightness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := base.WithLightness(tt.input)
			assert.Equal(t, tt.expected, result.L)
			assert.Equal(t, base.H, result.H)
			assert.Equal(t, base.S, result.S)
		})
	}

	// The receiver is a value, so the original must be untouched.
	assert.Equal(t, 70.0, base.L)
}
