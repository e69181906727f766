package utils

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"already two decimals", 12.34, 12.34},
		{"rounds down", 12.344, 12.34},
		{"rounds up", 12.345, 12.35},
		{"rounds half up", 0.005, 0.01},
		{"negative half away from zero", -0.005, -0.01},
		{"integer unchanged", 800, 800},
		{"zero", 0, 0},
		{"repeating division", 10000.0 / 3.0, 3333.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.expected {
				t.Errorf("Round2(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}
