package calculator

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{"slash date", "2025/01/15", "2025-01-15", false},
		{"dash date", "2025-01-15", "2025-01-15", false},
		{"slash with time", "2025/01/15 08:30", "2025-01-15", false},
		{"dash with time", "2025-01-15 08:30", "2025-01-15", false},
		{"month day only", "01/15", "2025-01-15", false},
		{"month day without zeros", "1/5", "2025-01-05", false},
		{"compact", "20250115", "2025-01-15", false},
		{"surrounding spaces", "  2025-01-15  ", "2025-01-15", false},
		{"empty", "", "", true},
		{"garbage", "next tuesday", "", true},
		{"wrong separator", "2025.01.15", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.raw, got.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestParseDateErrorMessage(t *testing.T) {
	_, err := ParseDate("whenever", time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	var dateErr *UnparseableDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected UnparseableDateError, got %T", err)
	}
	if dateErr.Raw != "whenever" {
		t.Errorf("error should carry the raw input, got %q", dateErr.Raw)
	}
}

func TestParsePSI(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{"short code", "30", 3000, true},
		{"short code 40", "40", 4000, true},
		{"full code", "3000", 3000, true},
		{"with psi suffix", "40psi", 4000, true},
		{"uppercase psi", "40PSI", 4000, true},
		{"psi with space", "3000 psi", 3000, true},
		{"single digit", "5", 500, true},
		{"mixed garbage around digits", "a30b", 3000, true},
		{"no digits", "psi", 0, false},
		{"empty", "", 0, false},
		{"letters only", "strong", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePSI(tt.raw)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("ParsePSI(%q) = (%d, %v), expected (%d, %v)", tt.raw, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
