package handlers

import "testing"

func TestCSVField(t *testing.T) {
	tests := []struct {
		raw   string
		field string
		ok    bool
	}{
		{"date", "date", true},
		{"日期", "date", true},
		{"工程", "project", true},
		{"project_name", "project", true},
		{"車號", "truck", true},
		{"司機", "truck", true},
		{"載量", "load", true},
		{"強度", "psi", true},
		{"距離", "distance", true},
		{"備註", "note", true},
		{"LOAD", "load", true},
		{"  truck  ", "truck", true},
		// Excel-exported CSVs prefix the first header cell with a BOM.
		{"\uFEFFdate", "date", true},
		{"\uFEFF日期", "date", true},
		{"amount", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		field, ok := csvField(tt.raw)
		if ok != tt.ok || field != tt.field {
			t.Errorf("csvField(%q) = %q, %v; want %q, %v", tt.raw, field, ok, tt.field, tt.ok)
		}
	}
}
