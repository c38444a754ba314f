package controllers

import "testing"

func TestResolvePeriodQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		year    int
		month   int
		wantKey string
		wantErr bool
	}{
		{"period form", "2025-03", 0, 0, "2025-03", false},
		{"year and month form", "", 2025, 3, "2025-03", false},
		{"period wins over year/month", "2024-12", 2025, 3, "2024-12", false},
		{"bad period", "2025-3", 0, 0, "", true},
		{"missing both", "", 0, 0, "", true},
		{"bad month", "", 2025, 13, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := resolvePeriodQuery(tt.raw, tt.year, tt.month)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", period.Key())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if period.Key() != tt.wantKey {
				t.Fatalf("period key = %q, want %q", period.Key(), tt.wantKey)
			}
		})
	}
}
