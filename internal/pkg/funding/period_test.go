package funding

import "testing"

func TestNewPeriod(t *testing.T) {
	tests := []struct {
		year    int
		month   int
		wantErr bool
	}{
		{2025, 1, false},
		{2025, 12, false},
		{2025, 0, true},
		{2025, 13, true},
		{1999, 6, true},
		{10000, 6, true},
	}

	for _, tt := range tests {
		_, err := NewPeriod(tt.year, tt.month)
		if (err != nil) != tt.wantErr {
			t.Fatalf("NewPeriod(%d, %d) error = %v, wantErr %v", tt.year, tt.month, err, tt.wantErr)
		}
	}
}

func TestPeriodKey(t *testing.T) {
	p, err := NewPeriod(2025, 3)
	if err != nil {
		t.Fatalf("NewPeriod: %v", err)
	}
	if got := p.Key(); got != "2025-03" {
		t.Fatalf("Key() = %q, want %q", got, "2025-03")
	}
	if got := p.String(); got != "March 2025" {
		t.Fatalf("String() = %q, want %q", got, "March 2025")
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "2025-03", want: Period{Year: 2025, Month: 3}},
		{in: " 2025-11 ", want: Period{Year: 2025, Month: 11}},
		{in: "2025-13", wantErr: true},
		{in: "2025-3", wantErr: true},
		{in: "25-03", wantErr: true},
		{in: "garbage", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParsePeriod(%q) expected error, got %+v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePeriod(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePeriod(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
