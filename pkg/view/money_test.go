package view

import "testing"

func TestFormatFCFA(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "0 F CFA"},
		{500, "500 F CFA"},
		{1500, "1 500 F CFA"},
		{50000, "50 000 F CFA"},
		{1234567, "1 234 567 F CFA"},
		{-800, "-800 F CFA"},
		{-50000, "-50 000 F CFA"},
	}
	for _, tt := range tests {
		if got := FormatFCFA(tt.amount); got != tt.want {
			t.Errorf("FormatFCFA(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
