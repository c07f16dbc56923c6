package handlers

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		// page math must follow the size actually applied, not a
		// default: 45 rows at 5 per page is 9 pages, not 3.
		{45, 5, 9},
		{45, 50, 1},
		{100, 0, 1},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
