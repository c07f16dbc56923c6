package users

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already e164", "+22370000001", "+22370000001"},
		{"spaces and dashes", "+223 70-00-00-01", "+22370000001"},
		{"local 8 digits", "70 00 00 01", "+22370000001"},
		{"double zero prefix", "0022370000001", "+22370000001"},
		{"foreign with plus", "+33612345678", "+33612345678"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.in); got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
