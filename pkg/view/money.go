package view

import "strconv"

// FormatFCFA renders an integer amount of CFA francs for display,
// e.g. 1500 -> "1 500 F CFA". XOF has no minor unit.
func FormatFCFA(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.Itoa(amount)
	// group thousands with narrow spaces (plain space here)
	n := len(s)
	if n > 3 {
		var out []byte
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				out = append(out, ' ')
			}
			out = append(out, c)
		}
		s = string(out)
	}
	if neg {
		s = "-" + s
	}
	return s + " F CFA"
}
