package utils

import "strconv"

// FormatFCFA renders an integer FCFA amount with French-style thousands
// separators, e.g. 3247870 -> "3 247 870 FCFA".
func FormatFCFA(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(s)+len(s)/3+6)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	formatted := string(out) + " FCFA"
	if neg {
		return "-" + formatted
	}
	return formatted
}
