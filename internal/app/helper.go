package app

import "strings"

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// pad left-aligns s into a cell of width w, truncating with an ellipsis
// when it does not fit.
func pad(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
