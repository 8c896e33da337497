package widgets

import (
	"math"
	"strings"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark8 renders vals (normalized 0..1) as a fixed-width sparkline,
// sampling evenly across the slice.
func Spark8(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	step := float64(len(vals)) / float64(width)
	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(math.Min(float64(len(vals)-1), math.Floor(float64(i)*step)))
		v := clamp01(vals[idx])
		level := int(math.Round(v * float64(len(blocks)-1)))
		if level < 0 {
			level = 0
		}
		if level > len(blocks)-1 {
			level = len(blocks) - 1
		}
		b.WriteRune(blocks[level])
	}
	return b.String()
}

var eighths = []rune("▏▎▍▌▋▊▉█")

// RateBar renders rate relative to maxRate as a small horizontal bar with
// eighth-block resolution, width runes wide.
func RateBar(rate, maxRate float64, width int) string {
	if width <= 0 {
		return ""
	}
	if maxRate <= 0 || rate <= 0 || math.IsNaN(rate) {
		return strings.Repeat(" ", width)
	}
	ratio := math.Min(rate/maxRate, 1)
	filled := ratio * float64(width)
	full := int(filled)
	partial := int((filled - float64(full)) * 8)

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('█')
	}
	if full < width && partial > 0 {
		b.WriteRune(eighths[min(partial, 7)])
	}
	bar := b.String()
	for len([]rune(bar)) < width {
		bar += " "
	}
	return bar
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
