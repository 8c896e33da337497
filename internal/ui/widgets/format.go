package widgets

import "fmt"

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// FormatBytes humanizes a cumulative byte counter.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatRate humanizes a throughput; an idle rate renders as a dash.
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= float64(mb):
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/float64(mb))
	case bytesPerSec >= float64(kb):
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/float64(kb))
	case bytesPerSec > 0:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	default:
		return "—"
	}
}
