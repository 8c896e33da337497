package styles

import "github.com/charmbracelet/lipgloss"

var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	Tab       = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	Header    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	Footer    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Box       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	Selected  = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("8"))
	Paused    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	Stale     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	Download  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	Upload    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	Faint     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Rate picks a style by how hot a throughput value is: red past 1 MB/s,
// yellow past 100 KB/s, green for anything moving, faint when idle.
func Rate(bytesPerSec float64) lipgloss.Style {
	switch {
	case bytesPerSec > 1_000_000:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case bytesPerSec > 100_000:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case bytesPerSec > 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return Faint
	}
}
