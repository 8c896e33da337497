package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nmtri/netwatch/internal/domain"
	"github.com/nmtri/netwatch/internal/ui/styles"
	"github.com/nmtri/netwatch/internal/ui/widgets"
)

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	head := m.renderHeader()

	var body string
	switch m.tab {
	case TabProcesses:
		body = m.renderProcesses()
	case TabConnections:
		body = m.renderConnections()
	default:
		body = m.renderOverview()
	}

	spark := m.renderSparkline()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, head, body, spark, footer)
}

func (m Model) renderHeader() string {
	var tabs []string
	for _, t := range []Tab{TabProcesses, TabConnections, TabOverview} {
		label := " " + t.Label() + " "
		if t == m.tab {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}

	stats := fmt.Sprintf("▼ %s ▲ %s │ %d conn",
		widgets.FormatRate(m.snapshot.TotalRateIn),
		widgets.FormatRate(m.snapshot.TotalRateOut),
		m.snapshot.TotalConnections,
	)
	if m.paused {
		stats += " " + styles.Paused.Render("[PAUSED]")
	}
	if m.err != nil {
		// last fetch failed; the numbers on screen are from the cycle before
		stats += " " + styles.Stale.Render("[STALE]")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + stats
}

// column widths for the processes table; the name column soaks up the rest
func (m Model) processColWidths() (wName, wPid, wConn, wDown, wUp, wRateIn, wRateOut int) {
	wPid, wConn, wDown, wUp, wRateIn, wRateOut = 7, 6, 10, 10, 12, 19
	wName = m.width - (wPid + wConn + wDown + wUp + wRateIn + wRateOut) - 2
	if wName < 16 {
		wName = 16
	}
	return
}

func (m Model) renderProcesses() string {
	wName, wPid, wConn, wDown, wUp, wRateIn, wRateOut := m.processColWidths()

	sortMark := func(f domain.SortField, label string) string {
		if f == m.sortField {
			return label + " ▼"
		}
		return label
	}

	header := styles.Header.Render("  " +
		pad(sortMark(domain.SortName, "Process"), wName) +
		pad(sortMark(domain.SortPid, "PID"), wPid) +
		pad(sortMark(domain.SortConnections, "Conn"), wConn) +
		pad(sortMark(domain.SortBytesIn, "Down"), wDown) +
		pad(sortMark(domain.SortBytesOut, "Up"), wUp) +
		pad(sortMark(domain.SortRateIn, "Rate In"), wRateIn) +
		pad(sortMark(domain.SortRateOut, "Rate Out"), wRateOut))

	filtered := m.filteredProcesses()

	var maxRate float64
	for _, p := range m.snapshot.Processes {
		if r := p.RateIn + p.RateOut; r > maxRate {
			maxRate = r
		}
	}

	lines := []string{header}
	start, end := m.visibleWindow(len(filtered), m.processIndex)
	for i := start; i < end; i++ {
		p := filtered[i]
		bar := widgets.RateBar(p.RateIn+p.RateOut, maxRate, 6)
		row := pad(p.Name, wName) +
			pad(fmt.Sprintf("%d", p.Pid), wPid) +
			pad(fmt.Sprintf("%d", p.ConnectionCount()), wConn) +
			pad(widgets.FormatBytes(p.BytesIn), wDown) +
			pad(widgets.FormatBytes(p.BytesOut), wUp) +
			pad(widgets.FormatRate(p.RateIn), wRateIn) +
			pad(widgets.FormatRate(p.RateOut)+" "+bar, wRateOut)

		if i == m.processIndex {
			lines = append(lines, styles.Selected.Render("▸ "+row))
		} else {
			lines = append(lines, styles.Rate(p.RateIn+p.RateOut).Render("  "+row))
		}
	}
	if len(filtered) == 0 {
		lines = append(lines, styles.Faint.Render("  no matching processes"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderConnections() string {
	wProc, wProto, wLocal, wState, wDown, wUp := 20, 6, 22, 12, 10, 10
	wRemote := m.width - (wProc + wProto + wLocal + wState + wDown + wUp) - 2
	if wRemote < 20 {
		wRemote = 20
	}

	header := styles.Header.Render("  " +
		pad("Process", wProc) + pad("Proto", wProto) + pad("Local", wLocal) +
		pad("Remote", wRemote) + pad("State", wState) +
		pad("Down", wDown) + pad("Up", wUp))

	rows := m.filteredConnections()

	lines := []string{header}
	start, end := m.visibleWindow(len(rows), m.connectionIndex)
	for i := start; i < end; i++ {
		r := rows[i]
		row := pad(r.procName, wProc) +
			pad(r.conn.Protocol.String(), wProto) +
			pad(localEndpoint(r.conn), wLocal) +
			pad(remoteEndpoint(r.conn), wRemote) +
			pad(r.conn.State, wState) +
			pad(widgets.FormatBytes(r.conn.BytesIn), wDown) +
			pad(widgets.FormatBytes(r.conn.BytesOut), wUp)

		if i == m.connectionIndex {
			lines = append(lines, styles.Selected.Render("▸ "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}
	if len(rows) == 0 {
		lines = append(lines, styles.Faint.Render("  no matching connections"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderOverview() string {
	s := m.snapshot

	totals := fmt.Sprintf(
		"Total Down: %s  Total Up: %s\nRate In: %s  Rate Out: %s  Connections: %d\nProcesses: %d",
		styles.Download.Render(widgets.FormatBytes(s.TotalBytesIn)),
		styles.Upload.Render(widgets.FormatBytes(s.TotalBytesOut)),
		styles.Rate(s.TotalRateIn).Render(widgets.FormatRate(s.TotalRateIn)),
		styles.Rate(s.TotalRateOut).Render(widgets.FormatRate(s.TotalRateOut)),
		s.TotalConnections,
		len(s.Processes),
	)

	var top []string
	for i, p := range s.Processes {
		if i >= 10 {
			break
		}
		top = append(top, fmt.Sprintf("%s ▼%s ▲%s",
			pad(p.Name, 24),
			styles.Rate(p.RateIn).Render(widgets.FormatRate(p.RateIn)),
			styles.Rate(p.RateOut).Render(widgets.FormatRate(p.RateOut)),
		))
	}
	if len(top) == 0 {
		top = append(top, styles.Faint.Render("no traffic yet"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Box.Render(styles.Title.Render("Overview")+"\n"+totals),
		styles.Box.Render(styles.Title.Render("Top Processes")+"\n"+strings.Join(top, "\n")),
	)
}

func (m Model) renderSparkline() string {
	width := m.width - 2
	if width < 10 {
		width = 10
	}

	var maxRate float64
	for _, v := range m.bandwidthHistory {
		if v > maxRate {
			maxRate = v
		}
	}
	norm := make([]float64, len(m.bandwidthHistory))
	if maxRate > 0 {
		for i, v := range m.bandwidthHistory {
			norm[i] = v / maxRate
		}
	}

	spark := widgets.Spark8(norm, width)
	if spark == "" {
		spark = strings.Repeat(" ", width)
	}
	return styles.Download.Render(" " + spark)
}

func (m Model) renderFooter() string {
	if m.filtering {
		return m.filterInput.View()
	}
	if m.filterText != "" {
		return styles.Footer.Render(fmt.Sprintf(
			"Tab: switch │ j/k: nav │ s: sort (%s) │ /: filter [%s] │ ?: help │ q: quit",
			m.sortField.Label(), m.filterText))
	}
	return styles.Footer.Render(fmt.Sprintf(
		"Tab: switch │ j/k: nav │ s: sort (%s) │ /: filter │ Enter: drill │ p: pause │ ?: help │ q: quit",
		m.sortField.Label()))
}

func (m Model) renderHelp() string {
	bindings := [][2]string{
		{"Tab / Shift-Tab", "Switch between tabs"},
		{"j / k / ↑ / ↓", "Navigate rows"},
		{"Enter", "Drill into process connections"},
		{"s", "Cycle sort field"},
		{"/", "Filter processes/connections"},
		{"Esc", "Clear filter / close help"},
		{"p", "Pause/resume data collection"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("netwatch — Help"))
	b.WriteString("\n\n")
	for _, kv := range bindings {
		b.WriteString(styles.Header.Render(pad(kv[0], 18)))
		b.WriteString(kv[1])
		b.WriteString("\n")
	}

	box := styles.Box.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// visibleWindow keeps the selected row inside the rows that fit on screen.
func (m Model) visibleWindow(total, selected int) (int, int) {
	// header(1) + table header(1) + sparkline(1) + footer(1) + padding
	visible := m.height - 6
	if m.height == 0 || visible >= total || visible < 1 {
		return 0, total
	}
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
	}
	return start, end
}
