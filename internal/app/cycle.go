package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmtri/netwatch/internal/dns"
	"github.com/nmtri/netwatch/internal/domain"
	"github.com/nmtri/netwatch/internal/rate"
)

// fetch pulls one snapshot off the update loop. One attempt per cycle; a
// slow source is cut off at the polling interval rather than retried.
func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.interval)
		defer cancel()

		processes, err := m.repo.Snapshot(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return processesMsg(processes)
	}
}

// applyProcesses runs the per-cycle update sequence on a freshly parsed
// process list: merge finished DNS lookups, derive rates against the
// previous cycle, enrich hostnames, sort, rebuild the snapshot and its
// totals, extend the bandwidth history, clamp the selection.
func (m *Model) applyProcesses(processes []domain.Process) {
	m.resolver.Drain(m.dnsCache, m.dnsPending)

	rate.Apply(processes, m.prevBytes, m.interval.Seconds())
	m.prevBytes = rate.Capture(processes)

	dns.Enrich(processes, m.dnsCache, m.dnsPending, m.resolver)

	sortProcesses(processes, m.sortField)
	m.snapshot = domain.NewSnapshot(processes)

	m.pushHistory(m.snapshot.TotalRateIn + m.snapshot.TotalRateOut)
	m.clampSelection()
	m.err = nil
}

func (m *Model) pushHistory(totalRate float64) {
	if len(m.bandwidthHistory) >= bandwidthHistoryLen {
		m.bandwidthHistory = m.bandwidthHistory[1:]
	}
	m.bandwidthHistory = append(m.bandwidthHistory, totalRate)
}

func (m *Model) clampSelection() {
	if max := len(m.filteredProcesses()) - 1; m.processIndex > max {
		m.processIndex = maxInt(max, 0)
	}
	if max := len(m.filteredConnections()) - 1; m.connectionIndex > max {
		m.connectionIndex = maxInt(max, 0)
	}
}
