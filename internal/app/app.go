package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmtri/netwatch/internal/dns"
	"github.com/nmtri/netwatch/internal/domain"
	"github.com/nmtri/netwatch/internal/rate"
)

// Tab is one of the three main views.
type Tab int

const (
	TabProcesses Tab = iota
	TabConnections
	TabOverview
)

// Next cycles Processes → Connections → Overview → Processes.
func (t Tab) Next() Tab {
	switch t {
	case TabProcesses:
		return TabConnections
	case TabConnections:
		return TabOverview
	default:
		return TabProcesses
	}
}

func (t Tab) Prev() Tab {
	switch t {
	case TabProcesses:
		return TabOverview
	case TabConnections:
		return TabProcesses
	default:
		return TabConnections
	}
}

func (t Tab) Label() string {
	switch t {
	case TabProcesses:
		return "Processes"
	case TabConnections:
		return "Connections"
	default:
		return "Overview"
	}
}

// samples kept for the bandwidth trend sparkline
const bandwidthHistoryLen = 60

type Model struct {
	repo     domain.TrafficRepo
	resolver *dns.Resolver
	interval time.Duration
	log      *slog.Logger

	tab             Tab
	snapshot        domain.Snapshot
	processIndex    int
	connectionIndex int
	sortField       domain.SortField
	filterText      string
	filterInput     textinput.Model
	filtering       bool
	showHelp        bool
	paused          bool

	bandwidthHistory []float64

	// cross-cycle state, touched only by the single-threaded update loop
	prevBytes  map[rate.Key]rate.Bytes
	dnsCache   dns.Cache
	dnsPending dns.Pending

	width, height int
	err           error
}

func New(repo domain.TrafficRepo, resolver *dns.Resolver, sortField domain.SortField, interval time.Duration, log *slog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "Filter: "
	ti.CharLimit = 64

	return Model{
		repo:        repo,
		resolver:    resolver,
		interval:    interval,
		log:         log,
		tab:         TabProcesses,
		sortField:   sortField,
		filterInput: ti,
		prevBytes:   make(map[rate.Key]rate.Bytes),
		dnsCache:    make(dns.Cache),
		dnsPending:  make(dns.Pending),
	}
}

type tickMsg struct{}
type processesMsg []domain.Process
type errMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if m.paused {
			// frozen: no fetch, no DNS drain, nothing moves
			return m, m.tick()
		}
		return m, tea.Batch(m.fetch(), m.tick())

	case processesMsg:
		if m.paused {
			// a fetch that was in flight when pause hit; drop it
			return m, nil
		}
		m.applyProcesses(msg)
		return m, nil

	case errMsg:
		// skip the cycle, keep showing the previous snapshot
		m.err = msg.err
		m.log.Warn("snapshot failed", "err", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.applyFilter()
			return m, nil
		case "esc":
			m.cancelFilter()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.tab = m.tab.Next()
	case "shift+tab":
		m.tab = m.tab.Prev()

	case "j", "down":
		m.navDown()
	case "k", "up":
		m.navUp()

	case "s":
		m.cycleSort()

	case "/":
		m.enterFilter()
		return m, textinput.Blink

	case "esc":
		m.cancelFilter()

	case "p":
		m.paused = !m.paused

	case "?":
		m.showHelp = true

	case "enter":
		m.drillDown()
	}

	return m, nil
}

func (m *Model) enterFilter() {
	m.filtering = true
	m.filterInput.SetValue("")
	m.filterInput.Focus()
}

func (m *Model) applyFilter() {
	m.filtering = false
	m.filterText = m.filterInput.Value()
	m.filterInput.Blur()
}

func (m *Model) cancelFilter() {
	m.filtering = false
	m.filterText = ""
	m.filterInput.SetValue("")
	m.filterInput.Blur()
}

// drillDown narrows the Connections tab to the selected process by reusing
// the filter mechanism. Only meaningful from the Processes tab.
func (m *Model) drillDown() {
	if m.tab != TabProcesses {
		return
	}
	filtered := m.filteredProcesses()
	if m.processIndex < len(filtered) {
		name := filtered[m.processIndex].Name
		m.filterText = name
		m.filterInput.SetValue(name)
	}
	m.tab = TabConnections
	m.connectionIndex = 0
}

func (m *Model) cycleSort() {
	m.sortField = m.sortField.Next()
	// re-sort in place so a paused view follows the new order too
	sortProcesses(m.snapshot.Processes, m.sortField)
}

func (m *Model) navUp() {
	switch m.tab {
	case TabProcesses:
		if m.processIndex > 0 {
			m.processIndex--
		}
	case TabConnections:
		if m.connectionIndex > 0 {
			m.connectionIndex--
		}
	}
}

func (m *Model) navDown() {
	switch m.tab {
	case TabProcesses:
		if max := len(m.filteredProcesses()) - 1; m.processIndex < max {
			m.processIndex++
		}
	case TabConnections:
		if max := len(m.filteredConnections()) - 1; m.connectionIndex < max {
			m.connectionIndex++
		}
	}
}
