package domain

// Protocol is the transport protocol of a connection as reported by nettop.
type Protocol struct {
	kind  protocolKind
	label string // only for Other
}

type protocolKind int

const (
	protocolTCP protocolKind = iota
	protocolUDP
	protocolOther
)

var (
	TCP = Protocol{kind: protocolTCP}
	UDP = Protocol{kind: protocolUDP}
)

// OtherProtocol wraps an unrecognized protocol tag so it is carried
// through unchanged.
func OtherProtocol(tag string) Protocol {
	return Protocol{kind: protocolOther, label: tag}
}

func (p Protocol) String() string {
	switch p.kind {
	case protocolTCP:
		return "TCP"
	case protocolUDP:
		return "UDP"
	default:
		return p.label
	}
}

// Connection is one socket of a process for the current reporting cycle.
// Connections have no identity across cycles; each snapshot rebuilds them.
type Connection struct {
	LocalAddr  string
	LocalPort  uint16
	RemoteAddr string
	RemotePort uint16
	Protocol   Protocol
	State      string // carried through from the source, not interpreted
	Iface      string
	BytesIn    uint64
	BytesOut   uint64
	Hostname   string // "" until reverse DNS resolves (or when it never will)
}

// Process is one traffic-accounted OS process. Identity across cycles is
// the (Name, Pid) pair; Pid 0 is the "unknown" sentinel.
type Process struct {
	Name        string
	Pid         uint32
	Path        string // resolved executable path, "" when lookup failed
	Connections []Connection
	BytesIn     uint64
	BytesOut    uint64
	RateIn      float64 // bytes/sec, 0 until a prior cycle exists
	RateOut     float64
}

func (p Process) ConnectionCount() int {
	return len(p.Connections)
}

// Snapshot is one fully parsed, rate-computed picture of all processes.
// Totals are computed once at construction so they can never diverge from
// the process list.
type Snapshot struct {
	Processes        []Process
	TotalBytesIn     uint64
	TotalBytesOut    uint64
	TotalRateIn      float64
	TotalRateOut     float64
	TotalConnections int
}

func NewSnapshot(processes []Process) Snapshot {
	s := Snapshot{Processes: processes}
	for _, p := range processes {
		s.TotalBytesIn += p.BytesIn
		s.TotalBytesOut += p.BytesOut
		s.TotalRateIn += p.RateIn
		s.TotalRateOut += p.RateOut
		s.TotalConnections += p.ConnectionCount()
	}
	return s
}

// SortField selects the column the process list is ordered by.
type SortField int

const (
	SortName SortField = iota
	SortPid
	SortConnections
	SortBytesIn
	SortBytesOut
	SortRateIn
	SortRateOut
)

// Next advances through the fixed sort ring, wrapping after RateOut.
func (f SortField) Next() SortField {
	switch f {
	case SortName:
		return SortPid
	case SortPid:
		return SortConnections
	case SortConnections:
		return SortBytesIn
	case SortBytesIn:
		return SortBytesOut
	case SortBytesOut:
		return SortRateIn
	case SortRateIn:
		return SortRateOut
	default:
		return SortName
	}
}

func (f SortField) Label() string {
	switch f {
	case SortName:
		return "Name"
	case SortPid:
		return "PID"
	case SortConnections:
		return "Conn"
	case SortBytesIn:
		return "Down"
	case SortBytesOut:
		return "Up"
	case SortRateIn:
		return "Rate In"
	default:
		return "Rate Out"
	}
}
