package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmtri/netwatch/internal/domain"
)

// connRow is one line of the Connections tab: a connection together with
// its owning process name.
type connRow struct {
	procName string
	conn     domain.Connection
}

// filteredProcesses returns the processes matching the active filter, in
// snapshot (already sorted) order. The filter is a case-insensitive
// substring of the name, the resolved path, or the decimal pid.
func (m Model) filteredProcesses() []domain.Process {
	filter := strings.ToLower(m.filterText)
	if filter == "" {
		return m.snapshot.Processes
	}

	var out []domain.Process
	for _, p := range m.snapshot.Processes {
		if strings.Contains(strings.ToLower(p.Name), filter) ||
			strings.Contains(strings.ToLower(p.Path), filter) ||
			strings.Contains(strconv.FormatUint(uint64(p.Pid), 10), filter) {
			out = append(out, p)
		}
	}
	return out
}

// filteredConnections flattens the snapshot into connection rows matching
// the active filter against process name, local and remote endpoints (the
// hostname stands in for the remote address once resolved) and protocol.
func (m Model) filteredConnections() []connRow {
	filter := strings.ToLower(m.filterText)

	var out []connRow
	for _, p := range m.snapshot.Processes {
		for _, c := range p.Connections {
			if filter != "" && !connMatches(p.Name, c, filter) {
				continue
			}
			out = append(out, connRow{procName: p.Name, conn: c})
		}
	}
	return out
}

func connMatches(procName string, c domain.Connection, filter string) bool {
	return strings.Contains(strings.ToLower(procName), filter) ||
		strings.Contains(strings.ToLower(localEndpoint(c)), filter) ||
		strings.Contains(strings.ToLower(remoteEndpoint(c)), filter) ||
		strings.Contains(strings.ToLower(c.Protocol.String()), filter)
}

// localEndpoint renders "addr:port", leaving off a zero port.
func localEndpoint(c domain.Connection) string {
	if c.LocalPort == 0 {
		return c.LocalAddr
	}
	return fmt.Sprintf("%s:%d", c.LocalAddr, c.LocalPort)
}

// remoteEndpoint prefers the resolved hostname over the raw address.
func remoteEndpoint(c domain.Connection) string {
	addr := c.RemoteAddr
	if c.Hostname != "" {
		addr = c.Hostname
	}
	if c.RemotePort == 0 {
		return addr
	}
	return fmt.Sprintf("%s:%d", addr, c.RemotePort)
}
