package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/netwatch/internal/domain"
)

func filterFixture() domain.Snapshot {
	return domain.NewSnapshot([]domain.Process{
		{Name: "Firefox", Pid: 4211, Path: "/Applications/Firefox.app/Contents/MacOS/firefox",
			BytesIn: 1,
			Connections: []domain.Connection{
				{LocalAddr: "192.168.1.20", LocalPort: 50311, RemoteAddr: "142.250.74.36", RemotePort: 443,
					Protocol: domain.TCP, Hostname: "fra24s01-in-f4.1e100.net"},
			}},
		{Name: "mDNSResponder", Pid: 417, BytesIn: 1,
			Connections: []domain.Connection{
				{LocalAddr: "*", LocalPort: 5353, RemoteAddr: "*", Protocol: domain.UDP},
			}},
		{Name: "sshd", Pid: 77, Path: "/usr/sbin/sshd", BytesIn: 1,
			Connections: []domain.Connection{
				{LocalAddr: "192.168.1.20", LocalPort: 22, RemoteAddr: "192.168.1.77", RemotePort: 61022,
					Protocol: domain.TCP},
			}},
	})
}

func TestProcessFilterMatchesNamePathPid(t *testing.T) {
	m := Model{snapshot: filterFixture()}

	tests := []struct {
		name   string
		filter string
		exp    []string
	}{
		{"empty matches all", "", []string{"Firefox", "mDNSResponder", "sshd"}},
		{"case-insensitive name", "FIREFOX", []string{"Firefox"}},
		{"substring of name", "dns", []string{"mDNSResponder"}},
		{"matches path", "usr/sbin", []string{"sshd"}},
		{"matches pid digits", "4211", []string{"Firefox"}},
		{"exact name has no false negative", "mDNSResponder", []string{"mDNSResponder"}},
		{"no match", "spotify", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.filterText = tt.filter
			var names []string
			for _, p := range m.filteredProcesses() {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.exp, names)
		})
	}
}

func TestConnectionFilterMatchesEndpointsAndProtocol(t *testing.T) {
	m := Model{snapshot: filterFixture()}

	m.filterText = ""
	assert.Len(t, m.filteredConnections(), 3)

	// protocol label
	m.filterText = "udp"
	rows := m.filteredConnections()
	require.Len(t, rows, 1)
	assert.Equal(t, "mDNSResponder", rows[0].procName)

	// remote endpoint by resolved hostname, not raw address
	m.filterText = "1e100.net"
	rows = m.filteredConnections()
	require.Len(t, rows, 1)
	assert.Equal(t, "Firefox", rows[0].procName)

	// local endpoint with port
	m.filterText = "1.20:22"
	rows = m.filteredConnections()
	require.Len(t, rows, 1)
	assert.Equal(t, "sshd", rows[0].procName)

	// process name matches its connections regardless of endpoints
	m.filterText = "firefox"
	rows = m.filteredConnections()
	require.Len(t, rows, 1)
}

func TestRemoteEndpointPrefersHostname(t *testing.T) {
	c := domain.Connection{RemoteAddr: "142.250.74.36", RemotePort: 443, Hostname: "example.net"}
	assert.Equal(t, "example.net:443", remoteEndpoint(c))

	c.Hostname = ""
	assert.Equal(t, "142.250.74.36:443", remoteEndpoint(c))

	wildcard := domain.Connection{RemoteAddr: "*", RemotePort: 0}
	assert.Equal(t, "*", remoteEndpoint(wildcard))
}
