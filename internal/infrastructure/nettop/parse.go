package nettop

import (
	"strconv"
	"strings"

	"github.com/nmtri/netwatch/internal/domain"
)

// nettop -x -J bytes_in,bytes_out emits CSV of the shape:
//
//	,bytes_in,bytes_out,
//	process_name.pid,bytes_in,bytes_out,
//	tcp4 192.168.0.1:12345<->1.2.3.4:443,bytes_in,bytes_out,
//	udp4 *:5353<->*:*,bytes_in,bytes_out,
//	next_process.pid,bytes_in,bytes_out,
//
// A line is a connection line iff its first field starts with one of the
// protocol tags below; any other non-empty line starts a new process.

const headerMarker = "bytes_in"

var connPrefixes = []string{"tcp4 ", "tcp6 ", "udp4 ", "udp6 "}

// Parse turns one nettop report into process records. A report without the
// header marker yields an empty list; individual malformed fields default
// to zero rather than failing the whole parse.
func Parse(output string) []domain.Process {
	lines := strings.Split(output, "\n")

	start := -1
	for i, l := range lines {
		if strings.Contains(l, headerMarker) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var processes []domain.Process
	var current *domain.Process

	flush := func() {
		if current == nil {
			return
		}
		// idle entries the tool still lists are dropped
		if current.BytesIn > 0 || current.BytesOut > 0 || len(current.Connections) > 0 {
			processes = append(processes, *current)
		}
		current = nil
	}

	for _, raw := range lines[start:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		first := strings.TrimSpace(firstField(line))

		if isConnectionLine(first) {
			// connection lines without a current process are dropped
			if current != nil {
				if conn, ok := parseConnectionLine(line); ok {
					current.Connections = append(current.Connections, conn)
				}
			}
			continue
		}

		flush()
		if p, ok := parseProcessLine(line); ok {
			current = &p
		}
	}
	flush()

	return processes
}

func firstField(line string) string {
	if i := strings.IndexByte(line, ','); i >= 0 {
		return line[:i]
	}
	return line
}

func isConnectionLine(field string) bool {
	for _, p := range connPrefixes {
		if strings.HasPrefix(field, p) {
			return true
		}
	}
	return false
}

// parseProcessLine parses "ProcessName.PID,bytes_in,bytes_out,".
func parseProcessLine(line string) (domain.Process, bool) {
	parts := strings.Split(line, ",")
	id := strings.TrimSpace(parts[0])

	name, pid := splitNamePid(id)
	if name == "" {
		return domain.Process{}, false
	}

	return domain.Process{
		Name:     name,
		Pid:      pid,
		BytesIn:  fieldUint(parts, 1),
		BytesOut: fieldUint(parts, 2),
	}, true
}

// parseConnectionLine parses
// "tcp4 192.168.0.1:12345<->1.2.3.4:443,bytes_in,bytes_out,".
func parseConnectionLine(line string) (domain.Connection, bool) {
	parts := strings.Split(line, ",")
	desc := strings.TrimSpace(parts[0])

	protoTag, addrPart, ok := strings.Cut(desc, " ")
	if !ok {
		return domain.Connection{}, false
	}

	var proto domain.Protocol
	switch protoTag {
	case "tcp4", "tcp6":
		proto = domain.TCP
	case "udp4", "udp6":
		proto = domain.UDP
	default:
		proto = domain.OtherProtocol(protoTag)
	}

	localStr, remoteStr, ok := strings.Cut(addrPart, "<->")
	if !ok {
		return domain.Connection{}, false
	}

	localAddr, localPort := parseAddrPort(localStr)
	remoteAddr, remotePort := parseAddrPort(remoteStr)

	return domain.Connection{
		LocalAddr:  localAddr,
		LocalPort:  localPort,
		RemoteAddr: remoteAddr,
		RemotePort: remotePort,
		Protocol:   proto,
		BytesIn:    fieldUint(parts, 1),
		BytesOut:   fieldUint(parts, 2),
	}, true
}

// splitNamePid splits "ProcessName.12345" into ("ProcessName", 12345).
// The split point is the last dot whose suffix is numeric, so names that
// themselves contain dots ("com.apple.WebKit.1234") come out intact.
// Without such a split the whole identifier is the name and pid is 0.
func splitNamePid(s string) (string, uint32) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		if pid, err := strconv.ParseUint(s[i+1:], 10, 32); err == nil {
			return s[:i], uint32(pid)
		}
	}
	return s, 0
}

// parseAddrPort splits a nettop address into (address, port).
// IPv4 uses a colon ("192.168.1.1:443", "*:5353"); IPv6 addresses come
// dot-delimited without brackets ("::1.8021", "fe80::1%en0.49152").
// Colon is tried first, dot is the fallback; the wildcard forms "*:*"
// and "*.*" map to ("*", 0), as does anything with no numeric suffix.
func parseAddrPort(s string) (string, uint16) {
	s = strings.TrimSpace(s)

	if s == "*:*" || s == "*.*" {
		return "*", 0
	}

	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		if port, err := strconv.ParseUint(s[i+1:], 10, 16); err == nil {
			return s[:i], uint16(port)
		}
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		if port, err := strconv.ParseUint(s[i+1:], 10, 16); err == nil {
			return s[:i], uint16(port)
		}
	}
	return s, 0
}

// fieldUint reads parts[i] as an unsigned counter, defaulting to 0 for
// missing or malformed fields.
func fieldUint(parts []string, i int) uint64 {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
