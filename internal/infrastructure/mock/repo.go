package mock

import (
	"context"
	"math/rand"
	"time"

	"github.com/nmtri/netwatch/internal/domain"
)

// Repo fabricates plausible traffic so the UI can be exercised without
// nettop (demos, non-macOS dev boxes). Counters are cumulative and grow
// between calls, like the real tool's.
type Repo struct {
	rnd   *rand.Rand
	procs []fakeProc
}

type fakeProc struct {
	name    string
	pid     uint32
	path    string
	inPace  uint64 // rough bytes gained per cycle
	outPace uint64
	in      uint64
	out     uint64
	conns   []fakeConn
}

type fakeConn struct {
	proto      domain.Protocol
	local      string
	localPort  uint16
	remote     string
	remotePort uint16
	shareIn    float64 // fraction of the process counters attributed here
	shareOut   float64
}

func New() *Repo {
	src := rand.NewSource(time.Now().UnixNano())
	return &Repo{
		rnd: rand.New(src),
		procs: []fakeProc{
			{
				name: "firefox", pid: 4211, path: "/Applications/Firefox.app/Contents/MacOS/firefox",
				inPace: 850_000, outPace: 64_000,
				conns: []fakeConn{
					{proto: domain.TCP, local: "192.168.1.20", localPort: 50311, remote: "142.250.74.36", remotePort: 443, shareIn: 0.7, shareOut: 0.6},
					{proto: domain.TCP, local: "192.168.1.20", localPort: 50340, remote: "151.101.1.140", remotePort: 443, shareIn: 0.3, shareOut: 0.4},
				},
			},
			{
				name: "com.apple.WebKit.Networking", pid: 883, path: "/System/Library/Frameworks/WebKit.framework",
				inPace: 120_000, outPace: 22_000,
				conns: []fakeConn{
					{proto: domain.TCP, local: "192.168.1.20", localPort: 50422, remote: "17.253.144.10", remotePort: 443, shareIn: 1, shareOut: 1},
				},
			},
			{
				name: "mDNSResponder", pid: 417, path: "/usr/sbin/mDNSResponder",
				inPace: 4_000, outPace: 2_500,
				conns: []fakeConn{
					{proto: domain.UDP, local: "*", localPort: 5353, remote: "*", remotePort: 0, shareIn: 1, shareOut: 1},
				},
			},
			{
				name: "OneDrive", pid: 857, path: "/Applications/OneDrive.app/Contents/MacOS/OneDrive",
				inPace: 18_000, outPace: 410_000,
				conns: []fakeConn{
					{proto: domain.TCP, local: "192.168.1.20", localPort: 50501, remote: "172.211.123.248", remotePort: 443, shareIn: 1, shareOut: 1},
				},
			},
			{
				name: "sshd", pid: 0, path: "",
				inPace: 1_200, outPace: 9_000,
				conns: []fakeConn{
					{proto: domain.TCP, local: "192.168.1.20", localPort: 22, remote: "192.168.1.77", remotePort: 61022, shareIn: 1, shareOut: 1},
				},
			},
		},
	}
}

func (r *Repo) Snapshot(ctx context.Context) ([]domain.Process, error) {
	out := make([]domain.Process, 0, len(r.procs))
	for i := range r.procs {
		fp := &r.procs[i]
		fp.in += r.jitter(fp.inPace)
		fp.out += r.jitter(fp.outPace)

		p := domain.Process{
			Name:     fp.name,
			Pid:      fp.pid,
			Path:     fp.path,
			BytesIn:  fp.in,
			BytesOut: fp.out,
		}
		for _, fc := range fp.conns {
			p.Connections = append(p.Connections, domain.Connection{
				LocalAddr:  fc.local,
				LocalPort:  fc.localPort,
				RemoteAddr: fc.remote,
				RemotePort: fc.remotePort,
				Protocol:   fc.proto,
				BytesIn:    uint64(float64(fp.in) * fc.shareIn),
				BytesOut:   uint64(float64(fp.out) * fc.shareOut),
			})
		}
		out = append(out, p)
	}
	return out, nil
}

// jitter wobbles a per-cycle pace by ±50% so rates move on screen.
func (r *Repo) jitter(pace uint64) uint64 {
	if pace == 0 {
		return 0
	}
	f := 0.5 + r.rnd.Float64()
	return uint64(float64(pace) * f)
}
