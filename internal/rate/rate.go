// Package rate turns cumulative per-process byte counters into
// instantaneous throughput by diffing successive snapshots.
package rate

import "github.com/nmtri/netwatch/internal/domain"

// Key joins processes across cycles. Not guaranteed unique when two
// distinct processes share name and pid; accepted limitation.
type Key struct {
	Name string
	Pid  uint32
}

// Bytes holds one cycle's cumulative counters for a process.
type Bytes struct {
	In  uint64
	Out uint64
}

// Apply computes RateIn/RateOut for every process with a prior entry.
// A counter that went backwards (process restart reusing the identity)
// clamps to zero instead of wrapping. Processes without a prior entry
// keep rate 0.
func Apply(processes []domain.Process, prev map[Key]Bytes, intervalSecs float64) {
	if intervalSecs <= 0 {
		return
	}
	for i := range processes {
		p := &processes[i]
		b, ok := prev[Key{Name: p.Name, Pid: p.Pid}]
		if !ok {
			continue
		}
		p.RateIn = float64(clampedDelta(p.BytesIn, b.In)) / intervalSecs
		p.RateOut = float64(clampedDelta(p.BytesOut, b.Out)) / intervalSecs
	}
}

// Capture snapshots the current counters for the next cycle's diff.
func Capture(processes []domain.Process) map[Key]Bytes {
	out := make(map[Key]Bytes, len(processes))
	for _, p := range processes {
		out[Key{Name: p.Name, Pid: p.Pid}] = Bytes{In: p.BytesIn, Out: p.BytesOut}
	}
	return out
}

func clampedDelta(current, previous uint64) uint64 {
	if current < previous {
		return 0
	}
	return current - previous
}
