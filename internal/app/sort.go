package app

import (
	"sort"
	"strings"

	"github.com/nmtri/netwatch/internal/domain"
)

// sortProcesses orders the full process list for display. Name and Pid
// ascend; the traffic fields descend so the busiest process is on top.
// Rate comparisons use > so a NaN compares as equal instead of poisoning
// the order; the sort is stable to keep such rows where they were.
func sortProcesses(processes []domain.Process, field domain.SortField) {
	less := func(a, b domain.Process) bool { return false }

	switch field {
	case domain.SortName:
		less = func(a, b domain.Process) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case domain.SortPid:
		less = func(a, b domain.Process) bool { return a.Pid < b.Pid }
	case domain.SortConnections:
		less = func(a, b domain.Process) bool { return a.ConnectionCount() > b.ConnectionCount() }
	case domain.SortBytesIn:
		less = func(a, b domain.Process) bool { return a.BytesIn > b.BytesIn }
	case domain.SortBytesOut:
		less = func(a, b domain.Process) bool { return a.BytesOut > b.BytesOut }
	case domain.SortRateIn:
		less = func(a, b domain.Process) bool { return a.RateIn > b.RateIn }
	case domain.SortRateOut:
		less = func(a, b domain.Process) bool { return a.RateOut > b.RateOut }
	}

	sort.SliceStable(processes, func(i, j int) bool {
		return less(processes[i], processes[j])
	})
}
