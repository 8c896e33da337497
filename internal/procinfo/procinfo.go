package procinfo

import (
	"github.com/shirou/gopsutil/v3/process"

	"github.com/nmtri/netwatch/internal/domain"
)

// EnrichPaths fills in the executable path for every process with a real
// pid. Lookup failures (process already gone, permission denied) leave the
// path unset; they are not worth surfacing.
func EnrichPaths(processes []domain.Process) {
	for i := range processes {
		p := &processes[i]
		if p.Pid == 0 {
			continue
		}
		proc, err := process.NewProcess(int32(p.Pid))
		if err != nil {
			continue
		}
		if path, err := proc.Exe(); err == nil {
			p.Path = path
		}
	}
}
