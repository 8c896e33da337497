package nettop

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/nmtri/netwatch/internal/domain"
	"github.com/nmtri/netwatch/internal/procinfo"
)

// Repo pulls traffic snapshots from the nettop command-line tool.
// -L 1 takes a single sample, -x forces raw numbers and -J selects the
// byte counter columns; omitting -P keeps per-connection detail grouped
// under each process summary.
type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (r *Repo) Snapshot(ctx context.Context) ([]domain.Process, error) {
	cmd := exec.CommandContext(ctx, "nettop", "-L", "1", "-x", "-J", "bytes_in,bytes_out")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run nettop: %w", err)
	}

	processes := Parse(string(out))
	procinfo.EnrichPaths(processes)
	return processes, nil
}
