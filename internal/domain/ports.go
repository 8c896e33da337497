package domain

import "context"

// TrafficRepo is the pull source of per-process connection accounting.
// One call produces one cycle's snapshot; a failed call means the cycle
// is skipped and prior state is kept.
type TrafficRepo interface {
	Snapshot(ctx context.Context) ([]Process, error)
}
