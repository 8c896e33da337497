package app

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmtri/netwatch/internal/domain"
)

func sortFixture() []domain.Process {
	return []domain.Process{
		{Name: "Zsh", Pid: 300, BytesIn: 10, BytesOut: 900, RateIn: 1.5, RateOut: 0.5,
			Connections: []domain.Connection{{}, {}, {}}},
		{Name: "apsd", Pid: 100, BytesIn: 500, BytesOut: 100, RateIn: 80.0, RateOut: 90.0,
			Connections: []domain.Connection{{}}},
		{Name: "Mail", Pid: 200, BytesIn: 300, BytesOut: 500, RateIn: 20.0, RateOut: 10.0,
			Connections: []domain.Connection{{}, {}}},
	}
}

func TestSortByNameCaseInsensitiveAscending(t *testing.T) {
	procs := sortFixture()
	sortProcesses(procs, domain.SortName)

	names := []string{procs[0].Name, procs[1].Name, procs[2].Name}
	assert.Equal(t, []string{"apsd", "Mail", "Zsh"}, names)
	assert.True(t, sort.SliceIsSorted(procs, func(i, j int) bool {
		return strings.ToLower(procs[i].Name) < strings.ToLower(procs[j].Name)
	}))
}

func TestSortByPidAscending(t *testing.T) {
	procs := sortFixture()
	sortProcesses(procs, domain.SortPid)
	assert.Equal(t, uint32(100), procs[0].Pid)
	assert.Equal(t, uint32(300), procs[2].Pid)
}

func TestTrafficFieldsSortDescending(t *testing.T) {
	tests := []struct {
		field domain.SortField
		value func(domain.Process) float64
	}{
		{domain.SortConnections, func(p domain.Process) float64 { return float64(p.ConnectionCount()) }},
		{domain.SortBytesIn, func(p domain.Process) float64 { return float64(p.BytesIn) }},
		{domain.SortBytesOut, func(p domain.Process) float64 { return float64(p.BytesOut) }},
		{domain.SortRateIn, func(p domain.Process) float64 { return p.RateIn }},
		{domain.SortRateOut, func(p domain.Process) float64 { return p.RateOut }},
	}

	for _, tt := range tests {
		t.Run(tt.field.Label(), func(t *testing.T) {
			procs := sortFixture()
			sortProcesses(procs, tt.field)
			for i := 1; i < len(procs); i++ {
				assert.GreaterOrEqual(t, tt.value(procs[i-1]), tt.value(procs[i]))
			}
		})
	}
}

func TestSortToleratesNaNRates(t *testing.T) {
	procs := []domain.Process{
		{Name: "a", RateIn: 5},
		{Name: "b", RateIn: math.NaN()},
		{Name: "c", RateIn: 10},
	}
	// a NaN compares equal both ways; the sort must neither panic nor
	// lose elements
	sortProcesses(procs, domain.SortRateIn)
	assert.Len(t, procs, 3)
	seen := map[string]bool{}
	for _, p := range procs {
		seen[p.Name] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}
