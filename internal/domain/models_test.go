package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotTotals(t *testing.T) {
	procs := []Process{
		{
			Name: "apsd", Pid: 376,
			BytesIn: 100, BytesOut: 50,
			RateIn: 10.5, RateOut: 2.5,
			Connections: []Connection{{Protocol: TCP}, {Protocol: UDP}},
		},
		{
			Name: "mDNSResponder", Pid: 417,
			BytesIn: 200, BytesOut: 150,
			RateIn: 1.5, RateOut: 0.5,
			Connections: []Connection{{Protocol: UDP}},
		},
	}

	s := NewSnapshot(procs)
	assert.Equal(t, uint64(300), s.TotalBytesIn)
	assert.Equal(t, uint64(200), s.TotalBytesOut)
	assert.InDelta(t, 12.0, s.TotalRateIn, 1e-9)
	assert.InDelta(t, 3.0, s.TotalRateOut, 1e-9)
	assert.Equal(t, 3, s.TotalConnections)
	assert.Len(t, s.Processes, 2)
}

func TestNewSnapshotEmpty(t *testing.T) {
	s := NewSnapshot(nil)
	assert.Zero(t, s.TotalBytesIn)
	assert.Zero(t, s.TotalRateIn)
	assert.Zero(t, s.TotalConnections)
}

func TestSortFieldRing(t *testing.T) {
	order := []SortField{
		SortName, SortPid, SortConnections, SortBytesIn,
		SortBytesOut, SortRateIn, SortRateOut,
	}
	f := SortName
	for i := 1; i <= len(order); i++ {
		f = f.Next()
		assert.Equal(t, order[i%len(order)], f)
	}
	// one full loop lands back on Name
	assert.Equal(t, SortName, f)
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "TCP", TCP.String())
	assert.Equal(t, "UDP", UDP.String())
	assert.Equal(t, "icmp4", OtherProtocol("icmp4").String())
}
