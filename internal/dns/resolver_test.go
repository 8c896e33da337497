package dns

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtri/netwatch/internal/domain"
)

// countingLookup records how many times each address was looked up and
// blocks until release is closed.
type countingLookup struct {
	mu      sync.Mutex
	calls   map[string]int
	release chan struct{}
	answers map[string]string
	err     error
}

func newCountingLookup(answers map[string]string) *countingLookup {
	return &countingLookup{
		calls:   make(map[string]int),
		release: make(chan struct{}),
		answers: answers,
	}
}

func (c *countingLookup) fn(ctx context.Context, addr string) (string, error) {
	c.mu.Lock()
	c.calls[addr]++
	c.mu.Unlock()
	<-c.release
	if c.err != nil {
		return "", c.err
	}
	return c.answers[addr], nil
}

func (c *countingLookup) callCount(addr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[addr]
}

func procsWithRemote(addrs ...string) []domain.Process {
	conns := make([]domain.Connection, len(addrs))
	for i, a := range addrs {
		conns[i] = domain.Connection{RemoteAddr: a, RemotePort: 443, Protocol: domain.TCP}
	}
	return []domain.Process{{Name: "p", Pid: 1, Connections: conns}}
}

func TestEnrichDoesNotResubmitPending(t *testing.T) {
	lookup := newCountingLookup(map[string]string{"1.2.3.4": "example.com"})
	r := NewResolver(lookup.fn)
	defer r.Close()
	defer close(lookup.release)

	cache := Cache{}
	pending := Pending{}

	Enrich(procsWithRemote("1.2.3.4"), cache, pending, r)
	assert.Contains(t, pending, "1.2.3.4")

	// second cycle, lookup still in flight: no second request
	Enrich(procsWithRemote("1.2.3.4"), cache, pending, r)
	Enrich(procsWithRemote("1.2.3.4"), cache, pending, r)

	require.Eventually(t, func() bool {
		return lookup.callCount("1.2.3.4") > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, lookup.callCount("1.2.3.4"))
}

func TestDrainMovesPendingIntoCache(t *testing.T) {
	lookup := newCountingLookup(map[string]string{"1.2.3.4": "example.com"})
	r := NewResolver(lookup.fn)
	defer r.Close()

	cache := Cache{}
	pending := Pending{}
	Enrich(procsWithRemote("1.2.3.4"), cache, pending, r)
	close(lookup.release)

	require.Eventually(t, func() bool {
		r.Drain(cache, pending)
		_, ok := cache["1.2.3.4"]
		return ok
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "example.com", cache["1.2.3.4"])
	assert.NotContains(t, pending, "1.2.3.4")
}

func TestFailedLookupIsCachedNegative(t *testing.T) {
	lookup := newCountingLookup(nil)
	lookup.err = errors.New("nxdomain")
	r := NewResolver(lookup.fn)
	defer r.Close()

	cache := Cache{}
	pending := Pending{}
	Enrich(procsWithRemote("10.9.8.7"), cache, pending, r)
	close(lookup.release)

	require.Eventually(t, func() bool {
		r.Drain(cache, pending)
		_, ok := cache["10.9.8.7"]
		return ok
	}, time.Second, 5*time.Millisecond)

	// negative result: present in cache, empty hostname, never retried
	assert.Equal(t, "", cache["10.9.8.7"])
	Enrich(procsWithRemote("10.9.8.7"), cache, pending, r)
	assert.Empty(t, pending)
	assert.Equal(t, 1, lookup.callCount("10.9.8.7"))
}

func TestEnrichCopiesCachedHostname(t *testing.T) {
	r := NewResolver(func(ctx context.Context, addr string) (string, error) {
		t.Errorf("lookup should not run for cached address %s", addr)
		return "", nil
	})
	defer r.Close()

	cache := Cache{"1.2.3.4": "example.com", "5.6.7.8": ""}
	pending := Pending{}
	procs := procsWithRemote("1.2.3.4", "5.6.7.8")
	Enrich(procs, cache, pending, r)

	assert.Equal(t, "example.com", procs[0].Connections[0].Hostname)
	assert.Equal(t, "", procs[0].Connections[1].Hostname)
	assert.Empty(t, pending)
}

func TestEnrichSkipsEmptyAddress(t *testing.T) {
	lookup := newCountingLookup(nil)
	r := NewResolver(lookup.fn)
	defer r.Close()
	defer close(lookup.release)

	cache := Cache{}
	pending := Pending{}
	procs := procsWithRemote("", "1.2.3.4")
	Enrich(procs, cache, pending, r)

	assert.NotContains(t, pending, "")
	assert.Contains(t, pending, "1.2.3.4")
}

func TestResultQueueSaturationResolvesEverything(t *testing.T) {
	r := NewResolver(func(ctx context.Context, addr string) (string, error) {
		return "host-" + addr, nil
	})
	defer r.Close()

	// more addresses than either channel can hold at once
	addrs := make([]string, queueSize+16)
	for i := range addrs {
		addrs[i] = fmt.Sprintf("10.0.%d.%d", i/250, i%250)
	}

	cache := Cache{}
	pending := Pending{}

	// requests rejected by a full queue stay un-pending and are resubmitted
	// by the next cycle; completed lookups park until a drain makes room.
	// Every address must end up cached with nothing left pending.
	require.Eventually(t, func() bool {
		r.Drain(cache, pending)
		Enrich(procsWithRemote(addrs...), cache, pending, r)
		return len(cache) == len(addrs) && len(pending) == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, "host-10.0.0.0", cache["10.0.0.0"])
}

func TestReverseLookupRejectsNonIP(t *testing.T) {
	_, err := reverseLookup(context.Background(), "*")
	assert.Error(t, err)
}
