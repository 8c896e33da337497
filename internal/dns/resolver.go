// Package dns resolves remote addresses to hostnames in the background.
// Enrichment is eventually consistent: a connection shows its raw address
// until a lookup for it completes in some later cycle.
package dns

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/nmtri/netwatch/internal/domain"
)

const (
	queueSize     = 256
	lookupTimeout = 5 * time.Second
)

// Cache maps an address to its resolved hostname. An empty value means the
// lookup completed without a PTR record (or failed), which is distinct from
// the address being absent, i.e. never looked up. Entries are never evicted;
// the cache is bounded by the set of distinct remote addresses observed.
type Cache map[string]string

// Pending is the set of addresses with an outstanding, unanswered request.
type Pending map[string]struct{}

// Result is one completed reverse lookup.
type Result struct {
	Addr     string
	Hostname string
}

// LookupFunc performs one reverse lookup. Injectable for tests.
type LookupFunc func(ctx context.Context, addr string) (string, error)

// Resolver runs reverse DNS lookups concurrently with the update loop.
// One dispatcher goroutine reads the request channel and spawns one
// goroutine per address. The request side never blocks; a result send may
// park its dedicated goroutine until a later drain makes room, so an
// accepted request always produces a drained result.
type Resolver struct {
	requests chan string
	results  chan Result
	lookup   LookupFunc
}

func NewResolver(lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = reverseLookup
	}
	r := &Resolver{
		requests: make(chan string, queueSize),
		results:  make(chan Result, queueSize),
		lookup:   lookup,
	}
	go r.dispatch()
	return r
}

func (r *Resolver) dispatch() {
	for addr := range r.requests {
		go func(addr string) {
			// blocks when the result queue is full; dropping here would
			// strand the address in the caller's pending set
			r.results <- Result{Addr: addr, Hostname: r.resolve(addr)}
		}(addr)
	}
}

func (r *Resolver) resolve(addr string) string {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	hostname, err := r.lookup(ctx, addr)
	if err != nil {
		// cached as a negative result so it is not retried every cycle
		return ""
	}
	return hostname
}

// Submit queues a lookup request without blocking. Returns false when the
// queue is full; the caller retries on a later cycle.
func (r *Resolver) Submit(addr string) bool {
	select {
	case r.requests <- addr:
		return true
	default:
		return false
	}
}

// Close stops the dispatcher. In-flight lookups are not cancelled; they
// finish on their own and their results are simply never drained.
func (r *Resolver) Close() {
	close(r.requests)
}

// Drain moves every currently available result into the cache and clears
// the matching pending entries. Never blocks; arrival order is irrelevant
// because the merge is idempotent.
func (r *Resolver) Drain(cache Cache, pending Pending) {
	for {
		select {
		case res := <-r.results:
			delete(pending, res.Addr)
			cache[res.Addr] = res.Hostname
		default:
			return
		}
	}
}

// Enrich copies cached hostnames onto connections and submits lookup
// requests for addresses seen for the first time. An address is marked
// pending only when its request was actually queued, so a saturated queue
// means a retry next cycle rather than a permanently lost lookup.
func Enrich(processes []domain.Process, cache Cache, pending Pending, r *Resolver) {
	for pi := range processes {
		conns := processes[pi].Connections
		for ci := range conns {
			conn := &conns[ci]
			addr := conn.RemoteAddr
			if addr == "" {
				continue
			}
			if hostname, ok := cache[addr]; ok {
				conn.Hostname = hostname
				continue
			}
			if _, waiting := pending[addr]; waiting {
				continue
			}
			if r.Submit(addr) {
				pending[addr] = struct{}{}
			}
		}
	}
}

func reverseLookup(ctx context.Context, addr string) (string, error) {
	if net.ParseIP(addr) == nil {
		return "", errors.New("not an IP address")
	}
	names, err := net.DefaultResolver.LookupAddr(ctx, addr)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	return strings.TrimSuffix(names[0], "."), nil
}
