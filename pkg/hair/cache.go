package hair

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// CacheState is the lifecycle of a material's precomputed tables
type CacheState int32

const (
	CacheStale CacheState = iota
	CacheBuilding
	CacheReady
)

func (s CacheState) String() string {
	switch s {
	case CacheStale:
		return "stale"
	case CacheBuilding:
		return "building"
	case CacheReady:
		return "ready"
	}
	return "unknown"
}

// Prepared pairs a parameter set with the tables built from it.
// Both are read-only; shading code must not modify them.
type Prepared struct {
	Params Params
	Tables *Tables
}

// TableCache guards one material's tables. Exactly one goroutine builds the
// tables after each parameter change; everyone else reuses them.
type TableCache struct {
	mu     sync.Mutex // serializes building and parameter replacement
	params atomic.Pointer[Params]

	ready  atomic.Pointer[Prepared] // nil while stale
	state  atomic.Int32
	builds atomic.Int64

	build  func(Params) *Tables
	logger core.Logger
}

// NewTableCache creates a stale cache for p. A nil logger disables logging.
func NewTableCache(p Params, logger core.Logger) *TableCache {
	c := &TableCache{build: Precompute, logger: logger}
	c.params.Store(&p)
	return c
}

// EnsureReady returns the current parameters and tables, building the tables
// first if they are stale. Callers that find the cache ready never lock.
func (c *TableCache) EnsureReady() *Prepared {
	if prepared := c.ready.Load(); prepared != nil {
		return prepared
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have finished while we waited for the lock
	if prepared := c.ready.Load(); prepared != nil {
		return prepared
	}

	c.state.Store(int32(CacheBuilding))
	start := time.Now()
	p := *c.params.Load()
	prepared := &Prepared{Params: p, Tables: c.build(p)}
	c.builds.Add(1)
	if c.logger != nil {
		c.logger.Printf("hair tables precomputed in %v\n", time.Since(start))
	}

	c.ready.Store(prepared)
	c.state.Store(int32(CacheReady))
	return prepared
}

// SetParams replaces the parameter set. Tables are invalidated only when p
// differs from the current set; it reports whether that happened.
func (c *TableCache) SetParams(p Params) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p == *c.params.Load() {
		return false
	}
	c.params.Store(&p)
	c.ready.Store(nil)
	c.state.Store(int32(CacheStale))
	return true
}

// Params returns the current parameter set. The tables returned by a later
// EnsureReady may belong to a newer set; shade with Prepared.Params.
func (c *TableCache) Params() Params {
	return *c.params.Load()
}

// State reports the cache lifecycle state
func (c *TableCache) State() CacheState {
	return CacheState(c.state.Load())
}

// Builds returns how many times the tables have been precomputed
func (c *TableCache) Builds() int64 {
	return c.builds.Load()
}
