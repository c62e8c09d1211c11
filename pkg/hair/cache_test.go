package hair

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTableCache_ConcurrentFirstUse(t *testing.T) {
	cache := NewTableCache(DefaultParams(), nil)
	var calls atomic.Int32
	cache.build = func(p Params) *Tables {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return &Tables{}
	}

	const goroutines = 16
	results := make([]*Prepared, goroutines)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = cache.EnsureReady()
		}(i)
	}
	close(start)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected exactly one build, got %d", calls.Load())
	}
	if cache.Builds() != 1 {
		t.Errorf("Builds() = %d, expected 1", cache.Builds())
	}
	for i, r := range results {
		if r != results[0] || r.Tables != results[0].Tables {
			t.Errorf("goroutine %d saw a different table set", i)
		}
	}
	if cache.State() != CacheReady {
		t.Errorf("Expected ready, got %v", cache.State())
	}
}

func TestTableCache_ConcurrentFirstUsePrecomputes(t *testing.T) {
	p := DefaultParams()
	cache := NewTableCache(p, nil)

	const goroutines = 8
	results := make([]*Prepared, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.EnsureReady()
		}(i)
	}
	wg.Wait()

	if cache.Builds() != 1 {
		t.Errorf("Builds() = %d, expected 1", cache.Builds())
	}
	expected := Precompute(p)
	for i, r := range results {
		if r.Params != p {
			t.Errorf("goroutine %d saw parameters %+v", i, r.Params)
		}
		if *r.Tables != *expected {
			t.Errorf("goroutine %d saw tables that differ from a direct precompute", i)
		}
	}
	for name, table := range tableList(results[0].Tables) {
		if *table == (Table{}) {
			t.Errorf("%s was never filled", name)
		}
	}
}

func TestTableCache_SetParams(t *testing.T) {
	cache := NewTableCache(DefaultParams(), nil)
	cache.build = func(Params) *Tables { return &Tables{} }

	if cache.State() != CacheStale {
		t.Fatalf("Expected a new cache to be stale, got %v", cache.State())
	}
	first := cache.EnsureReady()

	// An identical set keeps the tables
	if cache.SetParams(DefaultParams()) {
		t.Error("Expected equal parameters not to invalidate")
	}
	if cache.State() != CacheReady {
		t.Errorf("Expected ready after equal params, got %v", cache.State())
	}
	if cache.EnsureReady() != first {
		t.Error("Expected the same tables after equal params")
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"primary color", func(p *Params) { p.Primary.Color.Y += 0.01 }},
		{"rim shift", func(p *Params) { p.Rim.Shift += 0.01 }},
		{"density", func(p *Params) { p.Density = 0.5 }},
		{"indirect rays", func(p *Params) { p.IndirectRays++ }},
		{"single scattering", func(p *Params) { p.SingleScattering = !p.SingleScattering }},
		{"backward width", func(p *Params) { p.Backward.Variance = 0.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cache.EnsureReady()
			p := cache.Params()
			tt.mutate(&p)
			if !cache.SetParams(p) {
				t.Fatal("Expected changed parameters to invalidate")
			}
			if cache.State() != CacheStale {
				t.Errorf("Expected stale, got %v", cache.State())
			}
			after := cache.EnsureReady()
			if after == before {
				t.Error("Expected a rebuilt table set")
			}
			if after.Params != p {
				t.Error("Expected the rebuilt set to carry the new parameters")
			}
		})
	}
}

func TestTableCache_LogsBuild(t *testing.T) {
	logger := &recordingLogger{}
	cache := NewTableCache(DefaultParams(), logger)
	cache.build = func(Params) *Tables { return &Tables{} }
	cache.EnsureReady()
	cache.EnsureReady()
	if len(logger.lines) != 1 {
		t.Errorf("Expected one log line, got %d", len(logger.lines))
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}
