package cache

import (
	"fmt"
	"testing"
	"time"

	"codemap/internal/domain"
)

func sampleResults(path string) []domain.SearchResult {
	return []domain.SearchResult{
		{
			FilePath:    path,
			Symbol:      domain.Symbol{Name: "handler", Kind: domain.KindFunction, Line: 10},
			Score:       87,
			FileModTime: 100,
		},
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := New(10, time.Minute)

	c.Put("handler", sampleResults("a.go"))
	got, ok := c.Get("handler")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 1 || got[0].FilePath != "a.go" || got[0].Score != 87 {
		t.Errorf("got %+v", got)
	}
}

func TestCache_MissCounts(t *testing.T) {
	c := New(10, time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Fatal("unexpected hit")
	}
	c.Put("q", sampleResults("a.go"))
	c.Get("q")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit 1 miss", stats)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", stats.HitRate)
	}
}

func TestCache_DeepCopyOnPut(t *testing.T) {
	c := New(10, time.Minute)

	results := sampleResults("a.go")
	c.Put("q", results)

	// Mutating the caller's slice after Put must not leak into the
	// cached copy.
	results[0].FilePath = "mutated.go"
	results[0].Score = 0

	got, ok := c.Get("q")
	if !ok {
		t.Fatal("expected hit")
	}
	if got[0].FilePath != "a.go" || got[0].Score != 87 {
		t.Errorf("cached entry aliased caller memory: %+v", got[0])
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New(10, time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("q", sampleResults("a.go"))

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("q"); ok {
		t.Error("expired entry should miss")
	}

	stats := c.Stats()
	if stats.Entries != 0 {
		t.Errorf("expired entry should be deleted, entries = %d", stats.Entries)
	}
	if stats.Misses != 1 {
		t.Errorf("expiry should count as a miss, stats = %+v", stats)
	}
}

func TestCache_EvictsLeastAccessed(t *testing.T) {
	c := New(2, time.Minute)

	c.Put("popular", sampleResults("a.go"))
	c.Put("cold", sampleResults("b.go"))
	c.Get("popular")

	c.Put("newcomer", sampleResults("c.go"))

	if _, ok := c.Get("cold"); ok {
		t.Error("least-accessed entry should have been evicted")
	}
	if _, ok := c.Get("popular"); !ok {
		t.Error("accessed entry should survive eviction")
	}
	if _, ok := c.Get("newcomer"); !ok {
		t.Error("new entry should be present")
	}
}

func TestCache_EvictionTieBreakOldest(t *testing.T) {
	c := New(2, time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("older", sampleResults("a.go"))
	now = now.Add(time.Second)
	c.Put("newer", sampleResults("b.go"))
	now = now.Add(time.Second)

	// Both have zero accesses; the older timestamp loses.
	c.Put("third", sampleResults("c.go"))

	if _, ok := c.Get("older"); ok {
		t.Error("oldest zero-access entry should have been evicted")
	}
	if _, ok := c.Get("newer"); !ok {
		t.Error("newer entry should survive")
	}
}

func TestCache_InvalidateFile(t *testing.T) {
	c := New(10, time.Minute)

	c.Put("q1", sampleResults("a.go"))
	c.Put("q2", sampleResults("b.go"))

	c.InvalidateFile("a.go")

	if _, ok := c.Get("q1"); ok {
		t.Error("entry referencing a.go should be gone")
	}
	if _, ok := c.Get("q2"); !ok {
		t.Error("unrelated entry should survive")
	}
}

func TestCache_InvalidateAll(t *testing.T) {
	c := New(10, time.Minute)

	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("q%d", i), sampleResults("a.go"))
	}
	c.InvalidateAll()

	if stats := c.Stats(); stats.Entries != 0 {
		t.Errorf("entries = %d, want 0", stats.Entries)
	}
}

func TestCache_CapacityNeverExceeded(t *testing.T) {
	c := New(3, time.Minute)

	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("q%d", i), sampleResults("a.go"))
	}
	if stats := c.Stats(); stats.Entries > 3 {
		t.Errorf("entries = %d, want <= 3", stats.Entries)
	}
}
