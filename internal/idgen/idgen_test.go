package idgen

import (
	"sync"
	"testing"

	"github.com/olyamironova/exchange-aggregator/internal/port"
)

func TestKindsCountIndependently(t *testing.T) {
	g := New()
	for want := int64(1); want <= 3; want++ {
		if got := g.GenerateID(port.IDKindTransaction); got != want {
			t.Fatalf("transaction id %d, want %d", got, want)
		}
	}
	if got := g.GenerateID(port.IDKindOrder); got != 1 {
		t.Fatalf("order ids must start their own sequence, got %d", got)
	}
}

func TestConcurrentGenerationIsUnique(t *testing.T) {
	g := New()
	const goroutines = 8
	const perGoroutine = 500

	var wg sync.WaitGroup
	ids := make([][]int64, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids[i] = append(ids[i], g.GenerateID(port.IDKindTransaction))
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, goroutines*perGoroutine)
	for _, batch := range ids {
		for _, id := range batch {
			if seen[id] {
				t.Fatalf("duplicate id %d", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Fatalf("expected %d unique ids, got %d", goroutines*perGoroutine, len(seen))
	}
}
