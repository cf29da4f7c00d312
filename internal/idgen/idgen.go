package idgen

import (
	"sync"

	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var _ port.IDGenerator = (*Generator)(nil)

// Generator allocates process-local integer ids, one monotonic sequence per
// kind. Sharing one Generator across providers keeps transaction ids unique
// system-wide.
type Generator struct {
	mu       sync.Mutex
	counters map[port.IDKind]int64
}

func New() *Generator {
	return &Generator{counters: make(map[port.IDKind]int64)}
}

func (g *Generator) GenerateID(kind port.IDKind) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[kind]++
	return g.counters[kind]
}
