package in_memory

import (
	"context"
	"sync"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var _ port.Cache = (*Cache)(nil)

// Cache is an in-process bid-book cache.
type Cache struct {
	mu    sync.Mutex
	store map[string][]domain.Bid
}

func NewCache() *Cache {
	return &Cache{store: make(map[string][]domain.Bid)}
}

func key(source, dest domain.Asset) string {
	return string(source) + ":" + string(dest)
}

func (c *Cache) SetBids(ctx context.Context, source, dest domain.Asset, bids []domain.Bid) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]domain.Bid, len(bids))
	copy(cp, bids)
	c.store[key(source, dest)] = cp
	return nil
}

func (c *Cache) GetBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bids, ok := c.store[key(source, dest)]
	if !ok {
		return nil, nil
	}
	cp := make([]domain.Bid, len(bids))
	copy(cp, bids)
	return cp, nil
}

func (c *Cache) Invalidate(ctx context.Context, source, dest domain.Asset) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key(source, dest))
	return nil
}

func (c *Cache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string][]domain.Bid)
	return nil
}
