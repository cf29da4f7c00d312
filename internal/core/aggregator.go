package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

// Aggregator is the single entry point over a registry of exchange
// providers: it fans bid queries out to every registered provider, merges
// the results into one rate-descending book, and dispatches buy requests to
// the provider that owns the bids. It never performs matching itself and
// never owns bid or transaction data.
type Aggregator struct {
	cache port.Cache
	log   *zap.Logger

	mu        sync.RWMutex
	providers map[string]port.ExchangeProvider
}

func NewAggregator(cache port.Cache, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		cache:     cache,
		log:       logger,
		providers: make(map[string]port.ExchangeProvider),
	}
}

// AddProvider registers p under its name.
func (a *Aggregator) AddProvider(p port.ExchangeProvider) error {
	name := p.Name()
	a.mu.Lock()
	if _, ok := a.providers[name]; ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
	}
	a.providers[name] = p
	a.mu.Unlock()

	a.flushCache()
	a.log.Info("provider registered", zap.String("provider", name))
	return nil
}

// RemoveProvider unregisters the provider with the given name.
func (a *Aggregator) RemoveProvider(name string) error {
	a.mu.Lock()
	if _, ok := a.providers[name]; !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	delete(a.providers, name)
	a.mu.Unlock()

	a.flushCache()
	a.log.Info("provider removed", zap.String("provider", name))
	return nil
}

// Provider returns the registered provider with the given name.
func (a *Aggregator) Provider(name string) (port.ExchangeProvider, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Providers returns the registered providers in no particular order.
func (a *Aggregator) Providers() []port.ExchangeProvider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	res := make([]port.ExchangeProvider, 0, len(a.providers))
	for _, p := range a.providers {
		res = append(res, p)
	}
	return res
}

// GetAllDirections returns every declared direction of every registered
// provider, tagged with the provider name.
func (a *Aggregator) GetAllDirections(ctx context.Context) ([]domain.ProviderDirection, error) {
	var res []domain.ProviderDirection
	for _, p := range a.Providers() {
		dirs, err := p.GetDirections(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: get directions: %w", p.Name(), err)
		}
		for _, d := range dirs {
			res = append(res, domain.ProviderDirection{ProviderName: p.Name(), Direction: d})
		}
	}
	return res, nil
}

// GetAllBids merges the bids of every registered provider for the asset pair
// into one list sorted by rate descending, most profitable first. This total
// ordering is the aggregator's principal contract: callers use it to find
// the best available price across the whole system.
func (a *Aggregator) GetAllBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error) {
	if a.cache != nil {
		if bids, err := a.cache.GetBids(ctx, source, dest); err == nil && bids != nil {
			return bids, nil
		}
	}

	var res []domain.Bid
	for _, p := range a.Providers() {
		bids, err := p.GetBids(ctx, source, dest)
		if err != nil {
			return nil, fmt.Errorf("provider %q: get bids: %w", p.Name(), err)
		}
		res = append(res, bids...)
	}
	domain.SortBidsByRate(res)

	if a.cache != nil && len(res) > 0 {
		if err := a.cache.SetBids(ctx, source, dest, res); err != nil {
			a.log.Warn("bid cache update failed", zap.Error(err))
		}
	}
	return res, nil
}

// Buy delegates the purchase to the named provider and returns the created
// transaction id. Matching is local to the provider's own bid book.
func (a *Aggregator) Buy(ctx context.Context, providerName string, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (int64, error) {
	p, err := a.Provider(providerName)
	if err != nil {
		return 0, err
	}
	id, err := p.Buy(ctx, source, dest, destAmount, maxSourceAmount)
	if err != nil {
		return 0, err
	}
	a.log.Info("buy executed",
		zap.String("provider", providerName),
		zap.String("source", source.String()),
		zap.String("dest", dest.String()),
		zap.String("dest_amount", destAmount.String()),
		zap.Int64("transaction_id", id))
	return id, nil
}

// BuyDryRun reports whether the named provider could fill the purchase right
// now. It has no side effects.
func (a *Aggregator) BuyDryRun(ctx context.Context, providerName string, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (bool, error) {
	p, err := a.Provider(providerName)
	if err != nil {
		return false, err
	}
	return p.BuyDryRun(ctx, source, dest, destAmount, maxSourceAmount)
}

// InvalidateBids drops the cached merged book for the pair. Callers that
// change a provider's direction or bid set must invalidate the pair so that
// GetAllBids reflects the new book.
func (a *Aggregator) InvalidateBids(ctx context.Context, source, dest domain.Asset) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Invalidate(ctx, source, dest); err != nil {
		a.log.Warn("bid cache invalidation failed", zap.Error(err))
	}
}

// flushCache drops all cached merged books. It runs outside the registry
// lock so a slow cache backend cannot stall provider lookups.
func (a *Aggregator) flushCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Flush(context.Background()); err != nil {
		a.log.Warn("bid cache flush failed", zap.Error(err))
	}
}
