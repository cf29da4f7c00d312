package fake

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var (
	_ port.ExchangeProvider = (*Provider)(nil)
	_ port.DirectionManager = (*Provider)(nil)
)

// Provider is a simulated exchange backend. It owns an in-memory direction
// list, bid book and transaction log, guarded by one RWMutex: buys take the
// write lock, queries and dry runs the read lock. Bids are an infinitely
// replenished simulation set — a successful buy does not decrement them.
type Provider struct {
	name string
	ids  port.IDGenerator
	repo port.Repository
	log  *zap.Logger
	rng  *rand.Rand

	mu           sync.RWMutex
	directions   []domain.Direction
	bids         []domain.Bid
	transactions []*domain.Transaction
}

// New creates a simulated provider. repo may be nil (no persistence), logger
// may be nil, and rng may be nil for a time-seeded source; tests inject a
// seeded *rand.Rand to make bid generation deterministic.
func New(name string, ids port.IDGenerator, repo port.Repository, logger *zap.Logger, rng *rand.Rand) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{
		name: name,
		ids:  ids,
		repo: repo,
		log:  logger,
		rng:  rng,
	}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) GetDirections(ctx context.Context) ([]domain.Direction, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]domain.Direction, len(p.directions))
	copy(res, p.directions)
	return res, nil
}

func (p *Provider) GetBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bidsFor(source, dest), nil
}

// Buy fills destAmount of the destination asset by walking the provider's
// rate-descending bid book and, on success, records a transaction. A
// rejected buy leaves all state untouched.
func (p *Provider) Buy(ctx context.Context, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fill, err := p.plan(source, dest, destAmount, maxSourceAmount)
	if err != nil {
		return 0, err
	}

	tx := &domain.Transaction{
		ID:           p.ids.GenerateID(port.IDKindTransaction),
		ProviderName: p.name,
		SourceAsset:  source,
		DestAsset:    dest,
		SourceAmount: fill.sourceAmount,
		DestAmount:   destAmount,
		Status:       domain.TxSuccess,
		CreatedAt:    time.Now(),
	}
	p.transactions = append(p.transactions, tx)
	if p.repo != nil {
		if err := p.repo.SaveTransaction(ctx, tx); err != nil {
			p.log.Warn("transaction persistence failed",
				zap.Int64("transaction_id", tx.ID), zap.Error(err))
		}
	}

	p.log.Debug("buy filled",
		zap.String("provider", p.name),
		zap.Int("bids_consumed", fill.consumed),
		zap.String("weighted_rate", fill.weightedRate.String()),
		zap.Int64("transaction_id", tx.ID))
	return tx.ID, nil
}

// BuyDryRun performs the validation and liquidity steps of Buy without
// creating a transaction. Market conditions (unsupported direction, invalid
// amount, insufficient liquidity) become a plain false; anything else is a
// caller bug and surfaces as an error.
func (p *Provider) BuyDryRun(ctx context.Context, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, err := p.plan(source, dest, destAmount, maxSourceAmount)
	if err == nil {
		return true, nil
	}
	if domain.IsMarketCondition(err) {
		return false, nil
	}
	return false, err
}

// fillPlan is the outcome of a matching attempt before any state changes.
type fillPlan struct {
	consumed     int
	weightedRate decimal.Decimal
	sourceAmount decimal.Decimal
}

// plan runs the matching algorithm against the current bid book. Callers
// hold p.mu in at least read mode.
func (p *Provider) plan(source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (fillPlan, error) {
	if maxSourceAmount != nil {
		return fillPlan{}, fmt.Errorf("%w: source-amount-capped buys", domain.ErrUnsupportedFeature)
	}
	if !p.hasDirection(source, dest) {
		return fillPlan{}, fmt.Errorf("%w: %s->%s", domain.ErrUnsupportedDirection, source, dest)
	}
	if destAmount.IsNegative() {
		return fillPlan{}, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, destAmount)
	}

	bids := p.bidsFor(source, dest)

	// Greedy fill: consume from the head of the rate-descending book until
	// the requested amount is covered.
	filled := decimal.Zero
	weighted := decimal.Zero
	consumed := 0
	for _, b := range bids {
		if filled.GreaterThanOrEqual(destAmount) {
			break
		}
		filled = filled.Add(b.DestAmount)
		weighted = weighted.Add(b.Rate().Mul(b.DestAmount))
		consumed++
	}
	if filled.LessThan(destAmount) {
		return fillPlan{}, fmt.Errorf("%w: %s->%s, requested %s, available %s",
			domain.ErrInsufficientLiquidity, source, dest, destAmount, filled)
	}

	// The execution price is the volume-weighted average over the consumed
	// bids; the final bid contributes its full nominal amount even when only
	// part of it was needed (bids are atomic, non-splittable quotes).
	fill := fillPlan{consumed: consumed}
	if consumed > 0 && !filled.IsZero() {
		fill.weightedRate = weighted.Div(filled)
		if !fill.weightedRate.IsZero() {
			fill.sourceAmount = destAmount.Div(fill.weightedRate)
		}
	}
	return fill, nil
}

// bidsFor returns the bids for the pair, rate descending. Callers hold p.mu.
func (p *Provider) bidsFor(source, dest domain.Asset) []domain.Bid {
	var res []domain.Bid
	for _, b := range p.bids {
		if b.SourceAsset == source && b.DestAsset == dest {
			res = append(res, b)
		}
	}
	domain.SortBidsByRate(res)
	return res
}

// hasDirection reports whether the pair is declared. Callers hold p.mu.
func (p *Provider) hasDirection(source, dest domain.Asset) bool {
	for _, d := range p.directions {
		if d.SourceAsset == source && d.DestAsset == dest {
			return true
		}
	}
	return false
}

// Transactions returns a snapshot of the provider's transaction log.
func (p *Provider) Transactions() []*domain.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]*domain.Transaction, len(p.transactions))
	copy(res, p.transactions)
	return res
}

// GetTransaction returns the logged transaction with the given id.
func (p *Provider) GetTransaction(id int64) (*domain.Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, tx := range p.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return nil, false
}
