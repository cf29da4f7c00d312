package fake

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
)

// Bid-generation parameters for simulated directions.
const (
	bidsPerDirection        = 100
	rateDispersionPercent   = 10
	amountDispersionPercent = 60
	decimalPrecision        = 2
)

// AddDirection declares a direction and synthesizes its bid book: a fixed
// number of bids whose rates and destination amounts are dispersed around
// the nominal values within the configured percentage bounds, rounded to a
// fixed precision. overallAmount is the summary tradable amount denominated
// in the source asset. Any existing direction for the pair is replaced
// atomically.
func (p *Provider) AddDirection(source, dest domain.Asset, rate, overallAmount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.removeDirectionLocked(source, dest)
	p.bids = append(p.bids, p.generateBids(source, dest, rate, overallAmount)...)
	p.directions = append(p.directions, domain.Direction{
		SourceAsset: source,
		DestAsset:   dest,
		Rate:        rate,
		MaxAmount:   overallAmount,
	})
}

// AddDirectionBids declares a direction populated with an explicit bid list,
// atomically replacing any existing direction for the pair. The direction's
// maximum amount is the sum of the bids' source amounts. Bids with a negative
// amount are rejected and leave the book unchanged.
func (p *Provider) AddDirectionBids(source, dest domain.Asset, rate decimal.Decimal, bids []domain.Bid) error {
	for _, b := range bids {
		if b.SourceAmount.IsNegative() || b.DestAmount.IsNegative() {
			return fmt.Errorf("%w: bid amounts must be non-negative", domain.ErrInvalidAmount)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.removeDirectionLocked(source, dest)
	maxAmount := decimal.Zero
	for _, b := range bids {
		p.bids = append(p.bids, domain.Bid{
			ProviderName: p.name,
			SourceAsset:  source,
			DestAsset:    dest,
			SourceAmount: b.SourceAmount,
			DestAmount:   b.DestAmount,
		})
		maxAmount = maxAmount.Add(b.SourceAmount)
	}
	p.directions = append(p.directions, domain.Direction{
		SourceAsset: source,
		DestAsset:   dest,
		Rate:        rate,
		MaxAmount:   maxAmount,
	})
	return nil
}

// RemoveDirection removes the direction and all its bids.
func (p *Provider) RemoveDirection(source, dest domain.Asset) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeDirectionLocked(source, dest)
}

func (p *Provider) removeDirectionLocked(source, dest domain.Asset) {
	bids := p.bids[:0]
	for _, b := range p.bids {
		if b.SourceAsset != source || b.DestAsset != dest {
			bids = append(bids, b)
		}
	}
	p.bids = bids

	dirs := p.directions[:0]
	for _, d := range p.directions {
		if d.SourceAsset != source || d.DestAsset != dest {
			dirs = append(dirs, d)
		}
	}
	p.directions = dirs
}

// generateBids disperses rates and destination amounts around the nominal
// values. Callers hold p.mu.
func (p *Provider) generateBids(source, dest domain.Asset, rate, overallAmount decimal.Decimal) []domain.Bid {
	hundred := decimal.NewFromInt(100)
	avgDest := overallAmount.Mul(rate).Div(decimal.NewFromInt(bidsPerDirection))
	rateDispersion := rate.Mul(decimal.NewFromInt(rateDispersionPercent)).Div(hundred)
	amountDispersion := avgDest.Mul(decimal.NewFromInt(amountDispersionPercent)).Div(hundred)

	bids := make([]domain.Bid, 0, bidsPerDirection)
	for i := 0; i < bidsPerDirection; i++ {
		bidRate := rate.Add(rateDispersion.Mul(p.jitter())).Round(decimalPrecision)
		destAmount := avgDest.Add(amountDispersion.Mul(p.jitter())).Round(decimalPrecision)
		sourceAmount := decimal.Zero
		if bidRate.IsPositive() {
			sourceAmount = destAmount.Div(bidRate).Round(decimalPrecision)
		}
		bids = append(bids, domain.Bid{
			ProviderName: p.name,
			SourceAsset:  source,
			DestAsset:    dest,
			SourceAmount: sourceAmount,
			DestAmount:   destAmount,
		})
	}
	return bids
}

// jitter returns a uniformly distributed factor in [-1, 1).
func (p *Provider) jitter() decimal.Decimal {
	return decimal.NewFromFloat((p.rng.Float64() - 0.5) * 2)
}
