package port

import (
	"context"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/shopspring/decimal"
)

// ExchangeProvider is the capability a concrete exchange backend exposes to
// the aggregator. Implementations own their bid list, direction list and
// transaction log exclusively.
type ExchangeProvider interface {
	// Name returns the provider name, unique within an aggregator.
	Name() string

	// GetDirections returns the declared exchange directions.
	GetDirections(ctx context.Context) ([]domain.Direction, error)

	// GetBids returns bids for the exact (source, dest) pair, most
	// profitable first.
	GetBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error)

	// Buy fills destAmount of the destination asset by greedily consuming
	// the best-priced bids and returns the created transaction id.
	// maxSourceAmount, when non-nil, caps the source asset spent; providers
	// that do not implement capped purchases reject it with
	// domain.ErrUnsupportedFeature.
	Buy(ctx context.Context, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (int64, error)

	// BuyDryRun reports whether Buy with the same arguments would succeed
	// against the current bid state. It never creates a transaction and
	// never consumes a bid.
	BuyDryRun(ctx context.Context, source, dest domain.Asset, destAmount decimal.Decimal, maxSourceAmount *decimal.Decimal) (bool, error)
}

// DirectionManager is the optional bookkeeping surface of providers whose
// direction set can be changed at runtime (simulated providers).
type DirectionManager interface {
	// AddDirection declares a direction and synthesizes its bid book from
	// the nominal rate and the overall source-asset amount.
	AddDirection(source, dest domain.Asset, rate, overallAmount decimal.Decimal)

	// AddDirectionBids declares a direction populated with an explicit bid
	// list, atomically replacing any existing direction for the pair. Bids
	// with a negative amount are rejected with domain.ErrInvalidAmount.
	AddDirectionBids(source, dest domain.Asset, rate decimal.Decimal, bids []domain.Bid) error

	// RemoveDirection removes the direction and all its bids.
	RemoveDirection(source, dest domain.Asset)
}
