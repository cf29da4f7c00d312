package port

import (
	"context"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
)

// Cache stores merged bid books per asset pair. A miss is reported as
// (nil, nil); cache failures are never fatal to the caller.
type Cache interface {
	SetBids(ctx context.Context, source, dest domain.Asset, bids []domain.Bid) error
	GetBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error)
	Invalidate(ctx context.Context, source, dest domain.Asset) error

	// Flush drops every cached bid book. Called when the provider registry
	// changes shape.
	Flush(ctx context.Context) error
}
