package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MaxRate is the rate assigned to bids with a zero source amount, so that a
// zero-cost bid sorts as the most profitable one.
var MaxRate = decimal.New(1, 30)

// Bid is one immutable quote from one provider: an offer to exchange
// SourceAmount of the source asset for DestAmount of the destination asset.
type Bid struct {
	ProviderName string          `json:"provider_name"`
	SourceAsset  Asset           `json:"source_asset"`
	DestAsset    Asset           `json:"dest_asset"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	DestAmount   decimal.Decimal `json:"dest_amount"`
}

// Rate reports how much of the destination asset one unit of the source asset
// buys. Higher is more favorable to the buyer.
func (b Bid) Rate() decimal.Decimal {
	if b.SourceAmount.IsZero() {
		return MaxRate
	}
	return b.DestAmount.Div(b.SourceAmount)
}

// SortBidsByRate orders bids most profitable first. Ties keep their relative
// order.
func SortBidsByRate(bids []Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Rate().GreaterThan(bids[j].Rate())
	})
}
