package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterProviderRequest struct {
	Name       string          `json:"name" binding:"required"`
	Directions []DirectionSpec `json:"directions,omitempty"`
}

// DirectionSpec declares one direction for a simulated provider. When Bids
// is empty the provider generates a dispersed bid book from Rate and
// OverallAmount; otherwise the listed bids are used as-is.
type DirectionSpec struct {
	SourceAsset   string          `json:"source_asset" binding:"required"`
	DestAsset     string          `json:"dest_asset" binding:"required"`
	Rate          decimal.Decimal `json:"rate"`
	OverallAmount decimal.Decimal `json:"overall_amount,omitempty"`
	Bids          []BidSpec       `json:"bids,omitempty"`
}

type BidSpec struct {
	SourceAmount decimal.Decimal `json:"source_amount"`
	DestAmount   decimal.Decimal `json:"dest_amount"`
}

type RegisterProviderResponse struct {
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
}

type ListProvidersResponse struct {
	Providers []string `json:"providers"`
}

type Bid struct {
	ProviderName string          `json:"provider_name"`
	SourceAsset  string          `json:"source_asset"`
	DestAsset    string          `json:"dest_asset"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	DestAmount   decimal.Decimal `json:"dest_amount"`
	Rate         decimal.Decimal `json:"rate"`
}

type GetBidsResponse struct {
	Bids []Bid `json:"bids"`
}

type Direction struct {
	ProviderName string          `json:"provider_name"`
	SourceAsset  string          `json:"source_asset"`
	DestAsset    string          `json:"dest_asset"`
	Rate         decimal.Decimal `json:"rate"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
}

type GetDirectionsResponse struct {
	Directions []Direction `json:"directions"`
}

type BuyRequest struct {
	RequestID       string           `json:"request_id,omitempty"` // for deduplication
	ProviderName    string           `json:"provider_name" binding:"required"`
	SourceAsset     string           `json:"source_asset" binding:"required"`
	DestAsset       string           `json:"dest_asset" binding:"required"`
	DestAmount      decimal.Decimal  `json:"dest_amount"`
	MaxSourceAmount *decimal.Decimal `json:"max_source_amount,omitempty"`
}

type BuyResponse struct {
	RequestID     string `json:"request_id"`
	TransactionID int64  `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

type DryRunResponse struct {
	Possible bool `json:"possible"`
}

type Transaction struct {
	ID           int64           `json:"id"`
	ProviderName string          `json:"provider_name"`
	SourceAsset  string          `json:"source_asset"`
	DestAsset    string          `json:"dest_asset"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	DestAmount   decimal.Decimal `json:"dest_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
