package domain

import "github.com/shopspring/decimal"

// OrderItem is one buy an order manager wants sequenced: a requested
// destination amount on a named provider, optionally capped by a maximum
// source amount.
type OrderItem struct {
	ProviderName    string           `json:"provider_name"`
	SourceAsset     Asset            `json:"source_asset"`
	DestAsset       Asset            `json:"dest_asset"`
	DestAmount      decimal.Decimal  `json:"dest_amount"`
	MaxSourceAmount *decimal.Decimal `json:"max_source_amount,omitempty"`
}

// Order groups the items of one multi-provider purchase.
type Order struct {
	ID    int64       `json:"id"`
	Items []OrderItem `json:"items"`
}
