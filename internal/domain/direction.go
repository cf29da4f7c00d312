package domain

import "github.com/shopspring/decimal"

// Direction is a supported (source, dest) asset pair with the nominal
// exchange rate and the maximum tradable amount denominated in the source
// asset. A provider may hold bids only for directions it has declared.
type Direction struct {
	SourceAsset Asset           `json:"source_asset"`
	DestAsset   Asset           `json:"dest_asset"`
	Rate        decimal.Decimal `json:"rate"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
}

// ProviderDirection is a direction tagged with the provider declaring it.
type ProviderDirection struct {
	ProviderName string `json:"provider_name"`
	Direction
}
