package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TxCreated  TransactionStatus = "CREATED"
	TxSettled  TransactionStatus = "SETTLED"
	TxSuccess  TransactionStatus = "SUCCESS"
	TxError    TransactionStatus = "ERROR"
	TxRejected TransactionStatus = "REJECTED"
)

// Transaction records one executed buy. It is created by a provider's
// matching algorithm and never mutated afterwards; settlement is owned by an
// external collaborator.
type Transaction struct {
	ID           int64             `json:"id"`
	ProviderName string            `json:"provider_name"`
	SourceAsset  Asset             `json:"source_asset"`
	DestAsset    Asset             `json:"dest_asset"`
	SourceAmount decimal.Decimal   `json:"source_amount"`
	DestAmount   decimal.Decimal   `json:"dest_amount"`
	Status       TransactionStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Rate returns the effective execution rate. The second result is false when
// the source amount is zero and no rate is defined.
func (t *Transaction) Rate() (decimal.Decimal, bool) {
	if t.SourceAmount.IsZero() {
		return decimal.Zero, false
	}
	return t.DestAmount.Div(t.SourceAmount), true
}
