package in_memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	tx := &domain.Transaction{
		ID:           1,
		ProviderName: "x",
		SourceAsset:  "USD",
		DestAsset:    "BTC",
		SourceAmount: decimal.NewFromInt(10),
		DestAmount:   decimal.NewFromInt(500),
		Status:       domain.TxSuccess,
	}
	if err := r.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}

	got, err := r.LoadTransaction(ctx, 1)
	if err != nil {
		t.Fatalf("LoadTransaction failed: %v", err)
	}
	if got.ProviderName != "x" || !got.DestAmount.Equal(tx.DestAmount) {
		t.Errorf("loaded transaction mismatch: %+v", got)
	}

	if _, err := r.LoadTransaction(ctx, 99); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestMemoryRepoFiltersByProvider(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	_ = r.SaveTransaction(ctx, &domain.Transaction{ID: 1, ProviderName: "x"})
	_ = r.SaveTransaction(ctx, &domain.Transaction{ID: 2, ProviderName: "y"})
	_ = r.SaveTransaction(ctx, &domain.Transaction{ID: 3, ProviderName: "x"})

	txs, err := r.LoadTransactions(ctx, "x")
	if err != nil {
		t.Fatalf("LoadTransactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions for x, got %d", len(txs))
	}
}

func TestCacheSetGetInvalidateFlush(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	bids := []domain.Bid{{ProviderName: "x", SourceAsset: "USD", DestAsset: "BTC"}}

	if got, err := c.GetBids(ctx, "USD", "BTC"); err != nil || got != nil {
		t.Fatalf("expected miss as (nil, nil), got %v, %v", got, err)
	}

	if err := c.SetBids(ctx, "USD", "BTC", bids); err != nil {
		t.Fatalf("SetBids failed: %v", err)
	}
	got, err := c.GetBids(ctx, "USD", "BTC")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected hit with 1 bid, got %v, %v", got, err)
	}

	// The cache hands out copies, not aliases.
	got[0].ProviderName = "mutated"
	again, _ := c.GetBids(ctx, "USD", "BTC")
	if again[0].ProviderName != "x" {
		t.Errorf("cache content was mutated through a returned slice")
	}

	_ = c.Invalidate(ctx, "USD", "BTC")
	if got, _ := c.GetBids(ctx, "USD", "BTC"); got != nil {
		t.Errorf("expected miss after Invalidate")
	}

	_ = c.SetBids(ctx, "USD", "BTC", bids)
	_ = c.SetBids(ctx, "EUR", "BTC", bids)
	_ = c.Flush(ctx)
	if got, _ := c.GetBids(ctx, "EUR", "BTC"); got != nil {
		t.Errorf("expected empty cache after Flush")
	}
}
