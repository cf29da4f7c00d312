package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRateZeroSourceIsMax(t *testing.T) {
	b := Bid{SourceAmount: decimal.Zero, DestAmount: decimal.NewFromInt(5)}
	if !b.Rate().Equal(MaxRate) {
		t.Fatalf("zero-cost bid rate = %s, want MaxRate", b.Rate())
	}
}

func TestRateIsDestPerSourceUnit(t *testing.T) {
	b := Bid{SourceAmount: decimal.NewFromFloat(0.5), DestAmount: decimal.NewFromInt(30)}
	if !b.Rate().Equal(decimal.NewFromInt(60)) {
		t.Fatalf("rate = %s, want 60", b.Rate())
	}
}

func TestSortBidsByRateIsStableAndDescending(t *testing.T) {
	bids := []Bid{
		{ProviderName: "a", SourceAmount: decimal.NewFromInt(1), DestAmount: decimal.NewFromInt(10)},
		{ProviderName: "b", SourceAmount: decimal.NewFromInt(1), DestAmount: decimal.NewFromInt(30)},
		{ProviderName: "c", SourceAmount: decimal.NewFromInt(1), DestAmount: decimal.NewFromInt(10)},
		{ProviderName: "d", SourceAmount: decimal.Zero, DestAmount: decimal.NewFromInt(1)},
	}
	SortBidsByRate(bids)

	if bids[0].ProviderName != "d" {
		t.Errorf("zero-cost bid must sort first, got %q", bids[0].ProviderName)
	}
	if bids[1].ProviderName != "b" {
		t.Errorf("rate 30 must come second, got %q", bids[1].ProviderName)
	}
	// Equal rates keep their original relative order.
	if bids[2].ProviderName != "a" || bids[3].ProviderName != "c" {
		t.Errorf("tie order not stable: %q, %q", bids[2].ProviderName, bids[3].ProviderName)
	}
}
