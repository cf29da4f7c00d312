package fake

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/idgen"
)

func TestGeneratedBidCountAndPrecision(t *testing.T) {
	p := New("gen", idgen.New(), nil, nil, rand.New(rand.NewSource(42)))
	p.AddDirection(usd, eur, dec("0.92"), dec("10000"))

	bids, _ := p.GetBids(context.Background(), usd, eur)
	if len(bids) != bidsPerDirection {
		t.Fatalf("expected %d generated bids, got %d", bidsPerDirection, len(bids))
	}
	for i, b := range bids {
		if b.DestAmount.Exponent() < -decimalPrecision {
			t.Errorf("bid %d: dest amount %s not rounded to %d places", i, b.DestAmount, decimalPrecision)
		}
		if b.SourceAmount.Exponent() < -decimalPrecision {
			t.Errorf("bid %d: source amount %s not rounded to %d places", i, b.SourceAmount, decimalPrecision)
		}
		if b.ProviderName != "gen" {
			t.Errorf("bid %d: provider name %q", i, b.ProviderName)
		}
	}
}

func TestGeneratedBidsDispersedAroundNominals(t *testing.T) {
	rate := dec("100")
	overall := dec("1000")
	p := New("gen", idgen.New(), nil, nil, rand.New(rand.NewSource(7)))
	p.AddDirection(usd, eur, rate, overall)

	// Bounds widened slightly: both the rate and the derived source amount
	// are rounded to two places.
	rateLow, rateHigh := dec("89.9"), dec("110.1")
	avgDest := overall.Mul(rate).Div(dec("100")) // 1000 per bid
	destLow := avgDest.Mul(dec("0.4")).Sub(dec("0.01"))
	destHigh := avgDest.Mul(dec("1.6")).Add(dec("0.01"))

	bids, _ := p.GetBids(context.Background(), usd, eur)
	for i, b := range bids {
		r := b.DestAmount.Div(b.SourceAmount)
		if r.LessThan(rateLow) || r.GreaterThan(rateHigh) {
			t.Errorf("bid %d: rate %s outside dispersion bounds", i, r)
		}
		if b.DestAmount.LessThan(destLow) || b.DestAmount.GreaterThan(destHigh) {
			t.Errorf("bid %d: dest amount %s outside dispersion bounds", i, b.DestAmount)
		}
	}
}

func TestGenerationDeterministicWithSeededSource(t *testing.T) {
	a := New("a", idgen.New(), nil, nil, rand.New(rand.NewSource(3)))
	b := New("a", idgen.New(), nil, nil, rand.New(rand.NewSource(3)))
	a.AddDirection(usd, eur, dec("1.1"), dec("500"))
	b.AddDirection(usd, eur, dec("1.1"), dec("500"))

	ab, _ := a.GetBids(context.Background(), usd, eur)
	bb, _ := b.GetBids(context.Background(), usd, eur)
	if len(ab) != len(bb) {
		t.Fatalf("bid counts differ: %d vs %d", len(ab), len(bb))
	}
	for i := range ab {
		if !ab[i].SourceAmount.Equal(bb[i].SourceAmount) || !ab[i].DestAmount.Equal(bb[i].DestAmount) {
			t.Fatalf("bid %d differs between identically seeded providers", i)
		}
	}
}

func TestAddDirectionReplacesExisting(t *testing.T) {
	p := New("gen", idgen.New(), nil, nil, rand.New(rand.NewSource(1)))
	p.AddDirection(usd, eur, dec("1.1"), dec("500"))
	p.AddDirectionBids(usd, eur, dec("1.2"), []domain.Bid{
		{SourceAmount: dec("10"), DestAmount: dec("12")},
	})

	bids, _ := p.GetBids(context.Background(), usd, eur)
	if len(bids) != 1 {
		t.Fatalf("expected replacement book with 1 bid, got %d", len(bids))
	}

	dirs, _ := p.GetDirections(context.Background())
	if len(dirs) != 1 {
		t.Fatalf("expected 1 direction after replacement, got %d", len(dirs))
	}
	if !dirs[0].Rate.Equal(dec("1.2")) {
		t.Errorf("expected nominal rate 1.2, got %s", dirs[0].Rate)
	}
	if !dirs[0].MaxAmount.Equal(dec("10")) {
		t.Errorf("expected max amount from bid sum, got %s", dirs[0].MaxAmount)
	}
}

func TestAddDirectionBidsRejectsNegativeAmounts(t *testing.T) {
	p := New("gen", idgen.New(), nil, nil, rand.New(rand.NewSource(1)))
	_ = p.AddDirectionBids(usd, eur, dec("1.2"), []domain.Bid{
		{SourceAmount: dec("10"), DestAmount: dec("12")},
	})

	cases := []struct {
		name string
		bids []domain.Bid
	}{
		{"negative dest", []domain.Bid{{SourceAmount: dec("1"), DestAmount: dec("-50")}}},
		{"negative source", []domain.Bid{{SourceAmount: dec("-1"), DestAmount: dec("50")}}},
		{"mixed with valid", []domain.Bid{
			{SourceAmount: dec("1"), DestAmount: dec("50")},
			{SourceAmount: dec("2"), DestAmount: dec("-1")},
		}},
	}
	for _, tc := range cases {
		err := p.AddDirectionBids(usd, eur, dec("1.2"), tc.bids)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("%s: expected ErrInvalidAmount, got %v", tc.name, err)
		}
	}

	// Rejected lists leave the existing book untouched.
	bids, _ := p.GetBids(context.Background(), usd, eur)
	if len(bids) != 1 || !bids[0].DestAmount.Equal(dec("12")) {
		t.Fatalf("book changed after rejected bid lists: %+v", bids)
	}
}

func TestRemoveDirectionRemovesBids(t *testing.T) {
	p := New("gen", idgen.New(), nil, nil, rand.New(rand.NewSource(1)))
	p.AddDirection(usd, eur, dec("1.1"), dec("500"))
	p.AddDirection(usd, btc, dec("50"), dec("100"))

	p.RemoveDirection(usd, eur)

	if bids, _ := p.GetBids(context.Background(), usd, eur); len(bids) != 0 {
		t.Errorf("expected no bids after RemoveDirection, got %d", len(bids))
	}
	if bids, _ := p.GetBids(context.Background(), usd, btc); len(bids) != bidsPerDirection {
		t.Errorf("unrelated direction lost bids: %d", len(bids))
	}
	dirs, _ := p.GetDirections(context.Background())
	if len(dirs) != 1 {
		t.Errorf("expected 1 remaining direction, got %d", len(dirs))
	}
}
