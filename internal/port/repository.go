package port

import (
	"context"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
)

// Repository persists executed transactions. Providers treat persistence as
// a side effect: a repository failure never changes a matching decision.
type Repository interface {
	SaveTransaction(ctx context.Context, t *domain.Transaction) error
	LoadTransaction(ctx context.Context, id int64) (*domain.Transaction, error)
	LoadTransactions(ctx context.Context, providerName string) ([]*domain.Transaction, error)
}
