package in_memory

import (
	"context"
	"errors"
	"sync"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var _ port.Repository = (*MemoryRepo)(nil)

var ErrTransactionNotFound = errors.New("transaction not found")

// MemoryRepo keeps the transaction log in process memory. Used by tests and
// the in-memory deployment mode.
type MemoryRepo struct {
	mu           sync.Mutex
	transactions map[int64]*domain.Transaction
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{transactions: make(map[int64]*domain.Transaction)}
}

func (r *MemoryRepo) SaveTransaction(ctx context.Context, t *domain.Transaction) error {
	if t == nil {
		return errors.New("nil transaction")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *MemoryRepo) LoadTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryRepo) LoadTransactions(ctx context.Context, providerName string) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.Transaction
	for _, t := range r.transactions {
		if t.ProviderName == providerName {
			cp := *t
			res = append(res, &cp)
		}
	}
	return res, nil
}
