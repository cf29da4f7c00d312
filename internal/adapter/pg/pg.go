package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var _ port.Repository = (*PgRepo)(nil)

// PgRepo persists the transaction log in Postgres.
type PgRepo struct {
	pool *pgxpool.Pool
}

// call Close when finished working with the database.
func NewPgRepo(ctx context.Context, dsn string) (*PgRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	return &PgRepo{pool: pool}, nil
}

func (p *PgRepo) Close(ctx context.Context) {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PgRepo) SaveTransaction(ctx context.Context, t *domain.Transaction) error {
	if t == nil {
		return errors.New("nil transaction")
	}
	_, err := p.pool.Exec(ctx, `
INSERT INTO transactions(id, provider, source_asset, dest_asset, source_amount, dest_amount, status, created_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  provider = EXCLUDED.provider,
  source_asset = EXCLUDED.source_asset,
  dest_asset = EXCLUDED.dest_asset,
  source_amount = EXCLUDED.source_amount,
  dest_amount = EXCLUDED.dest_amount,
  status = EXCLUDED.status,
  created_at = EXCLUDED.created_at
`, t.ID, t.ProviderName, string(t.SourceAsset), string(t.DestAsset),
		t.SourceAmount, t.DestAmount, string(t.Status), t.CreatedAt)
	return err
}

func (p *PgRepo) LoadTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := p.pool.QueryRow(ctx, `
SELECT id, provider, source_asset, dest_asset, source_amount, dest_amount, status, created_at
FROM transactions
WHERE id = $1
`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTransactions returns a provider's transactions ordered by creation time.
func (p *PgRepo) LoadTransactions(ctx context.Context, providerName string) ([]*domain.Transaction, error) {
	rows, err := p.pool.Query(ctx, `
SELECT id, provider, source_asset, dest_asset, source_amount, dest_amount, status, created_at
FROM transactions
WHERE provider = $1
ORDER BY created_at ASC
`, providerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var source, dest, status string
	if err := row.Scan(&t.ID, &t.ProviderName, &source, &dest,
		&t.SourceAmount, &t.DestAmount, &status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.SourceAsset = domain.Asset(source)
	t.DestAsset = domain.Asset(dest)
	t.Status = domain.TransactionStatus(status)
	return &t, nil
}
