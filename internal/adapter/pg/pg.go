package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/port"
)

var _ port.Journal = (*PgJournal)(nil)

// PgJournal persists the execution audit trail. It never feeds state back
// into the book.
type PgJournal struct {
	pool *pgxpool.Pool
}

// call Close when finished working with the database.
func NewPgJournal(ctx context.Context, dsn string) (*PgJournal, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	return &PgJournal{pool: pool}, nil
}

func (p *PgJournal) Close(ctx context.Context) {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PgJournal) SaveFill(ctx context.Context, f *domain.Fill) error {
	if f == nil {
		return errors.New("nil fill")
	}
	_, err := p.pool.Exec(ctx, `
INSERT INTO fills(id, side, taker_order, maker_order, taker, maker, price, quantity, executed_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO NOTHING
`, f.ID, f.Side, f.TakerOrder, f.MakerOrder, f.Taker, f.Maker, f.Price, f.Quantity, f.Timestamp)
	return err
}

// RecentFills returns the latest fills, newest first.
func (p *PgJournal) RecentFills(ctx context.Context, limit int) ([]*domain.Fill, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.pool.Query(ctx, `
SELECT id, side, taker_order, maker_order, taker, maker, price, quantity, executed_at
FROM fills
ORDER BY executed_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Fill
	for rows.Next() {
		var f domain.Fill
		if err := rows.Scan(&f.ID, &f.Side, &f.TakerOrder, &f.MakerOrder, &f.Taker, &f.Maker, &f.Price, &f.Quantity, &f.Timestamp); err != nil {
			return nil, err
		}
		res = append(res, &f)
	}
	return res, rows.Err()
}
