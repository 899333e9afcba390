package handle

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps handles in the cart_handles table, one row per slot.
// Schema is applied by cmd/migrate.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Slot(name string) Store {
	return &postgresSlot{pool: p.pool, slot: name}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

type postgresSlot struct {
	pool *pgxpool.Pool
	slot string
}

func (s *postgresSlot) Load(ctx context.Context) (string, bool, error) {
	const q = `
SELECT cart_id
FROM cart_handles
WHERE slot = $1
`
	var cartID string
	if err := s.pool.QueryRow(ctx, q, s.slot).Scan(&cartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load handle: %w", err)
	}
	return cartID, true, nil
}

func (s *postgresSlot) Save(ctx context.Context, cartID string) error {
	const q = `
INSERT INTO cart_handles (slot, cart_id, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (slot) DO UPDATE
SET cart_id = EXCLUDED.cart_id, updated_at = now()
`
	if _, err := s.pool.Exec(ctx, q, s.slot, cartID); err != nil {
		return fmt.Errorf("save handle: %w", err)
	}
	return nil
}

func (s *postgresSlot) Clear(ctx context.Context) error {
	const q = `
DELETE FROM cart_handles
WHERE slot = $1
`
	if _, err := s.pool.Exec(ctx, q, s.slot); err != nil {
		return fmt.Errorf("clear handle: %w", err)
	}
	return nil
}
