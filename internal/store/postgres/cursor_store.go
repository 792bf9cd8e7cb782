package postgres

import (
	"context"
	"fmt"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

// GetCursor returns nil without error when the cursor was never written.
func (s *EvaluationStore) GetCursor(ctx context.Context, chainID uint64, name string) (*store.Cursor, error) {
	var (
		cur   store.Cursor
		id    int64
		chain int64
		last  int64
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, chain_id, name, last_block, created_at, updated_at
		FROM cursors
		WHERE chain_id = $1 AND name = $2
	`, int64(chainID), name).Scan(&id, &chain, &cur.Name, &last, &cur.CreatedAt, &cur.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cursor: %w", err)
	}
	cur.ID = uint(id)
	cur.ChainID = uint64(chain)
	cur.LastBlock = uint64(last)
	return &cur, nil
}

func (s *EvaluationStore) UpsertCursor(ctx context.Context, cur *store.Cursor) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cursors (chain_id, name, last_block)
		VALUES ($1, $2, $3)
		ON CONFLICT (chain_id, name) DO UPDATE
		SET last_block = EXCLUDED.last_block, updated_at = NOW()
	`, int64(cur.ChainID), cur.Name, int64(cur.LastBlock))
	if err != nil {
		return fmt.Errorf("upsert cursor: %w", err)
	}
	return nil
}
