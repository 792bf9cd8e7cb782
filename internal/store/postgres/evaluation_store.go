package postgres

import (
	"context"
	"fmt"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

// EvaluationStore writes store.Evaluation rows with plain SQL.
type EvaluationStore struct {
	pool *Pool
}

func NewEvaluationStore(pool *Pool) *EvaluationStore {
	return &EvaluationStore{pool: pool}
}

// InsertEvaluation returns store.ErrDuplicate when the tx hash already exists.
func (s *EvaluationStore) InsertEvaluation(ctx context.Context, ev *store.Evaluation) error {
	ev.TxHash = store.NormalizeHash(ev.TxHash)
	var id int64
	query := `
		INSERT INTO evaluations (
			tx_hash, block_number, sender, contract, proxy_impl, status,
			protocols, action_types, actions, gas_used, log_count, gas_price, profit, profit_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	err := s.pool.QueryRow(ctx, query,
		ev.TxHash,
		int64(ev.BlockNumber),
		ev.Sender,
		ev.Contract,
		ev.ProxyImpl,
		ev.Status,
		ev.Protocols,
		ev.ActionTypes,
		ev.Actions,
		int64(ev.GasUsed),
		ev.LogCount,
		ev.GasPrice,
		ev.Profit,
		ev.ProfitError,
	).Scan(&id, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("insert evaluation: %w", err)
	}
	ev.ID = uint(id)
	return nil
}

func (s *EvaluationStore) EvaluationExists(ctx context.Context, txHash string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM evaluations WHERE tx_hash = $1)`,
		store.NormalizeHash(txHash),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("evaluation exists: %w", err)
	}
	return exists, nil
}

func (s *EvaluationStore) GetEvaluation(ctx context.Context, txHash string) (*store.Evaluation, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+evaluationColumns+" FROM evaluations WHERE tx_hash = $1",
		store.NormalizeHash(txHash),
	)
	ev, err := scanEvaluation(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get evaluation: %w", err)
	}
	return ev, nil
}
