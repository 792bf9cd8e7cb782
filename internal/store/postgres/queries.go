package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

const evaluationColumns = `id, tx_hash, block_number, sender, contract, proxy_impl, status,
	protocols, action_types, actions, gas_used, log_count, gas_price, profit, profit_error,
	created_at, updated_at`

func scanEvaluation(row pgx.Row) (*store.Evaluation, error) {
	var (
		ev      store.Evaluation
		id      int64
		block   int64
		gasUsed int64
	)
	err := row.Scan(
		&id, &ev.TxHash, &block, &ev.Sender, &ev.Contract, &ev.ProxyImpl, &ev.Status,
		&ev.Protocols, &ev.ActionTypes, &ev.Actions, &gasUsed, &ev.LogCount, &ev.GasPrice, &ev.Profit, &ev.ProfitError,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ev.ID = uint(id)
	ev.BlockNumber = uint64(block)
	ev.GasUsed = uint64(gasUsed)
	return &ev, nil
}

// filter builds the WHERE clause shared by the list and count queries.
func filter(params store.EvaluationListParams) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if params.FromBlock != nil {
		add("block_number >= $%d", int64(*params.FromBlock))
	}
	if params.ToBlock != nil {
		add("block_number <= $%d", int64(*params.ToBlock))
	}
	if params.Action != "" {
		add("(',' || action_types || ',') LIKE $%d", "%,"+strings.ToLower(params.Action)+",%")
	}
	if params.Protocol != "" {
		add("(',' || protocols || ',') LIKE $%d", "%,"+strings.ToLower(params.Protocol)+",%")
	}
	if params.Status != "" {
		add("status = $%d", strings.ToLower(params.Status))
	}
	if params.Sender != "" {
		add("sender = $%d", store.NormalizeAddress(params.Sender))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *EvaluationStore) ListEvaluations(ctx context.Context, params store.EvaluationListParams) ([]store.Evaluation, int64, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	where, args := filter(params)

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM evaluations"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count evaluations: %w", err)
	}

	order := " ORDER BY block_number ASC, id ASC"
	if params.SortDesc {
		order = " ORDER BY block_number DESC, id DESC"
	}
	query := fmt.Sprintf("SELECT %s FROM evaluations%s%s LIMIT %d OFFSET %d",
		evaluationColumns, where, order, limit, (page-1)*limit)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []store.Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, total, nil
}

func (s *EvaluationStore) Overview(ctx context.Context) (*store.OverviewRow, error) {
	var (
		row  store.OverviewRow
		last int64
	)
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'checked'),
			COUNT(*) FILTER (WHERE status = 'reverted'),
			COALESCE(MAX(block_number), 0)
		FROM evaluations
	`).Scan(&row.Total, &row.Checked, &row.Reverted, &last)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	row.LastBlock = uint64(last)
	for _, action := range []string{"trade", "arbitrage", "liquidation"} {
		var n int64
		err := s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM evaluations WHERE (',' || action_types || ',') LIKE $1`,
			"%,"+action+",%",
		).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("overview %s: %w", action, err)
		}
		row.ByActionType = append(row.ByActionType, store.AggregatedStat{Key: action, Count: n})
	}
	return &row, nil
}

func (s *EvaluationStore) ProfitStrings(ctx context.Context, fromBlock, toBlock uint64) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT profit FROM evaluations WHERE block_number BETWEEN $1 AND $2 AND profit <> ''`,
		int64(fromBlock), int64(toBlock),
	)
	if err != nil {
		return nil, fmt.Errorf("profits: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
