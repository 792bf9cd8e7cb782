package store

import (
	"context"
	"strings"
)

type EvaluationListParams struct {
	FromBlock *uint64
	ToBlock   *uint64
	Action    string
	Protocol  string
	Status    string
	Sender    string
	Page      int
	Limit     int
	SortDesc  bool
}

func (r *Repository) ListEvaluations(ctx context.Context, params EvaluationListParams) ([]Evaluation, int64, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	query := r.db.WithContext(ctx).Model(&Evaluation{})
	if params.FromBlock != nil {
		query = query.Where("block_number >= ?", *params.FromBlock)
	}
	if params.ToBlock != nil {
		query = query.Where("block_number <= ?", *params.ToBlock)
	}
	if params.Action != "" {
		query = query.Where("(',' || action_types || ',') LIKE ?", "%,"+strings.ToLower(params.Action)+",%")
	}
	if params.Protocol != "" {
		query = query.Where("(',' || protocols || ',') LIKE ?", "%,"+strings.ToLower(params.Protocol)+",%")
	}
	if params.Status != "" {
		query = query.Where("status = ?", strings.ToLower(params.Status))
	}
	if params.Sender != "" {
		query = query.Where("sender = ?", NormalizeAddress(params.Sender))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "block_number asc, id asc"
	if params.SortDesc {
		order = "block_number desc, id desc"
	}
	var out []Evaluation
	err := query.Order(order).Limit(limit).Offset((page - 1) * limit).Find(&out).Error
	return out, total, err
}

type AggregatedStat struct {
	Key   string
	Count int64
}

type OverviewRow struct {
	Total        int64
	Checked      int64
	Reverted     int64
	LastBlock    uint64
	ByActionType []AggregatedStat
}

// Overview counts evaluations per status and per action type.
func (r *Repository) Overview(ctx context.Context) (*OverviewRow, error) {
	var row OverviewRow
	base := r.db.WithContext(ctx).Model(&Evaluation{})
	if err := base.Count(&row.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&Evaluation{}).Where("status = ?", "checked").Count(&row.Checked).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&Evaluation{}).Where("status = ?", "reverted").Count(&row.Reverted).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&Evaluation{}).Select("COALESCE(MAX(block_number), 0)").Scan(&row.LastBlock).Error; err != nil {
		return nil, err
	}
	for _, action := range []string{"trade", "arbitrage", "liquidation"} {
		var n int64
		err := r.db.WithContext(ctx).Model(&Evaluation{}).
			Where("(',' || action_types || ',') LIKE ?", "%,"+action+",%").
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		row.ByActionType = append(row.ByActionType, AggregatedStat{Key: action, Count: n})
	}
	return &row, nil
}

// ProfitStrings returns the non-empty profit figures of evaluations in a block range.
func (r *Repository) ProfitStrings(ctx context.Context, fromBlock, toBlock uint64) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&Evaluation{}).
		Where("block_number BETWEEN ? AND ? AND profit <> ''", fromBlock, toBlock).
		Pluck("profit", &out).Error
	return out, err
}
