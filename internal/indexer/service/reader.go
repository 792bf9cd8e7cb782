package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/0xPexy/sentra-inspect/internal/store"
)

// Store is the read side shared by the sqlite repository and the postgres store.
type Store interface {
	ListEvaluations(ctx context.Context, params store.EvaluationListParams) ([]store.Evaluation, int64, error)
	GetEvaluation(ctx context.Context, txHash string) (*store.Evaluation, error)
	Overview(ctx context.Context) (*store.OverviewRow, error)
	ProfitStrings(ctx context.Context, fromBlock, toBlock uint64) ([]string, error)
}

type Reader struct {
	repo Store
	reg  *registry.Registry
}

func NewReader(repo Store, reg *registry.Registry) *Reader {
	return &Reader{repo: repo, reg: reg}
}

type ListEvaluationsParams struct {
	Action    string
	Protocol  string
	Status    string
	Sender    string
	FromBlock *uint64
	ToBlock   *uint64
	Page      int
	Limit     int
	SortDesc  bool
}

type EvaluationItem struct {
	TxHash        string   `json:"txHash"`
	BlockNumber   uint64   `json:"blockNumber"`
	Sender        string   `json:"sender"`
	SenderLabel   string   `json:"senderLabel,omitempty"`
	Contract      string   `json:"contract"`
	ContractLabel string   `json:"contractLabel,omitempty"`
	Status        string   `json:"status"`
	Protocols     []string `json:"protocols"`
	ActionTypes   []string `json:"actionTypes"`
	GasUsed       uint64   `json:"gasUsed"`
	GasPrice      string   `json:"gasPrice,omitempty"`
	GasCostEth    string   `json:"gasCostEth,omitempty"`
	Profit        string   `json:"profit,omitempty"`
	ProfitEth     string   `json:"profitEth,omitempty"`
	ProfitError   string   `json:"profitError,omitempty"`
	LogCount      int      `json:"logCount"`
}

type ListEvaluationsResult struct {
	Items    []EvaluationItem `json:"items"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	HasNext  bool             `json:"hasNext"`
	NextPage int              `json:"nextPage,omitempty"`
}

func (r *Reader) ListEvaluations(ctx context.Context, params ListEvaluationsParams) (*ListEvaluationsResult, error) {
	rows, total, err := r.repo.ListEvaluations(ctx, store.EvaluationListParams{
		FromBlock: params.FromBlock,
		ToBlock:   params.ToBlock,
		Action:    params.Action,
		Protocol:  params.Protocol,
		Status:    params.Status,
		Sender:    params.Sender,
		Page:      params.Page,
		Limit:     params.Limit,
		SortDesc:  params.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	items := make([]EvaluationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.Item(row))
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	hasNext := int64(page*limit) < total
	var nextPage int
	if hasNext {
		nextPage = page + 1
	}
	return &ListEvaluationsResult{
		Items:    items,
		Page:     page,
		Limit:    limit,
		Total:    total,
		HasNext:  hasNext,
		NextPage: nextPage,
	}, nil
}

type EvaluationDetail struct {
	EvaluationItem
	ProxyImpl string          `json:"proxyImpl,omitempty"`
	Actions   json.RawMessage `json:"actions"`
}

// GetEvaluation returns nil when the hash was never evaluated.
func (r *Reader) GetEvaluation(ctx context.Context, txHash string) (*EvaluationDetail, error) {
	row, err := r.repo.GetEvaluation(ctx, txHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	actions := json.RawMessage(row.Actions)
	if !json.Valid(actions) {
		actions = json.RawMessage("[]")
	}
	return &EvaluationDetail{
		EvaluationItem: r.Item(*row),
		ProxyImpl:      row.ProxyImpl,
		Actions:        actions,
	}, nil
}

type OverviewStatsParams struct {
	FromBlock uint64
	ToBlock   uint64
}

type OverviewStats struct {
	Total          int64            `json:"total"`
	Checked        int64            `json:"checked"`
	Reverted       int64            `json:"reverted"`
	LastBlock      uint64           `json:"lastBlock"`
	ByActionType   map[string]int64 `json:"byActionType"`
	FromBlock      uint64           `json:"fromBlock"`
	ToBlock        uint64           `json:"toBlock"`
	TotalProfit    string           `json:"totalProfit"`
	TotalProfitEth string           `json:"totalProfitEth"`
}

// OverviewStats sums counts over the whole table and profit over the block range.
// A zero ToBlock means up to the last evaluated block.
func (r *Reader) OverviewStats(ctx context.Context, params OverviewStatsParams) (*OverviewStats, error) {
	row, err := r.repo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	stats := &OverviewStats{
		Total:        row.Total,
		Checked:      row.Checked,
		Reverted:     row.Reverted,
		LastBlock:    row.LastBlock,
		ByActionType: make(map[string]int64, len(row.ByActionType)),
		FromBlock:    params.FromBlock,
		ToBlock:      params.ToBlock,
	}
	for _, s := range row.ByActionType {
		stats.ByActionType[s.Key] = s.Count
	}
	if stats.ToBlock == 0 {
		stats.ToBlock = row.LastBlock
	}

	profits, err := r.repo.ProfitStrings(ctx, stats.FromBlock, stats.ToBlock)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, p := range profits {
		if v, ok := new(big.Int).SetString(p, 10); ok {
			total.Add(total, v)
		}
	}
	stats.TotalProfit = total.String()
	stats.TotalProfitEth = formatEther(total)
	return stats, nil
}

type AddressReport struct {
	Address     string           `json:"address"`
	Label       string           `json:"label,omitempty"`
	Protocol    string           `json:"protocol,omitempty"`
	Role        string           `json:"role,omitempty"`
	Denied      bool             `json:"denied"`
	Evaluations []EvaluationItem `json:"evaluations"`
	Total       int64            `json:"total"`
}

// AddressReport joins the registry entry of an address with the evaluations it sent.
func (r *Reader) AddressReport(ctx context.Context, address string, page, limit int) (*AddressReport, error) {
	addr := common.HexToAddress(address)
	report := &AddressReport{Address: store.NormalizeAddress(addr.Hex())}
	if r.reg != nil {
		if entry, ok := r.reg.Lookup(addr); ok {
			report.Label = entry.Label
			report.Protocol = string(entry.Protocol)
			report.Role = string(entry.Role)
			report.Denied = entry.Deny
		}
	}
	list, err := r.ListEvaluations(ctx, ListEvaluationsParams{
		Sender:   report.Address,
		Page:     page,
		Limit:    limit,
		SortDesc: true,
	})
	if err != nil {
		return nil, err
	}
	report.Evaluations = list.Items
	report.Total = list.Total
	return report, nil
}

// Item converts a stored row into its API shape, labelling known addresses.
func (r *Reader) Item(row store.Evaluation) EvaluationItem {
	item := EvaluationItem{
		TxHash:      row.TxHash,
		BlockNumber: row.BlockNumber,
		Sender:      row.Sender,
		Contract:    row.Contract,
		Status:      row.Status,
		Protocols:   splitList(row.Protocols),
		ActionTypes: splitList(row.ActionTypes),
		GasUsed:     row.GasUsed,
		GasPrice:    row.GasPrice,
		Profit:      row.Profit,
		ProfitError: row.ProfitError,
		LogCount:    row.LogCount,
	}
	if r.reg != nil {
		item.SenderLabel = r.reg.Label(common.HexToAddress(row.Sender))
		item.ContractLabel = r.reg.Label(common.HexToAddress(row.Contract))
	}
	if price, ok := new(big.Int).SetString(row.GasPrice, 10); ok {
		cost := new(big.Int).Mul(price, new(big.Int).SetUint64(row.GasUsed))
		item.GasCostEth = formatEther(cost)
	}
	if profit, ok := new(big.Int).SetString(row.Profit, 10); ok {
		item.ProfitEth = formatEther(profit)
	}
	return item
}

// formatEther renders a wei amount in ether without losing precision.
func formatEther(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -18).String()
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
