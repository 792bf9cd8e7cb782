package evaluation

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
)

type ActionType string

const (
	ActionTrade       ActionType = "trade"
	ActionArbitrage   ActionType = "arbitrage"
	ActionLiquidation ActionType = "liquidation"
)

type ActionSet map[ActionType]struct{}

func (s ActionSet) Has(t ActionType) bool {
	_, ok := s[t]
	return ok
}

func (s ActionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// PriceOracle converts an amount of token into the reference asset as of a block.
type PriceOracle interface {
	Quote(ctx context.Context, token common.Address, amount *big.Int, block uint64) (*big.Int, error)
}

type Evaluation struct {
	Inspection *inspect.Inspection
	GasUsed    uint64
	GasPrice   *big.Int
	Actions    ActionSet
	// Profit is nil when the oracle could not price it.
	Profit *big.Int
}

func (e *Evaluation) GasCost() *big.Int {
	if e.GasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(e.GasPrice, new(big.Int).SetUint64(e.GasUsed))
}

// Evaluate derives the action types of an inspection and prices its profit. On an oracle
// failure the evaluation is still returned, with a nil profit, alongside the error.
func Evaluate(ctx context.Context, insp *inspect.Inspection, oracle PriceOracle, gasUsed uint64, gasPrice *big.Int) (*Evaluation, error) {
	ev := &Evaluation{
		Inspection: insp,
		GasUsed:    gasUsed,
		GasPrice:   gasPrice,
		Actions:    make(ActionSet),
	}
	type leg struct {
		token  common.Address
		amount *big.Int
	}
	var priced []leg
	for _, c := range insp.Actions {
		switch a := c.Action().(type) {
		case inspect.Trade:
			ev.Actions[ActionTrade] = struct{}{}
		case inspect.Arbitrage:
			ev.Actions[ActionArbitrage] = struct{}{}
			if a.Profit != nil && a.Profit.Sign() > 0 {
				priced = append(priced, leg{token: a.Token, amount: a.Profit})
			}
		case inspect.Liquidation:
			ev.Actions[ActionLiquidation] = struct{}{}
		case inspect.ProfitableLiquidation:
			ev.Actions[ActionLiquidation] = struct{}{}
			priced = append(priced, leg{token: a.Token, amount: a.Profit})
		}
	}

	profit := new(big.Int)
	for _, l := range priced {
		if oracle == nil {
			return ev, fmt.Errorf("no price oracle for %s", l.token.Hex())
		}
		v, err := oracle.Quote(ctx, l.token, l.amount, insp.BlockNumber)
		if err != nil {
			return ev, fmt.Errorf("quote %s at block %d: %w", l.token.Hex(), insp.BlockNumber, err)
		}
		profit.Add(profit, v)
	}
	ev.Profit = profit
	return ev, nil
}
