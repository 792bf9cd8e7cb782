package reducers

import (
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
)

// LiquidationReducer attaches the collateral payout to each liquidation and prices it
// against the trade that bought the repaid debt.
type LiquidationReducer struct {
	weth common.Address
}

func NewLiquidationReducer(weth common.Address) *LiquidationReducer {
	return &LiquidationReducer{weth: weth}
}

func (r *LiquidationReducer) Reduce(insp *inspect.Inspection) {
	for i := range insp.Actions {
		liq, ok := inspect.As[inspect.Liquidation](insp.Actions[i])
		if !ok {
			continue
		}

		j, payout, ok := inspect.FindMatching(insp.Actions, i+1, false, func(t inspect.Transfer) bool {
			return t.To == liq.From && (t.Token == liq.ReceivedToken || t.Token == inspect.ETH)
		}, true)
		if ok {
			liq.ReceivedAmount = payout.Amount
			insp.Actions[j] = inspect.Pruned()
		}

		cost, ok := r.acquisitionCost(insp.Actions, i, liq)
		if ok && liq.ReceivedAmount != nil && liq.ReceivedAmount.Cmp(cost) > 0 {
			insp.Actions[i] = insp.Actions[i].Reclassify(inspect.ProfitableLiquidation{
				Liquidation: liq,
				Profit:      new(big.Int).Sub(liq.ReceivedAmount, cost),
				Token:       liq.ReceivedToken,
			})
			continue
		}
		insp.Actions[i] = insp.Actions[i].Reclassify(liq)
	}
}

// acquisitionCost finds the trade before slot i that bought the repaid debt, or failing that
// the collateral, and returns the leg of it denominated in the collateral.
func (r *LiquidationReducer) acquisitionCost(slots []inspect.Classification, i int, liq inspect.Liquidation) (*big.Int, bool) {
	for _, target := range []common.Address{liq.SentToken, liq.ReceivedToken} {
		_, trade, ok := inspect.FindMatching(slots, i-1, true, func(t inspect.Trade) bool {
			return r.same(t.Leg2.Token, target)
		}, true)
		if !ok {
			continue
		}
		switch {
		case r.same(trade.Leg2.Token, liq.ReceivedToken):
			return trade.Leg2.Amount, true
		case r.same(trade.Leg1.Token, liq.ReceivedToken):
			return trade.Leg1.Amount, true
		}
	}
	return nil, false
}

func (r *LiquidationReducer) same(a, b common.Address) bool {
	if a == b {
		return true
	}
	native := func(x common.Address) bool { return x == inspect.ETH || x == r.weth }
	return native(a) && native(b)
}
