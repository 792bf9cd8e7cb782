package reducers

import (
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
)

// ArbitrageReducer closes trade loops that end in the asset they started from.
type ArbitrageReducer struct{}

func NewArbitrageReducer() *ArbitrageReducer { return &ArbitrageReducer{} }

func (ArbitrageReducer) Reduce(insp *inspect.Inspection) {
	for i := range insp.Actions {
		first, ok := inspect.As[inspect.Trade](insp.Actions[i])
		if !ok {
			continue
		}
		j, last, ok := inspect.FindMatching(insp.Actions, i+1, false, func(t inspect.Trade) bool {
			return t.Leg2.Token == first.Leg1.Token
		}, true)
		if !ok {
			continue
		}
		profit := new(big.Int).Sub(last.Leg2.Amount, first.Leg1.Amount)
		if profit.Sign() < 0 {
			profit.SetInt64(0)
		}
		insp.Actions[i] = insp.Actions[i].Reclassify(inspect.Arbitrage{
			Profit: profit,
			Token:  last.Leg2.Token,
			To:     last.Leg2.To,
		})
		for k := i + 1; k <= j; k++ {
			insp.Actions[k] = inspect.Pruned()
		}
	}
}
