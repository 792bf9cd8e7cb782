package reducers

import "github.com/0xPexy/sentra-inspect/internal/inspect"

// TradeReducer fuses back-to-back transfers between the same counterparties into trades.
type TradeReducer struct{}

func NewTradeReducer() *TradeReducer { return &TradeReducer{} }

func (TradeReducer) Reduce(insp *inspect.Inspection) {
	for i := range insp.Actions {
		t1, ok := inspect.As[inspect.Transfer](insp.Actions[i])
		if !ok {
			continue
		}
		j, t2, ok := inspect.FindMatching(insp.Actions, i+1, false, continues(t1), false)
		if !ok {
			continue
		}
		insp.Actions[i] = insp.Actions[i].Reclassify(inspect.Trade{Leg1: t1, Leg2: t2})
		if _, _, reused := inspect.FindMatching(insp.Actions, j+1, false, continues(t2), false); !reused {
			insp.Actions[j] = inspect.Pruned()
		}
	}
}

// continues matches a transfer paid by whoever received prev.
func continues(prev inspect.Transfer) func(inspect.Transfer) bool {
	return func(next inspect.Transfer) bool {
		return next.From == prev.To
	}
}
