package inspect

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ETH stands in for the native asset wherever a token address is expected.
var ETH = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// Action is a decoded financial effect. The set of variants is closed.
type Action interface {
	Name() string
	isAction()
}

type Transfer struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
	Token  common.Address `json:"token"`
}

type Deposit struct {
	From   common.Address `json:"from"`
	Amount *big.Int       `json:"amount"`
}

type Withdrawal struct {
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

type Trade struct {
	Leg1 Transfer `json:"leg1"`
	Leg2 Transfer `json:"leg2"`
}

type Arbitrage struct {
	Profit *big.Int       `json:"profit"`
	Token  common.Address `json:"token"`
	To     common.Address `json:"to"`
}

type Liquidation struct {
	SentToken      common.Address `json:"sentToken"`
	SentAmount     *big.Int       `json:"sentAmount"`
	ReceivedToken  common.Address `json:"receivedToken"`
	ReceivedAmount *big.Int       `json:"receivedAmount"`
	From           common.Address `json:"from"`
	LiquidatedUser common.Address `json:"liquidatedUser"`
}

type ProfitableLiquidation struct {
	Liquidation Liquidation    `json:"liquidation"`
	Profit      *big.Int       `json:"profit"`
	Token       common.Address `json:"token"`
}

// LiquidationCheck marks an eligibility probe that did not lead to a liquidation.
type LiquidationCheck struct{}

type AddLiquidity struct {
	Tokens  []common.Address `json:"tokens"`
	Amounts []*big.Int       `json:"amounts"`
}

type RemoveLiquidity struct {
	Tokens    []common.Address `json:"tokens"`
	Liquidity *big.Int         `json:"liquidity"`
}

type Unclassified struct {
	Input []byte `json:"input"`
}

func (Transfer) Name() string              { return "transfer" }
func (Deposit) Name() string               { return "deposit" }
func (Withdrawal) Name() string            { return "withdrawal" }
func (Trade) Name() string                 { return "trade" }
func (Arbitrage) Name() string             { return "arbitrage" }
func (Liquidation) Name() string           { return "liquidation" }
func (ProfitableLiquidation) Name() string { return "profitable_liquidation" }
func (LiquidationCheck) Name() string      { return "liquidation_check" }
func (AddLiquidity) Name() string          { return "add_liquidity" }
func (RemoveLiquidity) Name() string       { return "remove_liquidity" }
func (Unclassified) Name() string          { return "unclassified" }

func (Transfer) isAction()              {}
func (Deposit) isAction()               {}
func (Withdrawal) isAction()            {}
func (Trade) isAction()                 {}
func (Arbitrage) isAction()             {}
func (Liquidation) isAction()           {}
func (ProfitableLiquidation) isAction() {}
func (LiquidationCheck) isAction()      {}
func (AddLiquidity) isAction()          {}
func (RemoveLiquidity) isAction()       {}
func (Unclassified) isAction()          {}

// IsNative reports whether the transfer moves the native asset rather than a token.
func (t Transfer) IsNative() bool {
	return t.Token == ETH
}
