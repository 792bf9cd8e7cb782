package evaluation

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doubleOracle struct{ calls int }

func (o *doubleOracle) Quote(_ context.Context, _ common.Address, amount *big.Int, _ uint64) (*big.Int, error) {
	o.calls++
	return new(big.Int).Mul(amount, big.NewInt(2)), nil
}

type failingOracle struct{}

func (failingOracle) Quote(context.Context, common.Address, *big.Int, uint64) (*big.Int, error) {
	return nil, errors.New("no route")
}

func sample() *inspect.Inspection {
	token := common.HexToAddress("0x01")
	user := common.HexToAddress("0x02")
	tr := inspect.Transfer{From: user, To: user, Amount: big.NewInt(1), Token: token}
	return &inspect.Inspection{
		BlockNumber: 100,
		Protocols:   inspect.NewProtocolSet(),
		Actions: []inspect.Classification{
			inspect.Known(inspect.Trade{Leg1: tr, Leg2: tr}, []int{0}),
			inspect.Known(inspect.Arbitrage{Profit: big.NewInt(10), Token: token, To: user}, []int{1}),
			inspect.Known(inspect.Arbitrage{Profit: big.NewInt(0), Token: token, To: user}, []int{2}),
			inspect.Known(inspect.ProfitableLiquidation{Profit: big.NewInt(5), Token: token}, []int{3}),
		},
	}
}

func TestEvaluateSumsQuotedProfit(t *testing.T) {
	oracle := &doubleOracle{}
	ev, err := Evaluate(context.Background(), sample(), oracle, 21_000, big.NewInt(3))
	require.NoError(t, err)

	assert.Equal(t, []string{"arbitrage", "liquidation", "trade"}, ev.Actions.Strings())
	assert.Equal(t, int64(30), ev.Profit.Int64())
	assert.Equal(t, 2, oracle.calls)
	assert.Equal(t, int64(63_000), ev.GasCost().Int64())
}

func TestEvaluateKeepsPartialDataOnOracleFailure(t *testing.T) {
	ev, err := Evaluate(context.Background(), sample(), failingOracle{}, 21_000, big.NewInt(3))
	require.Error(t, err)
	require.NotNil(t, ev)
	assert.Nil(t, ev.Profit)
	assert.True(t, ev.Actions.Has(ActionTrade))
}

func TestEvaluateWithoutProfitNeedsNoOracle(t *testing.T) {
	insp := &inspect.Inspection{Protocols: inspect.NewProtocolSet()}
	ev, err := Evaluate(context.Background(), insp, nil, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ev.Profit.Sign())
	assert.Empty(t, ev.Actions)
}
