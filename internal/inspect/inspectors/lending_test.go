package inspectors

import (
	"math/big"
	"testing"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aaveCore = common.HexToAddress("0x3dfd23A6c5E8BbcFc9581d2E864a68feb6a076d3")

func TestAaveLiquidationFillsCollateralFromSubtrace(t *testing.T) {
	reg := registry.Default()
	manager := common.HexToAddress("0x1a7dE2b1d3fB11Bc5e5a4F3C5Ef2b0cb8D1a2d3e")

	delegate := call(path(0, 0), registry.AaveV1LendingPool, manager, nil)
	delegate.CallType = inspect.CallTypeDelegateCall

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.AaveV1LendingPool, pack(t, aaveABI, "liquidationCall", tokenB, tokenA, victim, big.NewInt(500), false)),
		delegate,
		call(path(0, 0, 0), registry.AaveV1LendingPool, tokenA, pack(t, erc20ABI, "transferFrom", bot, aaveCore, big.NewInt(500))),
		call(path(0, 0, 1), aaveCore, tokenB, pack(t, erc20ABI, "transfer", bot, big.NewInt(600))),
	)
	runAll(insp, NewERC20(reg.WETH), NewAave(reg))

	require.Len(t, insp.Actions, 2)
	liq, ok := inspect.As[inspect.Liquidation](insp.Actions[1])
	require.True(t, ok)
	assert.Equal(t, tokenA, liq.SentToken)
	assert.Equal(t, int64(500), liq.SentAmount.Int64())
	assert.Equal(t, tokenB, liq.ReceivedToken)
	assert.Equal(t, int64(600), liq.ReceivedAmount.Int64())
	assert.Equal(t, bot, liq.From)
	assert.Equal(t, victim, liq.LiquidatedUser)
	assert.True(t, insp.Protocols.Has(inspect.ProtocolAave))
	assert.Equal(t, inspect.StatusSuccess, insp.Status)
}

func TestAaveNativeCollateralPayout(t *testing.T) {
	reg := registry.Default()

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.AaveV1LendingPool, pack(t, aaveABI, "liquidationCall", inspect.ETH, tokenA, victim, big.NewInt(500), false)),
		withValue(call(path(0, 0), aaveCore, bot, nil), big.NewInt(42)),
	)
	runAll(insp, NewERC20(reg.WETH), NewAave(reg))

	liqs := known[inspect.Liquidation](insp)
	require.Len(t, liqs, 1)
	assert.Equal(t, int64(42), liqs[0].ReceivedAmount.Int64())
}

func TestAaveEligibilityProbeMarksChecked(t *testing.T) {
	reg := registry.Default()

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.AaveV2LendingPool, pack(t, aaveABI, "getUserAccountData", victim)),
	)
	runAll(insp, NewERC20(reg.WETH), NewAave(reg))

	assert.Equal(t, inspect.StatusChecked, insp.Status)
	assert.Len(t, known[inspect.LiquidationCheck](insp), 1)
}

func TestAaveFlashLoanIsTagged(t *testing.T) {
	reg := registry.Default()
	assets := []common.Address{registry.MainnetDAI}
	amounts := []*big.Int{big.NewInt(1)}
	modes := []*big.Int{big.NewInt(0)}

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.AaveV2LendingPool, pack(t, aaveV2ABI, "flashLoan", bot, assets, amounts, modes, bot, []byte{}, uint16(0))),
	)
	runAll(insp, NewERC20(reg.WETH), NewAave(reg))

	assert.True(t, insp.Protocols.Has(inspect.ProtocolFlashloan))
	assert.True(t, insp.Protocols.Has(inspect.ProtocolAave))
}

func TestCompoundLiquidationUsesSeize(t *testing.T) {
	reg := registry.Default()

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.CDAI, pack(t, cTokenABI, "liquidateBorrow", victim, big.NewInt(100), registry.CEther)),
		call(path(0, 0), registry.CDAI, registry.CompoundComptroller, pack(t, comptrollerABI, "liquidateBorrowAllowed", registry.CDAI, registry.CEther, bot, victim, big.NewInt(100))),
		call(path(0, 1), registry.CDAI, registry.MainnetDAI, pack(t, erc20ABI, "transferFrom", bot, registry.CDAI, big.NewInt(100))),
		call(path(0, 2), registry.CDAI, registry.CEther, pack(t, cTokenABI, "seize", bot, victim, big.NewInt(4242))),
	)
	runAll(insp, NewERC20(reg.WETH), NewCompound(reg))

	require.Len(t, insp.Actions, 2)
	liq, ok := inspect.As[inspect.Liquidation](insp.Actions[1])
	require.True(t, ok)
	assert.Equal(t, registry.MainnetDAI, liq.SentToken)
	assert.Equal(t, registry.CEther, liq.ReceivedToken)
	assert.Equal(t, int64(4242), liq.ReceivedAmount.Int64())
	assert.Equal(t, inspect.StatusSuccess, insp.Status)
	assert.True(t, insp.Protocols.Has(inspect.ProtocolCompound))
}

func TestCompoundNativeLiquidation(t *testing.T) {
	reg := registry.Default()

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		withValue(call(path(0), bot, registry.CEther, pack(t, cEtherABI, "liquidateBorrow", victim, registry.CDAI)), big.NewInt(5)),
		call(path(0, 0), registry.CEther, registry.CDAI, pack(t, cTokenABI, "seize", bot, victim, big.NewInt(77))),
	)
	runAll(insp, NewERC20(reg.WETH), NewCompound(reg))

	liqs := known[inspect.Liquidation](insp)
	require.Len(t, liqs, 1)
	assert.Equal(t, inspect.ETH, liqs[0].SentToken)
	assert.Equal(t, int64(5), liqs[0].SentAmount.Int64())
	assert.Equal(t, int64(77), liqs[0].ReceivedAmount.Int64())
}

func TestCompoundCheckOnly(t *testing.T) {
	reg := registry.Default()

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.CompoundComptroller, pack(t, comptrollerABI, "liquidateBorrowAllowed", registry.CDAI, registry.CEther, bot, victim, big.NewInt(100))),
	)
	runAll(insp, NewERC20(reg.WETH), NewCompound(reg))

	assert.Equal(t, inspect.StatusChecked, insp.Status)
}
