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

var (
	uniDAIWETH   = common.HexToAddress("0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11")
	uniUSDCWETH  = common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc")
	sushiDAIWETH = common.HexToAddress("0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f")
)

func runAll(insp *inspect.Inspection, ins ...inspect.Inspector) {
	for _, in := range ins {
		inspect.Run(in, insp)
	}
}

func TestUniswapSwapBecomesTrade(t *testing.T) {
	reg := registry.Default()
	in, out := big.NewInt(1_000), big.NewInt(2_000)

	insp := build(t,
		call(nil, eoa, bot, []byte{0xde, 0xad, 0xbe, 0xef}),
		call(path(0), bot, registry.MainnetWETH, pack(t, erc20ABI, "transfer", uniDAIWETH, in)),
		call(path(1), bot, uniDAIWETH, pack(t, uniswapPairABI, "swap", out, big.NewInt(0), bot, []byte{})),
		call(path(1, 0), uniDAIWETH, registry.MainnetDAI, pack(t, erc20ABI, "transfer", bot, out)),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	trades := known[inspect.Trade](insp)
	require.Len(t, trades, 1)
	assert.Equal(t, registry.MainnetWETH, trades[0].Leg1.Token)
	assert.Equal(t, registry.MainnetDAI, trades[0].Leg2.Token)
	assert.Empty(t, known[inspect.Transfer](insp))
	assert.True(t, insp.Protocols.Has(inspect.ProtocolUniswapV2))
	assert.Equal(t, inspect.StatusSuccess, insp.Status)
}

func TestUniswapMultiHopReusesIntermediateTransfer(t *testing.T) {
	reg := registry.Default()
	amt := big.NewInt(10)

	insp := build(t,
		call(nil, eoa, registry.UniswapV2Router, []byte{0x38, 0xed, 0x17, 0x39}),
		call(path(0), registry.UniswapV2Router, tokenA, pack(t, erc20ABI, "transferFrom", eoa, somePool, amt)),
		call(path(1), registry.UniswapV2Router, somePool, pack(t, uniswapPairABI, "swap", big.NewInt(0), amt, otherPool, []byte{})),
		call(path(1, 0), somePool, tokenB, pack(t, erc20ABI, "transfer", otherPool, amt)),
		call(path(2), registry.UniswapV2Router, otherPool, pack(t, uniswapPairABI, "swap", amt, big.NewInt(0), eoa, []byte{})),
		call(path(2, 0), otherPool, registry.MainnetWETH, pack(t, erc20ABI, "transfer", eoa, amt)),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	trades := known[inspect.Trade](insp)
	require.Len(t, trades, 2)
	assert.Equal(t, tokenA, trades[0].Leg1.Token)
	assert.Equal(t, tokenB, trades[0].Leg2.Token)
	assert.Equal(t, tokenB, trades[1].Leg1.Token)
	assert.Equal(t, registry.MainnetWETH, trades[1].Leg2.Token)
	assert.True(t, insp.Protocols.Has(inspect.ProtocolUniswappy))
}

func TestUniswapFlashSwapIsTaggedOnly(t *testing.T) {
	reg := registry.Default()
	amt := big.NewInt(10)

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, uniUSDCWETH, pack(t, uniswapPairABI, "swap", amt, big.NewInt(0), bot, []byte{0x01})),
		call(path(0, 0), uniUSDCWETH, registry.MainnetUSDC, pack(t, erc20ABI, "transfer", bot, amt)),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	assert.Empty(t, known[inspect.Trade](insp))
	assert.True(t, insp.Protocols.Has(inspect.ProtocolFlashloan))
	assert.True(t, insp.Protocols.Has(inspect.ProtocolUniswapV2))
}

func TestUniswapPreflightMarksChecked(t *testing.T) {
	reg := registry.Default()
	getReserves := pack(t, uniswapPairABI, "getReserves")

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, sushiDAIWETH, getReserves),
		call(path(1), bot, uniDAIWETH, getReserves),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	assert.Equal(t, inspect.StatusChecked, insp.Status)
	assert.True(t, insp.Protocols.Has(inspect.ProtocolSushiswap))
	assert.True(t, insp.Protocols.Has(inspect.ProtocolUniswapV2))
	require.Len(t, insp.Actions, 1)
}

func TestUniswapAddLiquidityPrunesSubtrace(t *testing.T) {
	reg := registry.Default()
	a, b := big.NewInt(100), big.NewInt(200)
	deadline := big.NewInt(1_700_000_000)

	insp := build(t,
		call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
		call(path(0), bot, registry.SushiswapRouter, pack(t, uniswapRouterABI, "addLiquidity", tokenA, tokenB, a, b, a, b, bot, deadline)),
		call(path(0, 0), registry.SushiswapRouter, tokenA, pack(t, erc20ABI, "transferFrom", bot, somePool, a)),
		call(path(0, 1), registry.SushiswapRouter, tokenB, pack(t, erc20ABI, "transferFrom", bot, somePool, b)),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	require.Len(t, insp.Actions, 2)
	add, ok := inspect.As[inspect.AddLiquidity](insp.Actions[1])
	require.True(t, ok)
	assert.Equal(t, []common.Address{tokenA, tokenB}, add.Tokens)
	assert.True(t, insp.Protocols.Has(inspect.ProtocolSushiswap))
}

func TestUniswapAddLiquidityETHOverridesNativeTransfer(t *testing.T) {
	reg := registry.Default()
	value := big.NewInt(3)
	deadline := big.NewInt(1_700_000_000)

	insp := build(t,
		withValue(call(nil, eoa, registry.UniswapV2Router, pack(t, uniswapRouterABI, "addLiquidityETH", tokenA, big.NewInt(9), big.NewInt(9), value, eoa, deadline)), value),
	)
	runAll(insp, NewERC20(reg.WETH), NewUniswap(reg))

	add, ok := inspect.As[inspect.AddLiquidity](insp.Actions[0])
	require.True(t, ok)
	assert.Equal(t, []common.Address{tokenA, reg.WETH}, add.Tokens)
	assert.Equal(t, value, add.Amounts[1])
}
