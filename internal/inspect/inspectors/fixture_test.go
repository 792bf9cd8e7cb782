package inspectors

import (
	"math/big"
	"testing"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/inspect/reducers"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchFor(reg *registry.Registry) *inspect.BatchInspector {
	return inspect.NewBatchInspector(reg, []inspect.Inspector{
		NewERC20(reg.WETH),
		NewUniswap(reg),
		NewCurve(reg.Addresses(registry.RolePool, inspect.ProtocolCurve)),
		NewBalancer(reg.Addresses(registry.RolePool, inspect.ProtocolBalancer)),
		NewAave(reg),
		NewCompound(reg),
		NewZeroEx(reg),
		NewDyDx(reg),
	}, []inspect.Reducer{
		reducers.NewLiquidationReducer(reg.WETH),
		reducers.NewTradeReducer(),
		reducers.NewArbitrageReducer(),
	}, nil)
}

// A bot buys DAI on Uniswap, probes a Sushiswap pair, repays an Aave loan with the DAI
// and walks away with more WETH collateral than it spent.
func aaveUniswapLiquidation(t *testing.T, reservesCallType inspect.CallType) []inspect.CallRecord {
	spent := wei(t, "50000000000000000000")
	debt := wei(t, "91234567890000000000000")
	collateral := wei(t, "61050220339336811520")
	aDAI := common.HexToAddress("0x028171bCA77440897B824Ca71D1c56caC55b68A3")
	aWETH := common.HexToAddress("0x030bA81f1c18d280636F32af80b9AAd02Cf0854e")

	balanceOf := static(call(path(1, 1), uniDAIWETH, registry.MainnetDAI, []byte{0x70, 0xa0, 0x82, 0x31}))
	reserves := call(path(2), bot, sushiDAIWETH, pack(t, uniswapPairABI, "getReserves"))
	reserves.CallType = reservesCallType

	return []inspect.CallRecord{
		call(nil, eoa, bot, []byte{0x4f, 0x2b, 0x91, 0x07}),
		call(path(0), bot, registry.MainnetWETH, pack(t, erc20ABI, "transfer", uniDAIWETH, spent)),
		call(path(1), bot, uniDAIWETH, pack(t, uniswapPairABI, "swap", debt, big.NewInt(0), bot, []byte{})),
		call(path(1, 0), uniDAIWETH, registry.MainnetDAI, pack(t, erc20ABI, "transfer", bot, debt)),
		balanceOf,
		reserves,
		call(path(3), bot, registry.AaveV2LendingPool, pack(t, aaveABI, "liquidationCall", registry.MainnetWETH, registry.MainnetDAI, victim, debt, false)),
		call(path(3, 0), registry.AaveV2LendingPool, registry.MainnetDAI, pack(t, erc20ABI, "transferFrom", bot, aDAI, debt)),
		call(path(3, 1), aWETH, registry.MainnetWETH, pack(t, erc20ABI, "transfer", bot, collateral)),
	}
}

func TestAaveUniswapLiquidationFixture(t *testing.T) {
	for _, callType := range []inspect.CallType{inspect.CallTypeCall, inspect.CallTypeStaticCall} {
		t.Run(callType.String(), func(t *testing.T) {
			reg := registry.Default()
			out := batchFor(reg).InspectMany(aaveUniswapLiquidation(t, callType))
			require.Len(t, out, 1)
			insp := out[0]

			assert.Equal(t, inspect.StatusSuccess, insp.Status)
			assert.Equal(t, []inspect.Protocol{inspect.ProtocolAave, inspect.ProtocolSushiswap, inspect.ProtocolUniswapV2}, insp.Protocols.Sorted())

			profitable := known[inspect.ProfitableLiquidation](insp)
			require.Len(t, profitable, 1)
			assert.Equal(t, "11050220339336811520", profitable[0].Profit.String())
			assert.Equal(t, registry.MainnetWETH, profitable[0].Token)
			assert.Equal(t, bot, profitable[0].Liquidation.From)
			assert.Len(t, known[inspect.Trade](insp), 1)
		})
	}
}

func TestStaticPreflightsMarkChecked(t *testing.T) {
	reg := registry.Default()
	cases := []struct {
		name     string
		view     inspect.CallRecord
		protocol inspect.Protocol
	}{
		{"pair reserves", static(call(path(0), bot, sushiDAIWETH, pack(t, uniswapPairABI, "getReserves"))), inspect.ProtocolSushiswap},
		{"aave account data", static(call(path(0), bot, registry.AaveV2LendingPool, pack(t, aaveABI, "getUserAccountData", victim))), inspect.ProtocolAave},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := batchFor(reg).InspectMany([]inspect.CallRecord{
				call(nil, eoa, bot, []byte{0x01, 0x02, 0x03, 0x04}),
				tc.view,
			})
			require.Len(t, out, 1)
			insp := out[0]

			assert.Equal(t, inspect.StatusChecked, insp.Status)
			assert.Equal(t, []inspect.Protocol{tc.protocol}, insp.Protocols.Sorted())
			assert.Empty(t, known[inspect.LiquidationCheck](insp))
		})
	}
}
