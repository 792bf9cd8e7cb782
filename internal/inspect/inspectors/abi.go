package inspectors

import (
	"bytes"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func mustParseABI(jsonStr string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(jsonStr))
	if err != nil {
		panic(err)
	}
	return parsed
}

// decodeCall matches the selector and unpacks the arguments of m.
func decodeCall(m abi.Method, input []byte) ([]any, bool) {
	if len(input) < 4 || !bytes.Equal(input[:4], m.ID) {
		return nil, false
	}
	values, err := m.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, false
	}
	return values, true
}

func hasSelector(m abi.Method, input []byte) bool {
	return len(input) >= 4 && bytes.Equal(input[:4], m.ID)
}

func argAddress(values []any, i int) common.Address {
	if i >= len(values) {
		return common.Address{}
	}
	addr, _ := values[i].(common.Address)
	return addr
}

func argBig(values []any, i int) *big.Int {
	if i >= len(values) {
		return new(big.Int)
	}
	v, ok := values[i].(*big.Int)
	if !ok || v == nil {
		return new(big.Int)
	}
	return v
}

func argBytes(values []any, i int) []byte {
	if i >= len(values) {
		return nil
	}
	b, _ := values[i].([]byte)
	return b
}

var (
	erc20ABI = mustParseABI(`[
		{"name":"transferFrom","type":"function","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
		{"name":"burnFrom","type":"function","inputs":[{"name":"account","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
		{"name":"mint","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
		{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
		{"name":"withdraw","type":"function","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
		{"name":"deposit","type":"function","stateMutability":"payable","inputs":[],"outputs":[]}
	]`)

	uniswapRouterABI = mustParseABI(`[
		{"name":"addLiquidity","type":"function","inputs":[{"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"},{"name":"amountADesired","type":"uint256"},{"name":"amountBDesired","type":"uint256"},{"name":"amountAMin","type":"uint256"},{"name":"amountBMin","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[]},
		{"name":"addLiquidityETH","type":"function","stateMutability":"payable","inputs":[{"name":"token","type":"address"},{"name":"amountTokenDesired","type":"uint256"},{"name":"amountTokenMin","type":"uint256"},{"name":"amountETHMin","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[]},
		{"name":"removeLiquidity","type":"function","inputs":[{"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"},{"name":"liquidity","type":"uint256"},{"name":"amountAMin","type":"uint256"},{"name":"amountBMin","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[]},
		{"name":"removeLiquidityETH","type":"function","inputs":[{"name":"token","type":"address"},{"name":"liquidity","type":"uint256"},{"name":"amountTokenMin","type":"uint256"},{"name":"amountETHMin","type":"uint256"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[]}
	]`)

	uniswapPairABI = mustParseABI(`[
		{"name":"swap","type":"function","inputs":[{"name":"amount0Out","type":"uint256"},{"name":"amount1Out","type":"uint256"},{"name":"to","type":"address"},{"name":"data","type":"bytes"}],"outputs":[]},
		{"name":"getReserves","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"reserve0","type":"uint112"},{"name":"reserve1","type":"uint112"},{"name":"blockTimestampLast","type":"uint32"}]}
	]`)

	aaveABI = mustParseABI(`[
		{"name":"liquidationCall","type":"function","stateMutability":"payable","inputs":[{"name":"collateral","type":"address"},{"name":"reserve","type":"address"},{"name":"user","type":"address"},{"name":"purchaseAmount","type":"uint256"},{"name":"receiveAToken","type":"bool"}],"outputs":[]},
		{"name":"flashLoan","type":"function","inputs":[{"name":"receiver","type":"address"},{"name":"reserve","type":"address"},{"name":"amount","type":"uint256"},{"name":"params","type":"bytes"}],"outputs":[]},
		{"name":"getUserAccountData","type":"function","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[]}
	]`)

	aaveV2ABI = mustParseABI(`[
		{"name":"flashLoan","type":"function","inputs":[{"name":"receiverAddress","type":"address"},{"name":"assets","type":"address[]"},{"name":"amounts","type":"uint256[]"},{"name":"modes","type":"uint256[]"},{"name":"onBehalfOf","type":"address"},{"name":"params","type":"bytes"},{"name":"referralCode","type":"uint16"}],"outputs":[]}
	]`)

	cTokenABI = mustParseABI(`[
		{"name":"liquidateBorrow","type":"function","inputs":[{"name":"borrower","type":"address"},{"name":"repayAmount","type":"uint256"},{"name":"cTokenCollateral","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"name":"seize","type":"function","inputs":[{"name":"liquidator","type":"address"},{"name":"borrower","type":"address"},{"name":"seizeTokens","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
	]`)

	cEtherABI = mustParseABI(`[
		{"name":"liquidateBorrow","type":"function","stateMutability":"payable","inputs":[{"name":"borrower","type":"address"},{"name":"cTokenCollateral","type":"address"}],"outputs":[]}
	]`)

	comptrollerABI = mustParseABI(`[
		{"name":"liquidateBorrowAllowed","type":"function","inputs":[{"name":"cTokenBorrowed","type":"address"},{"name":"cTokenCollateral","type":"address"},{"name":"liquidator","type":"address"},{"name":"borrower","type":"address"},{"name":"repayAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
	]`)

	zeroExBridgeABI = mustParseABI(`[
		{"name":"bridgeTransferFrom","type":"function","inputs":[{"name":"tokenAddress","type":"address"},{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"bridgeData","type":"bytes"}],"outputs":[{"name":"","type":"bytes4"}]}
	]`)

	curveABI = mustParseABI(`[
		{"name":"exchange","type":"function","inputs":[{"name":"i","type":"int128"},{"name":"j","type":"int128"},{"name":"dx","type":"uint256"},{"name":"min_dy","type":"uint256"}],"outputs":[]},
		{"name":"exchange_underlying","type":"function","inputs":[{"name":"i","type":"int128"},{"name":"j","type":"int128"},{"name":"dx","type":"uint256"},{"name":"min_dy","type":"uint256"}],"outputs":[]}
	]`)

	balancerPoolABI = mustParseABI(`[
		{"name":"swapExactAmountIn","type":"function","inputs":[{"name":"tokenIn","type":"address"},{"name":"tokenAmountIn","type":"uint256"},{"name":"tokenOut","type":"address"},{"name":"minAmountOut","type":"uint256"},{"name":"maxPrice","type":"uint256"}],"outputs":[{"name":"tokenAmountOut","type":"uint256"},{"name":"spotPriceAfter","type":"uint256"}]},
		{"name":"swapExactAmountOut","type":"function","inputs":[{"name":"tokenIn","type":"address"},{"name":"maxAmountIn","type":"uint256"},{"name":"tokenOut","type":"address"},{"name":"tokenAmountOut","type":"uint256"},{"name":"maxPrice","type":"uint256"}],"outputs":[{"name":"tokenAmountIn","type":"uint256"},{"name":"spotPriceAfter","type":"uint256"}]}
	]`)

	soloMarginABI = mustParseABI(`[
		{"name":"operate","type":"function","inputs":[
			{"name":"accounts","type":"tuple[]","components":[{"name":"owner","type":"address"},{"name":"number","type":"uint256"}]},
			{"name":"actions","type":"tuple[]","components":[
				{"name":"actionType","type":"uint8"},
				{"name":"accountId","type":"uint256"},
				{"name":"amount","type":"tuple","components":[{"name":"sign","type":"bool"},{"name":"denomination","type":"uint8"},{"name":"ref","type":"uint8"},{"name":"value","type":"uint256"}]},
				{"name":"primaryMarketId","type":"uint256"},
				{"name":"secondaryMarketId","type":"uint256"},
				{"name":"otherAddress","type":"address"},
				{"name":"otherAccountId","type":"uint256"},
				{"name":"data","type":"bytes"}
			]}
		],"outputs":[]}
	]`)
)
