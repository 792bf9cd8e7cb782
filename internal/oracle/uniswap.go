package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var ErrNoPrice = errors.New("oracle: no price")

var routerABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(`[
		{"name":"getAmountsOut","type":"function","stateMutability":"view","inputs":[{"name":"amountIn","type":"uint256"},{"name":"path","type":"address[]"}],"outputs":[{"name":"amounts","type":"uint256[]"}]}
	]`))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Uniswap prices tokens by asking a V2 router how much WETH they swap into at a given block.
type Uniswap struct {
	caller ethereum.ContractCaller
	router common.Address
	weth   common.Address
}

func NewUniswap(caller ethereum.ContractCaller, router, weth common.Address) *Uniswap {
	return &Uniswap{caller: caller, router: router, weth: weth}
}

func (u *Uniswap) Quote(ctx context.Context, token common.Address, amount *big.Int, block uint64) (*big.Int, error) {
	if token == u.weth || token == inspect.ETH {
		return new(big.Int).Set(amount), nil
	}
	if amount.Sign() == 0 {
		return new(big.Int), nil
	}
	input, err := routerABI.Pack("getAmountsOut", amount, []common.Address{token, u.weth})
	if err != nil {
		return nil, err
	}
	router := u.router
	raw, err := u.caller.CallContract(ctx, ethereum.CallMsg{To: &router, Data: input}, new(big.Int).SetUint64(block))
	if err != nil {
		return nil, fmt.Errorf("getAmountsOut %s: %w", token.Hex(), err)
	}
	values, err := routerABI.Unpack("getAmountsOut", raw)
	if err != nil || len(values) == 0 {
		return nil, fmt.Errorf("%w: unpack getAmountsOut for %s", ErrNoPrice, token.Hex())
	}
	amounts, ok := values[0].([]*big.Int)
	if !ok || len(amounts) != 2 {
		return nil, fmt.Errorf("%w: unexpected getAmountsOut result for %s", ErrNoPrice, token.Hex())
	}
	return amounts[1], nil
}
