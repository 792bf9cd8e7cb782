package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Price struct {
	Token common.Address `json:"token"`
	// PerToken is the reference-asset value of one whole token.
	PerToken decimal.Decimal `json:"price"`
	Decimals int32           `json:"decimals"`
}

// Static prices tokens from a fixed table, independent of the block.
type Static struct {
	weth   common.Address
	prices map[common.Address]Price
}

func NewStatic(weth common.Address, prices []Price) *Static {
	m := make(map[common.Address]Price, len(prices))
	for _, p := range prices {
		m[p.Token] = p
	}
	return &Static{weth: weth, prices: m}
}

// LoadStatic reads a JSON array of prices.
func LoadStatic(path string, weth common.Address) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prices file: %w", err)
	}
	var prices []Price
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil, fmt.Errorf("parse prices file %s: %w", path, err)
	}
	return NewStatic(weth, prices), nil
}

func (s *Static) Quote(_ context.Context, token common.Address, amount *big.Int, _ uint64) (*big.Int, error) {
	if token == s.weth || token == inspect.ETH {
		return new(big.Int).Set(amount), nil
	}
	p, ok := s.prices[token]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoPrice, token.Hex())
	}
	whole := decimal.NewFromBigInt(amount, -p.Decimals)
	ref := whole.Mul(p.PerToken).Shift(18)
	return ref.BigInt(), nil
}
