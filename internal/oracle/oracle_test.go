package oracle

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	weth   = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	dai    = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
)

type stubCaller struct {
	calls  int
	block  *big.Int
	output []byte
	err    error
}

func (s *stubCaller) CallContract(_ context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	s.calls++
	s.block = block
	return s.output, s.err
}

func TestUniswapQuote(t *testing.T) {
	out, err := routerABI.Methods["getAmountsOut"].Outputs.Pack([]*big.Int{big.NewInt(1_000), big.NewInt(4)})
	require.NoError(t, err)
	caller := &stubCaller{output: out}
	o := NewUniswap(caller, router, weth)

	v, err := o.Quote(context.Background(), dai, big.NewInt(1_000), 12_345)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.Int64())
	assert.Equal(t, int64(12_345), caller.block.Int64())

	v, err = o.Quote(context.Background(), inspect.ETH, big.NewInt(7), 12_345)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int64())
	assert.Equal(t, 1, caller.calls)
}

func TestUniswapQuoteError(t *testing.T) {
	o := NewUniswap(&stubCaller{err: errors.New("execution reverted")}, router, weth)
	_, err := o.Quote(context.Background(), dai, big.NewInt(1), 1)
	require.Error(t, err)
}

func TestStaticQuote(t *testing.T) {
	o := NewStatic(weth, []Price{{Token: dai, PerToken: decimal.RequireFromString("0.0005"), Decimals: 18}})

	v, err := o.Quote(context.Background(), dai, new(big.Int).Mul(big.NewInt(2_000), big.NewInt(1e18)), 0)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	_, err = o.Quote(context.Background(), common.HexToAddress("0x01"), big.NewInt(1), 0)
	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestLoadStatic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "prices.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"token":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48","price":"0.00025","decimals":6}]`), 0o600))
	o, err := LoadStatic(p, weth)
	require.NoError(t, err)

	v, err := o.Quote(context.Background(), common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), big.NewInt(4_000_000), 0)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", v.String())
}

func TestCachedQuote(t *testing.T) {
	out, err := routerABI.Methods["getAmountsOut"].Outputs.Pack([]*big.Int{big.NewInt(10), big.NewInt(3)})
	require.NoError(t, err)
	caller := &stubCaller{output: out}
	o := NewCached(NewUniswap(caller, router, weth), 0)

	for i := 0; i < 3; i++ {
		v, err := o.Quote(context.Background(), dai, big.NewInt(10), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v.Int64())
	}
	assert.Equal(t, 1, caller.calls)

	_, err = o.Quote(context.Background(), dai, big.NewInt(10), 6)
	require.NoError(t, err)
	assert.Equal(t, 2, caller.calls)
}

type countingOracle struct {
	calls   atomic.Int32
	release chan struct{}
}

func (o *countingOracle) Quote(_ context.Context, _ common.Address, amount *big.Int, _ uint64) (*big.Int, error) {
	o.calls.Add(1)
	if o.release != nil {
		<-o.release
	}
	return new(big.Int).Mul(amount, big.NewInt(2)), nil
}

func TestCachedQuoteEvictsLeastRecent(t *testing.T) {
	next := &countingOracle{}
	o := NewCached(next, 2)
	ctx := context.Background()

	for _, amount := range []int64{1, 2, 3} {
		_, err := o.Quote(ctx, dai, big.NewInt(amount), 9)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, o.Len())
	assert.Equal(t, int32(3), next.calls.Load())

	v, err := o.Quote(ctx, dai, big.NewInt(3), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.Int64())
	assert.Equal(t, int32(3), next.calls.Load())

	_, err = o.Quote(ctx, dai, big.NewInt(1), 9)
	require.NoError(t, err)
	assert.Equal(t, int32(4), next.calls.Load())
	assert.Equal(t, 2, o.Len())
}

func TestCachedQuoteSharesConcurrentMisses(t *testing.T) {
	next := &countingOracle{release: make(chan struct{})}
	o := NewCached(next, 0)

	var wg sync.WaitGroup
	results := make([]*big.Int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := o.Quote(context.Background(), dai, big.NewInt(21), 9)
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(next.release)
	wg.Wait()

	assert.Equal(t, int32(1), next.calls.Load())
	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, int64(42), v.Int64())
	}
	results[0].SetInt64(0)
	assert.Equal(t, int64(42), results[1].Int64())
}
