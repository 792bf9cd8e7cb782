package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/evaluation"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds the quote cache when no size is configured.
const DefaultCacheSize = 4096

type quoteKey struct {
	token  common.Address
	amount string
	block  uint64
}

func (k quoteKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.token.Hex(), k.amount, k.block)
}

// Cached memoizes quotes of an underlying oracle in a bounded LRU. Concurrent misses on
// the same quote share one upstream call. Errors are not cached.
type Cached struct {
	next   evaluation.PriceOracle
	cache  *lru.Cache[quoteKey, *big.Int]
	flight singleflight.Group
}

func NewCached(next evaluation.PriceOracle, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[quoteKey, *big.Int](size)
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Quote(ctx context.Context, token common.Address, amount *big.Int, block uint64) (*big.Int, error) {
	key := quoteKey{token: token, amount: amount.String(), block: block}
	if v, ok := c.cache.Get(key); ok {
		return new(big.Int).Set(v), nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (any, error) {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		v, err := c.next.Quote(ctx, token, amount, block)
		if err != nil {
			return nil, err
		}
		stored := new(big.Int).Set(v)
		c.cache.Add(key, stored)
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(v.(*big.Int)), nil
}

// Len reports how many quotes are held.
func (c *Cached) Len() int {
	return c.cache.Len()
}
