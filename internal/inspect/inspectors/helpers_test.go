package inspectors

import (
	"math/big"
	"testing"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	testTx    = common.HexToHash("0x5f1c3e6e2f4a3d1b0c9e8f7a6b5c4d3e2f1a0b9c8d7e6f5a4b3c2d1e0f9a8b7c")
	eoa       = common.HexToAddress("0x00000000000000000000000000000000000e0a01")
	bot       = common.HexToAddress("0x00000000000000000000000000000000000b0701")
	victim    = common.HexToAddress("0x0000000000000000000000000000000000005e01")
	tokenA    = common.HexToAddress("0x000000000000000000000000000000000000a001")
	tokenB    = common.HexToAddress("0x000000000000000000000000000000000000b001")
	somePool  = common.HexToAddress("0x000000000000000000000000000000000000c001")
	otherPool = common.HexToAddress("0x000000000000000000000000000000000000c002")
)

func pack(t *testing.T, a abi.ABI, method string, args ...any) []byte {
	t.Helper()
	data, err := a.Pack(method, args...)
	require.NoError(t, err, "pack %s", method)
	return data
}

func wei(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer %q", s)
	return v
}

func call(addr []int, from, to common.Address, input []byte) inspect.CallRecord {
	if addr == nil {
		addr = []int{}
	}
	return inspect.CallRecord{
		Kind:         inspect.KindCall,
		TraceAddress: addr,
		CallType:     inspect.CallTypeCall,
		From:         from,
		To:           to,
		Value:        new(big.Int),
		Gas:          200_000,
		Input:        input,
		TxHash:       testTx,
		BlockNumber:  11_000_000,
	}
}

func withValue(r inspect.CallRecord, v *big.Int) inspect.CallRecord {
	r.Value = v
	return r
}

func static(r inspect.CallRecord) inspect.CallRecord {
	r.CallType = inspect.CallTypeStaticCall
	return r
}

func build(t *testing.T, records ...inspect.CallRecord) *inspect.Inspection {
	t.Helper()
	insp, err := inspect.New(records, nil)
	require.NoError(t, err)
	return insp
}

func known[T inspect.Action](insp *inspect.Inspection) []T {
	var out []T
	for _, c := range insp.Actions {
		if v, ok := inspect.As[T](c); ok {
			out = append(out, v)
		}
	}
	return out
}

func path(p ...int) []int { return p }
