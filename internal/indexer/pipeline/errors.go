package pipeline

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Origin tells a consumer which stage produced an error.
type Origin string

const (
	OriginParse    Origin = "parse"
	OriginProvider Origin = "provider"
	OriginOracle   Origin = "oracle"
	OriginSink     Origin = "sink"
)

type Error struct {
	Origin Origin
	Block  uint64
	// TxHash is zero for block level failures.
	TxHash common.Hash
	Err    error
}

func (e *Error) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("%s error at block %d: %v", e.Origin, e.Block, e.Err)
	}
	return fmt.Sprintf("%s error at block %d tx %s: %v", e.Origin, e.Block, e.TxHash.Hex(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
