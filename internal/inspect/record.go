package inspect

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type RecordKind uint8

const (
	KindCall RecordKind = iota
	KindCreate
	KindSuicide
	KindReward
)

func ParseRecordKind(s string) RecordKind {
	switch strings.ToLower(s) {
	case "create":
		return KindCreate
	case "suicide", "selfdestruct":
		return KindSuicide
	case "reward":
		return KindReward
	default:
		return KindCall
	}
}

type CallType uint8

const (
	CallTypeNone CallType = iota
	CallTypeCall
	CallTypeDelegateCall
	CallTypeStaticCall
	CallTypeCallCode
)

func ParseCallType(s string) CallType {
	switch strings.ToLower(s) {
	case "call":
		return CallTypeCall
	case "delegatecall":
		return CallTypeDelegateCall
	case "staticcall":
		return CallTypeStaticCall
	case "callcode":
		return CallTypeCallCode
	default:
		return CallTypeNone
	}
}

func (t CallType) String() string {
	switch t {
	case CallTypeCall:
		return "call"
	case CallTypeDelegateCall:
		return "delegatecall"
	case CallTypeStaticCall:
		return "staticcall"
	case CallTypeCallCode:
		return "callcode"
	default:
		return "none"
	}
}

// CallRecord is one node of a flattened transaction trace.
type CallRecord struct {
	Kind         RecordKind
	TraceAddress []int
	CallType     CallType
	From         common.Address
	To           common.Address
	Value        *big.Int
	Gas          uint64
	Input        []byte
	Reverted     bool
	TxHash       common.Hash
	TxPosition   int
	BlockNumber  uint64
}

// StipendGas is the fixed gas forwarded with plain value sends.
const StipendGas = 2300

func (r *CallRecord) HasValue() bool {
	return r.Value != nil && r.Value.Sign() > 0
}

func (r *CallRecord) Selector() []byte {
	if len(r.Input) < 4 {
		return nil
	}
	return r.Input[:4]
}

// IsSubtrace reports whether b lies under a in the call tree. An empty a is never a parent.
func IsSubtrace(a, b []int) bool {
	if len(a) == 0 || len(b) < len(a) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
