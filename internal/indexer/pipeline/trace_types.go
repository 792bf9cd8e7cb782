package pipeline

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
)

// TraceFrame is one entry of a parity-style trace_block / trace_transaction response.
type TraceFrame struct {
	Action              TraceAction  `json:"action"`
	BlockHash           common.Hash  `json:"blockHash"`
	BlockNumber         uint64       `json:"blockNumber"`
	Error               string       `json:"error,omitempty"`
	Result              *TraceResult `json:"result,omitempty"`
	Subtraces           int          `json:"subtraces"`
	TraceAddress        []int        `json:"traceAddress"`
	TransactionHash     *common.Hash `json:"transactionHash,omitempty"`
	TransactionPosition *int         `json:"transactionPosition,omitempty"`
	Type                string       `json:"type"`
}

// TraceAction carries the union of call, create, suicide and reward fields.
type TraceAction struct {
	CallType      string          `json:"callType,omitempty"`
	From          *common.Address `json:"from,omitempty"`
	To            *common.Address `json:"to,omitempty"`
	Gas           *hexutil.Uint64 `json:"gas,omitempty"`
	Input         hexutil.Bytes   `json:"input,omitempty"`
	Init          hexutil.Bytes   `json:"init,omitempty"`
	Value         *hexutil.Big    `json:"value,omitempty"`
	Address       *common.Address `json:"address,omitempty"`
	RefundAddress *common.Address `json:"refundAddress,omitempty"`
	Balance       *hexutil.Big    `json:"balance,omitempty"`
	Author        *common.Address `json:"author,omitempty"`
	RewardType    string          `json:"rewardType,omitempty"`
}

type TraceResult struct {
	GasUsed hexutil.Uint64  `json:"gasUsed"`
	Output  hexutil.Bytes   `json:"output,omitempty"`
	Address *common.Address `json:"address,omitempty"`
}

func addrOr(a *common.Address) common.Address {
	if a == nil {
		return common.Address{}
	}
	return *a
}

// Record flattens the frame into the shape the inspectors consume.
func (f TraceFrame) Record() inspect.CallRecord {
	rec := inspect.CallRecord{
		Kind:         inspect.ParseRecordKind(f.Type),
		TraceAddress: append([]int(nil), f.TraceAddress...),
		CallType:     inspect.ParseCallType(f.Action.CallType),
		Reverted:     f.Error != "",
		BlockNumber:  f.BlockNumber,
	}
	if f.TransactionHash != nil {
		rec.TxHash = *f.TransactionHash
	}
	if f.TransactionPosition != nil {
		rec.TxPosition = *f.TransactionPosition
	}
	if f.Action.Gas != nil {
		rec.Gas = uint64(*f.Action.Gas)
	}
	if f.Action.Value != nil {
		rec.Value = f.Action.Value.ToInt()
	}

	switch rec.Kind {
	case inspect.KindCreate:
		rec.From = addrOr(f.Action.From)
		rec.Input = f.Action.Init
		if f.Result != nil {
			rec.To = addrOr(f.Result.Address)
		}
	case inspect.KindSuicide:
		rec.From = addrOr(f.Action.Address)
		rec.To = addrOr(f.Action.RefundAddress)
		if f.Action.Balance != nil {
			rec.Value = f.Action.Balance.ToInt()
		}
	case inspect.KindReward:
		rec.To = addrOr(f.Action.Author)
	default:
		rec.From = addrOr(f.Action.From)
		rec.To = addrOr(f.Action.To)
		rec.Input = f.Action.Input
	}
	return rec
}

// Records converts a whole trace response, preserving order.
func Records(frames []TraceFrame) []inspect.CallRecord {
	out := make([]inspect.CallRecord, 0, len(frames))
	for _, f := range frames {
		out = append(out, f.Record())
	}
	return out
}
