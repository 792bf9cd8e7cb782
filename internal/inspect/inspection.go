package inspect

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type Status uint8

const (
	StatusSuccess Status = iota
	StatusReverted
	StatusChecked
)

func (s Status) String() string {
	switch s {
	case StatusReverted:
		return "reverted"
	case StatusChecked:
		return "checked"
	default:
		return "success"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddressBook is what construction needs to know about addresses: which ones make a
// transaction not worth decoding, and which protocol a contract belongs to.
type AddressBook interface {
	Denied(addr common.Address) bool
	Protocol(addr common.Address) (Protocol, bool)
}

type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "inspect: " + e.Reason
}

// Inspection is the mutable classification state of one transaction.
type Inspection struct {
	Status      Status
	Actions     []Classification
	Protocols   ProtocolSet
	From        common.Address
	Contract    common.Address
	ProxyImpl   *common.Address
	Hash        common.Hash
	BlockNumber uint64
	// Views are the static calls of the transaction in trace order. They never hold a
	// slot but inspectors may read them for preflight probes.
	Views []*CallRecord
}

// New builds an inspection from the pre-order call records of one transaction.
// Only plain calls enter the classification array; static, delegate and callcode calls
// are consulted for the revert flag, the proxy implementation and the protocol of the
// contract they reach.
func New(records []CallRecord, book AddressBook) (*Inspection, error) {
	if len(records) == 0 {
		return nil, &ParseError{Reason: "no call records"}
	}
	recs := append([]CallRecord(nil), records...)
	root := &recs[0]
	if root.Kind != KindCall {
		return nil, &ParseError{Reason: "root record is not a call"}
	}
	if root.TxHash == (common.Hash{}) {
		return nil, &ParseError{Reason: "root record has no transaction hash"}
	}
	if root.From == (common.Address{}) {
		return nil, &ParseError{Reason: "root record has no sender"}
	}
	if book != nil && (book.Denied(root.From) || book.Denied(root.To)) {
		return nil, &ParseError{Reason: fmt.Sprintf("transaction %s touches a denied address", root.TxHash.Hex())}
	}

	insp := &Inspection{
		Status:      StatusSuccess,
		Actions:     make([]Classification, 0, len(recs)),
		Protocols:   NewProtocolSet(),
		From:        root.From,
		Contract:    root.To,
		Hash:        root.TxHash,
		BlockNumber: root.BlockNumber,
	}
	for i := range recs {
		rec := &recs[i]
		if rec.Reverted {
			insp.Status = StatusReverted
		}
		if rec.Kind != KindCall {
			continue
		}
		switch rec.CallType {
		case CallTypeDelegateCall, CallTypeStaticCall, CallTypeCallCode:
			if book != nil {
				if p, ok := book.Protocol(rec.To); ok {
					insp.Protocols.Add(p)
				}
			}
			if rec.CallType == CallTypeDelegateCall && insp.ProxyImpl == nil && rec.From == insp.Contract {
				impl := rec.To
				insp.ProxyImpl = &impl
			}
			if rec.CallType == CallTypeStaticCall {
				insp.Views = append(insp.Views, rec)
			}
			continue
		}
		insp.Actions = append(insp.Actions, Unknown(rec))
	}
	return insp, nil
}

// Prune drops tombstones and unknown stipend calls.
func (i *Inspection) Prune() {
	kept := i.Actions[:0]
	for _, c := range i.Actions {
		if c.IsPruned() {
			continue
		}
		if c.IsUnknown() && c.call != nil && c.call.Gas == StipendGas {
			continue
		}
		kept = append(kept, c)
	}
	for n := len(kept); n < len(i.Actions); n++ {
		i.Actions[n] = Classification{}
	}
	i.Actions = kept
}

// PruneSubtrace tombstones every slot nested under the slot at idx.
func (i *Inspection) PruneSubtrace(idx int) {
	parent := i.Actions[idx].TraceAddress()
	for j := range i.Actions {
		if j == idx || i.Actions[j].IsPruned() {
			continue
		}
		if IsSubtrace(parent, i.Actions[j].TraceAddress()) {
			i.Actions[j] = Pruned()
		}
	}
}

// Subtrace lists the indices of slots nested under the slot at idx, in order.
func (i *Inspection) Subtrace(idx int) []int {
	parent := i.Actions[idx].TraceAddress()
	var out []int
	for j := idx + 1; j < len(i.Actions); j++ {
		if i.Actions[j].IsPruned() {
			continue
		}
		if IsSubtrace(parent, i.Actions[j].TraceAddress()) {
			out = append(out, j)
		}
	}
	return out
}

func (i *Inspection) KnownActions() []Action {
	out := make([]Action, 0, len(i.Actions))
	for _, c := range i.Actions {
		if c.IsKnown() {
			out = append(out, c.action)
		}
	}
	return out
}

func (i *Inspection) HasAction(name string) bool {
	for _, c := range i.Actions {
		if c.IsKnown() && c.action.Name() == name {
			return true
		}
	}
	return false
}

// Snapshot copies the slot array so a pass can search the state it started from.
func (i *Inspection) Snapshot() []Classification {
	return append([]Classification(nil), i.Actions...)
}

type slotJSON struct {
	State        string          `json:"state"`
	Type         string          `json:"type,omitempty"`
	TraceAddress []int           `json:"traceAddress"`
	Action       Action          `json:"action,omitempty"`
	To           *common.Address `json:"to,omitempty"`
}

func (c Classification) MarshalJSON() ([]byte, error) {
	out := slotJSON{State: c.state.String(), TraceAddress: c.traceAddress}
	if out.TraceAddress == nil {
		out.TraceAddress = []int{}
	}
	switch c.state {
	case StateKnown:
		out.Type = c.action.Name()
		out.Action = c.action
	case StateUnknown:
		if c.call != nil {
			to := c.call.To
			out.To = &to
		}
	}
	return json.Marshal(out)
}
