package inspect

type State uint8

const (
	StateUnknown State = iota
	StateKnown
	StatePruned
)

func (s State) String() string {
	switch s {
	case StateKnown:
		return "known"
	case StatePruned:
		return "pruned"
	default:
		return "unknown"
	}
}

// Classification is one slot of an inspection: an undecoded call, a decoded action, or a tombstone.
type Classification struct {
	state        State
	call         *CallRecord
	action       Action
	traceAddress []int
}

func Unknown(call *CallRecord) Classification {
	return Classification{state: StateUnknown, call: call, traceAddress: call.TraceAddress}
}

func Known(action Action, traceAddress []int) Classification {
	return Classification{state: StateKnown, action: action, traceAddress: traceAddress}
}

func Pruned() Classification {
	return Classification{state: StatePruned}
}

func (c Classification) State() State      { return c.state }
func (c Classification) IsUnknown() bool   { return c.state == StateUnknown }
func (c Classification) IsKnown() bool     { return c.state == StateKnown }
func (c Classification) IsPruned() bool    { return c.state == StatePruned }
func (c Classification) Call() *CallRecord { return c.call }
func (c Classification) TraceAddress() []int {
	return c.traceAddress
}

// Action returns the decoded action, nil unless the slot is known.
func (c Classification) Action() Action {
	if c.state != StateKnown {
		return nil
	}
	return c.action
}

// Reclassify turns the slot into a known action, keeping its origin call and position.
func (c Classification) Reclassify(action Action) Classification {
	return Classification{state: StateKnown, call: c.call, action: action, traceAddress: c.traceAddress}
}

// Candidate returns the call a protocol decoder may still rewrite: any unknown slot, or a
// known slot whose only classification is a plain native-value transfer.
func (c Classification) Candidate() (*CallRecord, bool) {
	if c.call == nil {
		return nil, false
	}
	switch c.state {
	case StateUnknown:
		return c.call, true
	case StateKnown:
		if t, ok := c.action.(Transfer); ok && t.IsNative() && t.From == c.call.From && t.To == c.call.To {
			return c.call, true
		}
	}
	return nil, false
}

// As extracts a specific action variant from a known slot.
func As[T Action](c Classification) (T, bool) {
	var zero T
	if c.state != StateKnown {
		return zero, false
	}
	v, ok := c.action.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// FindMatching walks the known slots from start (inclusive), forward or backward, and returns
// the first one holding a T accepted by match. With checkAll unset the walk gives up at the
// first known slot that is not accepted. A nil match accepts any T.
func FindMatching[T Action](slots []Classification, start int, backward bool, match func(T) bool, checkAll bool) (int, T, bool) {
	var zero T
	step := 1
	if backward {
		step = -1
	}
	for i := start; i >= 0 && i < len(slots); i += step {
		if !slots[i].IsKnown() {
			continue
		}
		if v, ok := As[T](slots[i]); ok && (match == nil || match(v)) {
			return i, v, true
		}
		if !checkAll {
			return -1, zero, false
		}
	}
	return -1, zero, false
}
