package inspectors

import (
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

// Uniswap decodes Uniswap V2 style routers and pairs, clones included.
type Uniswap struct {
	reg *registry.Registry
}

func NewUniswap(reg *registry.Registry) *Uniswap {
	return &Uniswap{reg: reg}
}

func (u *Uniswap) Classify(insp *inspect.Inspection) {
	snapshot := insp.Snapshot()
	var consumed []int
	preflight := false

	for i := range insp.Actions {
		c := insp.Actions[i]
		call, ok := c.Candidate()
		if !ok {
			continue
		}

		if action, ok := u.parseLiquidity(call); ok {
			insp.Actions[i] = c.Reclassify(action)
			insp.Protocols.Add(u.protocolOf(call))
			insp.PruneSubtrace(i)
			syncPruned(snapshot, insp.Actions)
			continue
		}

		if args, ok := decodeCall(uniswapPairABI.Methods["swap"], call.Input); ok {
			insp.Protocols.Add(u.protocolOf(call))
			if len(argBytes(args, 3)) > 0 {
				insp.Protocols.Add(inspect.ProtocolFlashloan)
				continue
			}
			inIdx, in, ok := inspect.FindMatching[inspect.Transfer](snapshot, i-1, true, nil, true)
			if !ok {
				continue
			}
			outIdx, out, ok := inspect.FindMatching[inspect.Transfer](snapshot, i+1, false, nil, false)
			if !ok {
				continue
			}
			insp.Actions[i] = c.Reclassify(inspect.Trade{Leg1: in, Leg2: out})
			consumed = append(consumed, inIdx, outIdx)
			continue
		}

		if len(call.Input) == 4 && hasSelector(uniswapPairABI.Methods["getReserves"], call.Input) {
			insp.Protocols.Add(u.protocolOf(call))
			insp.Actions[i] = inspect.Pruned()
			preflight = true
		}
	}
	for _, view := range insp.Views {
		if len(view.Input) == 4 && hasSelector(uniswapPairABI.Methods["getReserves"], view.Input) {
			insp.Protocols.Add(u.protocolOf(view))
			preflight = true
		}
	}

	for _, idx := range consumed {
		insp.Actions[idx] = inspect.Pruned()
	}

	if preflight && insp.Status == inspect.StatusSuccess {
		known := 0
		for _, c := range insp.Actions {
			if c.IsKnown() {
				known++
			}
		}
		if known < 2 && !insp.HasAction(inspect.Trade{}.Name()) {
			insp.Status = inspect.StatusChecked
		}
	}
}

func (u *Uniswap) parseLiquidity(call *inspect.CallRecord) (inspect.Action, bool) {
	methods := uniswapRouterABI.Methods
	if args, ok := decodeCall(methods["addLiquidity"], call.Input); ok {
		return inspect.AddLiquidity{
			Tokens:  []common.Address{argAddress(args, 0), argAddress(args, 1)},
			Amounts: []*big.Int{argBig(args, 2), argBig(args, 3)},
		}, true
	}
	if args, ok := decodeCall(methods["addLiquidityETH"], call.Input); ok {
		value := call.Value
		if value == nil {
			value = new(big.Int)
		}
		return inspect.AddLiquidity{
			Tokens:  []common.Address{argAddress(args, 0), u.reg.WETH},
			Amounts: []*big.Int{argBig(args, 1), value},
		}, true
	}
	if args, ok := decodeCall(methods["removeLiquidity"], call.Input); ok {
		return inspect.RemoveLiquidity{
			Tokens:    []common.Address{argAddress(args, 0), argAddress(args, 1)},
			Liquidity: argBig(args, 2),
		}, true
	}
	if args, ok := decodeCall(methods["removeLiquidityETH"], call.Input); ok {
		return inspect.RemoveLiquidity{
			Tokens:    []common.Address{argAddress(args, 0), u.reg.WETH},
			Liquidity: argBig(args, 1),
		}, true
	}
	return nil, false
}

func (u *Uniswap) protocolOf(call *inspect.CallRecord) inspect.Protocol {
	if p, ok := u.reg.Protocol(call.To); ok {
		return p
	}
	return inspect.ProtocolUniswappy
}

// syncPruned mirrors tombstones from the live slots into a search snapshot.
func syncPruned(snapshot, live []inspect.Classification) {
	for j := range live {
		if j < len(snapshot) && live[j].IsPruned() {
			snapshot[j] = inspect.Pruned()
		}
	}
}
