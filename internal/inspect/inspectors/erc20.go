package inspectors

import (
	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
)

// ERC20 decodes token movements and native value sends.
type ERC20 struct {
	weth common.Address
}

func NewERC20(weth common.Address) *ERC20 {
	return &ERC20{weth: weth}
}

func (e *ERC20) Classify(insp *inspect.Inspection) {
	for i, c := range insp.Actions {
		if !c.IsUnknown() {
			continue
		}
		call := c.Call()
		if call.Gas == inspect.StipendGas {
			continue
		}
		if action, ok := e.Parse(call); ok {
			insp.Actions[i] = c.Reclassify(action)
		}
	}
}

// Parse decodes one call, first match wins.
func (e *ERC20) Parse(call *inspect.CallRecord) (inspect.Action, bool) {
	methods := erc20ABI.Methods
	if args, ok := decodeCall(methods["transferFrom"], call.Input); ok {
		return inspect.Transfer{From: argAddress(args, 0), To: argAddress(args, 1), Amount: argBig(args, 2), Token: call.To}, true
	}
	if args, ok := decodeCall(methods["burnFrom"], call.Input); ok {
		return inspect.Transfer{From: argAddress(args, 0), To: common.Address{}, Amount: argBig(args, 1), Token: call.To}, true
	}
	if args, ok := decodeCall(methods["mint"], call.Input); ok {
		return inspect.Transfer{From: common.Address{}, To: argAddress(args, 0), Amount: argBig(args, 1), Token: call.To}, true
	}
	if args, ok := decodeCall(methods["transfer"], call.Input); ok {
		return inspect.Transfer{From: call.From, To: argAddress(args, 0), Amount: argBig(args, 1), Token: call.To}, true
	}
	if call.To == e.weth {
		if args, ok := decodeCall(methods["withdraw"], call.Input); ok {
			return inspect.Withdrawal{To: call.From, Amount: argBig(args, 0)}, true
		}
	}
	if len(call.Input) == 4 && hasSelector(methods["deposit"], call.Input) && call.HasValue() {
		return inspect.Deposit{From: call.From, Amount: call.Value}, true
	}
	if call.HasValue() && call.From != e.weth {
		return inspect.Transfer{From: call.From, To: call.To, Amount: call.Value, Token: inspect.ETH}, true
	}
	return nil, false
}
