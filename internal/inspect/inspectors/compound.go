package inspectors

import (
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

// Compound decodes cToken liquidations and comptroller eligibility checks.
type Compound struct {
	reg *registry.Registry
}

func NewCompound(reg *registry.Registry) *Compound {
	return &Compound{reg: reg}
}

func (cp *Compound) Classify(insp *inspect.Inspection) {
	probes := 0
	for i := range insp.Actions {
		c := insp.Actions[i]
		call, ok := c.Candidate()
		if !ok {
			continue
		}

		if liq, ok := cp.parseLiquidation(call); ok {
			for _, j := range insp.Subtrace(i) {
				inner := insp.Actions[j].Call()
				if inner == nil || inner.To != liq.ReceivedToken {
					continue
				}
				args, ok := decodeCall(cTokenABI.Methods["seize"], inner.Input)
				if ok && argAddress(args, 0) == liq.From {
					liq.ReceivedAmount = argBig(args, 2)
					break
				}
			}
			insp.Actions[i] = c.Reclassify(liq)
			insp.PruneSubtrace(i)
			insp.Protocols.Add(inspect.ProtocolCompound)
			continue
		}

		if _, ok := decodeCall(comptrollerABI.Methods["liquidateBorrowAllowed"], call.Input); ok {
			insp.Actions[i] = c.Reclassify(inspect.LiquidationCheck{})
			insp.Protocols.Add(inspect.ProtocolCompound)
			probes++
			continue
		}

		if p, ok := cp.reg.Protocol(call.To); ok && p == inspect.ProtocolCompound {
			insp.Protocols.Add(inspect.ProtocolCompound)
		}
	}
	for _, view := range insp.Views {
		if _, ok := decodeCall(comptrollerABI.Methods["liquidateBorrowAllowed"], view.Input); ok {
			insp.Protocols.Add(inspect.ProtocolCompound)
			probes++
		}
	}
	markChecked(insp, probes)
}

func (cp *Compound) parseLiquidation(call *inspect.CallRecord) (inspect.Liquidation, bool) {
	if args, ok := decodeCall(cEtherABI.Methods["liquidateBorrow"], call.Input); ok {
		sent := call.Value
		if sent == nil {
			sent = new(big.Int)
		}
		return inspect.Liquidation{
			SentToken:      inspect.ETH,
			SentAmount:     sent,
			ReceivedToken:  argAddress(args, 1),
			ReceivedAmount: new(big.Int),
			From:           call.From,
			LiquidatedUser: argAddress(args, 0),
		}, true
	}
	if args, ok := decodeCall(cTokenABI.Methods["liquidateBorrow"], call.Input); ok {
		return inspect.Liquidation{
			SentToken:      cp.underlying(call.To),
			SentAmount:     argBig(args, 1),
			ReceivedToken:  argAddress(args, 2),
			ReceivedAmount: new(big.Int),
			From:           call.From,
			LiquidatedUser: argAddress(args, 0),
		}, true
	}
	return inspect.Liquidation{}, false
}

func (cp *Compound) underlying(cToken common.Address) common.Address {
	if u, ok := cp.reg.Underlying(cToken); ok {
		return u
	}
	return cToken
}
