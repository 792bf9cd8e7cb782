package inspectors

import (
	"math/big"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
)

// Aave decodes lending pool liquidations and flash loans.
type Aave struct {
	reg *registry.Registry
}

func NewAave(reg *registry.Registry) *Aave {
	return &Aave{reg: reg}
}

func (a *Aave) Classify(insp *inspect.Inspection) {
	probes := 0
	for i := range insp.Actions {
		c := insp.Actions[i]
		call, ok := c.Candidate()
		if !ok {
			continue
		}

		if args, ok := decodeCall(aaveABI.Methods["liquidationCall"], call.Input); ok {
			liq := inspect.Liquidation{
				SentToken:      argAddress(args, 1),
				SentAmount:     argBig(args, 3),
				ReceivedToken:  argAddress(args, 0),
				ReceivedAmount: new(big.Int),
				From:           call.From,
				LiquidatedUser: argAddress(args, 2),
			}
			for _, j := range insp.Subtrace(i) {
				t, ok := inspect.As[inspect.Transfer](insp.Actions[j])
				if ok && t.To == liq.From && sameAsset(a.reg, t.Token, liq.ReceivedToken) {
					liq.ReceivedAmount = t.Amount
					break
				}
			}
			insp.Actions[i] = c.Reclassify(liq)
			insp.PruneSubtrace(i)
			insp.Protocols.Add(inspect.ProtocolAave)
			continue
		}

		if hasSelector(aaveABI.Methods["flashLoan"], call.Input) || hasSelector(aaveV2ABI.Methods["flashLoan"], call.Input) {
			if a.isPool(call) {
				insp.Protocols.Add(inspect.ProtocolAave)
				insp.Protocols.Add(inspect.ProtocolFlashloan)
			}
			continue
		}

		if _, ok := decodeCall(aaveABI.Methods["getUserAccountData"], call.Input); ok && a.isPool(call) {
			insp.Actions[i] = c.Reclassify(inspect.LiquidationCheck{})
			insp.Protocols.Add(inspect.ProtocolAave)
			probes++
			continue
		}

		if a.isPool(call) {
			insp.Protocols.Add(inspect.ProtocolAave)
		}
	}
	for _, view := range insp.Views {
		if _, ok := decodeCall(aaveABI.Methods["getUserAccountData"], view.Input); ok && a.isPool(view) {
			insp.Protocols.Add(inspect.ProtocolAave)
			probes++
		}
	}
	markChecked(insp, probes)
}

func (a *Aave) isPool(call *inspect.CallRecord) bool {
	p, ok := a.reg.Protocol(call.To)
	return ok && p == inspect.ProtocolAave
}
