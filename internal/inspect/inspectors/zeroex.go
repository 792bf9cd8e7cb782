package inspectors

import (
	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
)

// ZeroEx collapses 0x bridge fills into a single transfer.
type ZeroEx struct {
	reg *registry.Registry
}

func NewZeroEx(reg *registry.Registry) *ZeroEx {
	return &ZeroEx{reg: reg}
}

func (z *ZeroEx) Classify(insp *inspect.Inspection) {
	for i := range insp.Actions {
		c := insp.Actions[i]
		call, ok := c.Candidate()
		if !ok {
			continue
		}
		args, ok := decodeCall(zeroExBridgeABI.Methods["bridgeTransferFrom"], call.Input)
		if !ok {
			continue
		}
		insp.Actions[i] = c.Reclassify(inspect.Transfer{
			From:   argAddress(args, 1),
			To:     argAddress(args, 2),
			Amount: argBig(args, 3),
			Token:  argAddress(args, 0),
		})
		insp.PruneSubtrace(i)
		insp.Protocols.Add(inspect.ProtocolZeroEx)
		if p, ok := z.reg.Protocol(call.To); ok {
			insp.Protocols.Add(p)
		}
	}
}
