package inspectors

import (
	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// poolTagger only records that a pool swap happened. An empty pool set trusts every callee.
type poolTagger struct {
	protocol inspect.Protocol
	methods  []abi.Method
	pools    map[common.Address]struct{}
}

func newPoolTagger(protocol inspect.Protocol, methods []abi.Method, pools []common.Address) *poolTagger {
	set := make(map[common.Address]struct{}, len(pools))
	for _, p := range pools {
		set[p] = struct{}{}
	}
	return &poolTagger{protocol: protocol, methods: methods, pools: set}
}

func (p *poolTagger) Classify(insp *inspect.Inspection) {
	for _, c := range insp.Actions {
		call, ok := c.Candidate()
		if !ok || !p.trusted(call.To) {
			continue
		}
		for _, m := range p.methods {
			if hasSelector(m, call.Input) {
				insp.Protocols.Add(p.protocol)
				break
			}
		}
	}
}

func (p *poolTagger) trusted(addr common.Address) bool {
	if len(p.pools) == 0 {
		return true
	}
	_, ok := p.pools[addr]
	return ok
}

type Curve struct{ *poolTagger }

func NewCurve(pools []common.Address) *Curve {
	return &Curve{newPoolTagger(inspect.ProtocolCurve, []abi.Method{
		curveABI.Methods["exchange"],
		curveABI.Methods["exchange_underlying"],
	}, pools)}
}

type Balancer struct{ *poolTagger }

func NewBalancer(pools []common.Address) *Balancer {
	return &Balancer{newPoolTagger(inspect.ProtocolBalancer, []abi.Method{
		balancerPoolABI.Methods["swapExactAmountIn"],
		balancerPoolABI.Methods["swapExactAmountOut"],
	}, pools)}
}

// DyDx tags SoloMargin operate calls, the entry point of dYdX flash loans.
type DyDx struct{ *poolTagger }

func NewDyDx(reg *registry.Registry) *DyDx {
	return &DyDx{newPoolTagger(inspect.ProtocolDyDx, []abi.Method{
		soloMarginABI.Methods["operate"],
	}, reg.Addresses(registry.RoleSoloMargin, inspect.ProtocolDyDx))}
}
