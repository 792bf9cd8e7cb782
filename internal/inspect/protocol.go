package inspect

import (
	"encoding/json"
	"sort"
	"strings"
)

type Protocol string

const (
	ProtocolUniswap   Protocol = "uniswap"
	ProtocolUniswapV2 Protocol = "uniswap_v2"
	ProtocolUniswappy Protocol = "uniswappy"
	ProtocolSushiswap Protocol = "sushiswap"
	ProtocolCurve     Protocol = "curve"
	ProtocolBalancer  Protocol = "balancer"
	ProtocolAave      Protocol = "aave"
	ProtocolCompound  Protocol = "compound"
	ProtocolZeroEx    Protocol = "zeroex"
	ProtocolFlashloan Protocol = "flashloan"
	ProtocolDyDx      Protocol = "dydx"
)

func ParseProtocol(s string) (Protocol, bool) {
	p := Protocol(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProtocolUniswap, ProtocolUniswapV2, ProtocolUniswappy, ProtocolSushiswap, ProtocolCurve,
		ProtocolBalancer, ProtocolAave, ProtocolCompound, ProtocolZeroEx, ProtocolFlashloan, ProtocolDyDx:
		return p, true
	}
	return "", false
}

type ProtocolSet map[Protocol]struct{}

func NewProtocolSet(ps ...Protocol) ProtocolSet {
	s := make(ProtocolSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s ProtocolSet) Add(p Protocol) {
	s[p] = struct{}{}
}

func (s ProtocolSet) Has(p Protocol) bool {
	_, ok := s[p]
	return ok
}

func (s ProtocolSet) Sorted() []Protocol {
	out := make([]Protocol, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s ProtocolSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, p := range sorted {
		out[i] = string(p)
	}
	return out
}

func (s ProtocolSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}
