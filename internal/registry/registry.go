package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
)

type Role string

const (
	RoleToken       Role = "token"
	RolePair        Role = "pair"
	RoleRouter      Role = "router"
	RolePool        Role = "pool"
	RoleLendingPool Role = "lending_pool"
	RoleComptroller Role = "comptroller"
	RoleCToken      Role = "ctoken"
	RoleBridge      Role = "bridge"
	RoleSoloMargin  Role = "solo_margin"
	RoleBot         Role = "bot"
)

type Entry struct {
	Address    common.Address   `json:"address"`
	Label      string           `json:"label"`
	Protocol   inspect.Protocol `json:"protocol,omitempty"`
	Role       Role             `json:"role,omitempty"`
	Underlying *common.Address  `json:"underlying,omitempty"`
	Deny       bool             `json:"deny,omitempty"`
}

// Registry holds the static address knowledge the inspectors rely on.
type Registry struct {
	WETH    common.Address
	entries map[common.Address]Entry
}

func New(weth common.Address, entries ...Entry) *Registry {
	r := &Registry{WETH: weth, entries: make(map[common.Address]Entry, len(entries))}
	for _, e := range entries {
		r.Add(e)
	}
	return r
}

func (r *Registry) Add(e Entry) {
	if prev, ok := r.entries[e.Address]; ok {
		if e.Label == "" {
			e.Label = prev.Label
		}
		if e.Protocol == "" {
			e.Protocol = prev.Protocol
		}
		if e.Role == "" {
			e.Role = prev.Role
		}
		if e.Underlying == nil {
			e.Underlying = prev.Underlying
		}
		e.Deny = e.Deny || prev.Deny
	}
	r.entries[e.Address] = e
}

func (r *Registry) Lookup(addr common.Address) (Entry, bool) {
	e, ok := r.entries[addr]
	return e, ok
}

func (r *Registry) Protocol(addr common.Address) (inspect.Protocol, bool) {
	e, ok := r.entries[addr]
	if !ok || e.Protocol == "" {
		return "", false
	}
	return e.Protocol, true
}

func (r *Registry) Label(addr common.Address) string {
	if addr == inspect.ETH {
		return "ETH"
	}
	return r.entries[addr].Label
}

func (r *Registry) Denied(addr common.Address) bool {
	return r.entries[addr].Deny
}

func (r *Registry) HasRole(addr common.Address, role Role) bool {
	e, ok := r.entries[addr]
	return ok && e.Role == role
}

// Underlying returns the asset a Compound market lends, ETH for cEther.
func (r *Registry) Underlying(cToken common.Address) (common.Address, bool) {
	e, ok := r.entries[cToken]
	if !ok || e.Role != RoleCToken || e.Underlying == nil {
		return common.Address{}, false
	}
	return *e.Underlying, true
}

// Addresses lists every address registered with the given role and protocol.
func (r *Registry) Addresses(role Role, protocol inspect.Protocol) []common.Address {
	var out []common.Address
	for addr, e := range r.entries {
		if e.Role == role && (protocol == "" || e.Protocol == protocol) {
			out = append(out, addr)
		}
	}
	return out
}

// IsNative reports whether token is the native asset or its wrapped form.
func (r *Registry) IsNative(token common.Address) bool {
	return token == inspect.ETH || token == r.WETH
}

type overlayFile struct {
	WETH    *common.Address `json:"weth"`
	Entries []Entry         `json:"entries"`
}

// Load returns the built-in mainnet registry extended with the entries of a JSON file.
// An empty path yields the built-in tables.
func Load(path string) (*Registry, error) {
	r := Default()
	if strings.TrimSpace(path) == "" {
		return r, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	var overlay overlayFile
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse registry file %s: %w", path, err)
	}
	if overlay.WETH != nil {
		r.WETH = *overlay.WETH
	}
	for _, e := range overlay.Entries {
		if e.Address == (common.Address{}) {
			return nil, fmt.Errorf("registry file %s: entry %q has no address", path, e.Label)
		}
		if e.Protocol != "" {
			p, ok := inspect.ParseProtocol(string(e.Protocol))
			if !ok {
				return nil, fmt.Errorf("registry file %s: unknown protocol %q", path, e.Protocol)
			}
			e.Protocol = p
		}
		r.Add(e)
	}
	return r, nil
}
