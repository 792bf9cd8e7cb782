package inspectors

import (
	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/ethereum/go-ethereum/common"
)

func sameAsset(reg *registry.Registry, a, b common.Address) bool {
	return a == b || (reg.IsNative(a) && reg.IsNative(b))
}

func hasLiquidation(insp *inspect.Inspection) bool {
	return insp.HasAction(inspect.Liquidation{}.Name()) || insp.HasAction(inspect.ProfitableLiquidation{}.Name())
}

// markChecked downgrades a successful transaction that only probed liquidation eligibility.
func markChecked(insp *inspect.Inspection, probes int) {
	if probes > 0 && insp.Status == inspect.StatusSuccess && !hasLiquidation(insp) {
		insp.Status = inspect.StatusChecked
	}
}
