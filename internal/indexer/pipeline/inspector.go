package pipeline

import (
	"go.uber.org/zap"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/0xPexy/sentra-inspect/internal/inspect/inspectors"
	"github.com/0xPexy/sentra-inspect/internal/inspect/reducers"
	"github.com/0xPexy/sentra-inspect/internal/registry"
)

// NewDefaultInspector wires every protocol inspector and reducer in their canonical order.
// ERC20 runs first so protocol inspectors can match on transfers; liquidations are reduced
// before trades so their acquisition trades stay visible.
func NewDefaultInspector(reg *registry.Registry, logger *zap.Logger) *inspect.BatchInspector {
	return inspect.NewBatchInspector(reg, []inspect.Inspector{
		inspectors.NewERC20(reg.WETH),
		inspectors.NewUniswap(reg),
		inspectors.NewCurve(reg.Addresses(registry.RolePool, inspect.ProtocolCurve)),
		inspectors.NewBalancer(reg.Addresses(registry.RolePool, inspect.ProtocolBalancer)),
		inspectors.NewAave(reg),
		inspectors.NewCompound(reg),
		inspectors.NewZeroEx(reg),
		inspectors.NewDyDx(reg),
	}, []inspect.Reducer{
		reducers.NewLiquidationReducer(reg.WETH),
		reducers.NewTradeReducer(),
		reducers.NewArbitrageReducer(),
	}, logger)
}
