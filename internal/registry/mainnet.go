package registry

import (
	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
)

var (
	MainnetWETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	MainnetDAI  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	MainnetUSDC = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	MainnetUSDT = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	MainnetWBTC = common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599")

	UniswapV2Router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	SushiswapRouter = common.HexToAddress("0xd9e1cE17f2641f24aE83637ab66a2cca9C378B9F")

	AaveV1LendingPool = common.HexToAddress("0x398eC7346DcD622eDc5ae82352F02bE94C62d119")
	AaveV2LendingPool = common.HexToAddress("0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9")

	CompoundComptroller = common.HexToAddress("0x3d9819210A31b4961b30EF54bE2aeD79B9c9Cd3B")
	CEther              = common.HexToAddress("0x4Ddc2D193948926D02f9B1fE9e1daa0718270ED5")
	CDAI                = common.HexToAddress("0x5d3a536E4D6DbD6114cc1Ead35777bAB948E3643")
	CUSDC               = common.HexToAddress("0x39AA39c021dfbaE8faC545936693aC917d5E7563")
	CUSDT               = common.HexToAddress("0xf650C3d88D12dB855b8bf7D11Be6C55A4e07dCC9")
	CWBTC               = common.HexToAddress("0xC11b1268C1A384e55C48c2391d8d480264A3A7F4")

	DyDxSoloMargin = common.HexToAddress("0x1E0447b19BB6EcFdAe1e4AE1694b0C3659614e4e")
)

func addrPtr(a common.Address) *common.Address { return &a }

func mainnetEntries() []Entry {
	return []Entry{
		{Address: MainnetWETH, Label: "WETH", Role: RoleToken},
		{Address: MainnetDAI, Label: "DAI", Role: RoleToken},
		{Address: MainnetUSDC, Label: "USDC", Role: RoleToken},
		{Address: MainnetUSDT, Label: "USDT", Role: RoleToken},
		{Address: MainnetWBTC, Label: "WBTC", Role: RoleToken},

		{Address: UniswapV2Router, Label: "Uniswap V2: Router 2", Protocol: inspect.ProtocolUniswapV2, Role: RoleRouter},
		{Address: common.HexToAddress("0xf164fC0Ec4E93095b804a4795bBe1e041497b92a"), Label: "Uniswap V2: Router", Protocol: inspect.ProtocolUniswapV2, Role: RoleRouter},
		{Address: SushiswapRouter, Label: "Sushiswap: Router", Protocol: inspect.ProtocolSushiswap, Role: RoleRouter},
		{Address: common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"), Label: "Uniswap V2: USDC-WETH", Protocol: inspect.ProtocolUniswapV2, Role: RolePair},
		{Address: common.HexToAddress("0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11"), Label: "Uniswap V2: DAI-WETH", Protocol: inspect.ProtocolUniswapV2, Role: RolePair},
		{Address: common.HexToAddress("0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852"), Label: "Uniswap V2: WETH-USDT", Protocol: inspect.ProtocolUniswapV2, Role: RolePair},
		{Address: common.HexToAddress("0xBb2b8038a1640196FbE3e38816F3e67Cba72D940"), Label: "Uniswap V2: WBTC-WETH", Protocol: inspect.ProtocolUniswapV2, Role: RolePair},
		{Address: common.HexToAddress("0x397FF1542f962076d0BFE58eA045FfA2d347ACa0"), Label: "Sushiswap: USDC-WETH", Protocol: inspect.ProtocolSushiswap, Role: RolePair},
		{Address: common.HexToAddress("0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f"), Label: "Sushiswap: DAI-WETH", Protocol: inspect.ProtocolSushiswap, Role: RolePair},
		{Address: common.HexToAddress("0x06da0fd433C1A5d7a4faa01111c044910A184553"), Label: "Sushiswap: WETH-USDT", Protocol: inspect.ProtocolSushiswap, Role: RolePair},
		{Address: common.HexToAddress("0xCEfF51756c56CeFFCA006cD410B03FFC46dd3a58"), Label: "Sushiswap: WBTC-WETH", Protocol: inspect.ProtocolSushiswap, Role: RolePair},

		{Address: common.HexToAddress("0xbEbc44782C7dB0a1A60Cb6fe97d0b483032FF1C7"), Label: "Curve: 3pool", Protocol: inspect.ProtocolCurve, Role: RolePool},
		{Address: common.HexToAddress("0xA2B47E3D5c44877cca798226B7B8118F9BFb7A56"), Label: "Curve: Compound pool", Protocol: inspect.ProtocolCurve, Role: RolePool},
		{Address: common.HexToAddress("0x45F783CCE6B7FF23B2ab2D70e416cdb7D6055f51"), Label: "Curve: y pool", Protocol: inspect.ProtocolCurve, Role: RolePool},
		{Address: common.HexToAddress("0xDC24316b9AE028F1497c275EB9192a3Ea0f67022"), Label: "Curve: stETH pool", Protocol: inspect.ProtocolCurve, Role: RolePool},
		{Address: common.HexToAddress("0x3E66B66Fd1d0b02fDa6C811Da9E0547970DB2f21"), Label: "Balancer: Exchange Proxy", Protocol: inspect.ProtocolBalancer, Role: RoleRouter},
		{Address: common.HexToAddress("0x1eff8af5d577060ba4ac8a29a13525bb0ee2a3d5"), Label: "Balancer: WBTC-WETH pool", Protocol: inspect.ProtocolBalancer, Role: RolePool},
		{Address: common.HexToAddress("0x59A19D8c652FA0284f44113D0ff9aBa70bd46fB4"), Label: "Balancer: BAL-WETH pool", Protocol: inspect.ProtocolBalancer, Role: RolePool},

		{Address: AaveV1LendingPool, Label: "Aave: Lending Pool V1", Protocol: inspect.ProtocolAave, Role: RoleLendingPool},
		{Address: common.HexToAddress("0x3dfd23A6c5E8BbcFc9581d2E864a68feb6a076d3"), Label: "Aave: Lending Pool Core V1", Protocol: inspect.ProtocolAave},
		{Address: AaveV2LendingPool, Label: "Aave: Lending Pool V2", Protocol: inspect.ProtocolAave, Role: RoleLendingPool},

		{Address: CompoundComptroller, Label: "Compound: Comptroller", Protocol: inspect.ProtocolCompound, Role: RoleComptroller},
		{Address: CEther, Label: "Compound: cETH", Protocol: inspect.ProtocolCompound, Role: RoleCToken, Underlying: addrPtr(inspect.ETH)},
		{Address: CDAI, Label: "Compound: cDAI", Protocol: inspect.ProtocolCompound, Role: RoleCToken, Underlying: addrPtr(MainnetDAI)},
		{Address: CUSDC, Label: "Compound: cUSDC", Protocol: inspect.ProtocolCompound, Role: RoleCToken, Underlying: addrPtr(MainnetUSDC)},
		{Address: CUSDT, Label: "Compound: cUSDT", Protocol: inspect.ProtocolCompound, Role: RoleCToken, Underlying: addrPtr(MainnetUSDT)},
		{Address: CWBTC, Label: "Compound: cWBTC", Protocol: inspect.ProtocolCompound, Role: RoleCToken, Underlying: addrPtr(MainnetWBTC)},

		{Address: common.HexToAddress("0xDef1C0ded9bec7F1a1670819833240f027b25EfF"), Label: "0x: Exchange Proxy", Protocol: inspect.ProtocolZeroEx},
		{Address: common.HexToAddress("0x61935CbDd02287B511119DDb11Aeb42F1593b7Ef"), Label: "0x: Exchange V3", Protocol: inspect.ProtocolZeroEx},
		{Address: common.HexToAddress("0xDcD6011f4C6B80e470D9487f5871a0Cba7C93f48"), Label: "0x: UniswapV2 Bridge", Protocol: inspect.ProtocolUniswapV2, Role: RoleBridge},
		{Address: common.HexToAddress("0x47ed0262A0B688DcB836D254C6a2e96B6c48a9f5"), Label: "0x: Sushiswap Bridge", Protocol: inspect.ProtocolSushiswap, Role: RoleBridge},
		{Address: common.HexToAddress("0x1796Cd592d19E3bcd744fbB025BB61A6D8cb2c09"), Label: "0x: Curve Bridge", Protocol: inspect.ProtocolCurve, Role: RoleBridge},
		{Address: common.HexToAddress("0x36691C4F426Eb8F42f150ebdE43069A31cB080AD"), Label: "0x: Uniswap Bridge", Protocol: inspect.ProtocolUniswap, Role: RoleBridge},
		{Address: common.HexToAddress("0xFe01821Ca163844203220cd08E4f2B2FB43aE4E4"), Label: "0x: Balancer Bridge", Protocol: inspect.ProtocolBalancer, Role: RoleBridge},

		{Address: DyDxSoloMargin, Label: "dYdX: Solo Margin", Protocol: inspect.ProtocolDyDx, Role: RoleSoloMargin},

		{Address: common.HexToAddress("0x111111125434b319222CdBf8C261674aDB56F3ae"), Label: "1inch v2", Role: RoleBot, Deny: true},
		{Address: common.HexToAddress("0x11111112542D85B3EF69AE05771c2dCCff4fAa26"), Label: "1inch v3", Role: RoleBot, Deny: true},
	}
}

// Default returns the built-in Ethereum mainnet registry.
func Default() *Registry {
	return New(MainnetWETH, mainnetEntries()...)
}
