package config

type ChainConfig struct {
	RPCURL  string
	ChainID uint64
}

func loadChain() ChainConfig {
	return ChainConfig{
		RPCURL:  getenv("CHAIN_RPC_URL", "http://localhost:8545"),
		ChainID: u64env("CHAIN_ID", 1),
	}
}
