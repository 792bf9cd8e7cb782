package config

import "strings"

const (
	OracleUniswap = "uniswap"
	OracleStatic  = "static"
)

type OracleConfig struct {
	Kind string
	// Router is the Uniswap V2 style router quoted through getAmountsOut.
	Router     string
	PricesFile string
	// CacheSize bounds the memoized router quotes.
	CacheSize int
}

func loadOracle() OracleConfig {
	kind := strings.ToLower(getenv("ORACLE_KIND", OracleUniswap))
	if kind != OracleStatic {
		kind = OracleUniswap
	}
	return OracleConfig{
		Kind:       kind,
		Router:     getenv("ORACLE_ROUTER", "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
		PricesFile: getenv("ORACLE_PRICES_FILE", ""),
		CacheSize:  intEnv("ORACLE_CACHE_SIZE", 4096),
	}
}
