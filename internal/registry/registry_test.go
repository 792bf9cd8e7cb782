package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xPexy/sentra-inspect/internal/inspect"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	r := Default()

	p, ok := r.Protocol(common.HexToAddress("0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f"))
	require.True(t, ok)
	assert.Equal(t, inspect.ProtocolSushiswap, p)

	underlying, ok := r.Underlying(CEther)
	require.True(t, ok)
	assert.Equal(t, inspect.ETH, underlying)

	_, ok = r.Underlying(CompoundComptroller)
	assert.False(t, ok)

	assert.True(t, r.Denied(common.HexToAddress("0x11111112542D85B3EF69AE05771c2dCCff4fAa26")))
	assert.False(t, r.Denied(MainnetWETH))
	assert.True(t, r.IsNative(MainnetWETH))
	assert.True(t, r.IsNative(inspect.ETH))
	assert.Equal(t, "ETH", r.Label(inspect.ETH))
	assert.ElementsMatch(t, []common.Address{AaveV1LendingPool, AaveV2LendingPool}, r.Addresses(RoleLendingPool, inspect.ProtocolAave))
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")
	body := `{
		"entries": [
			{"address": "0x0000000000000000000000000000000000000bad", "label": "some bot", "deny": true},
			{"address": "0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f", "label": "renamed"},
			{"address": "0x0000000000000000000000000000000000000abc", "label": "clone pair", "protocol": "uniswappy", "role": "pair"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.True(t, r.Denied(common.HexToAddress("0xbad")))
	assert.Equal(t, "renamed", r.Label(common.HexToAddress("0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f")))
	p, ok := r.Protocol(common.HexToAddress("0xC3D03e4F041Fd4cD388c549Ee2A29a9E5075882f"))
	require.True(t, ok)
	assert.Equal(t, inspect.ProtocolSushiswap, p)
	assert.True(t, r.HasRole(common.HexToAddress("0xabc"), RolePair))
}

func TestLoadRejectsUnknownProtocol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entries":[{"address":"0x0000000000000000000000000000000000000001","protocol":"nope"}]}`), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}
