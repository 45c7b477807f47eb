package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_checker/internal/domain/entity"
)

const minimalConfig = `
networks:
  - identifier: "ethereum"
    name: "Ethereum Mainnet"
    chainID: 1
    role: "primary"
    rpcURL: "https://rpc.example"
    explorer:
      baseURL: "https://api.etherscan.io"
  - identifier: "base"
    name: "Base"
    chainID: 8453
    role: "secondary"
    rpcURL: "https://base.example"
    explorer:
      baseURL: "https://api.basescan.org"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.neynar.com", cfg.Identity.BaseURL)
	assert.Equal(t, "https://fnames.farcaster.xyz", cfg.Registry.BaseURL)
	assert.Equal(t, "https://hub.pinata.cloud", cfg.Hub.BaseURL)
	assert.InDelta(t, 3500.0, cfg.Pricing.EthUSD, 1e-9)
	assert.InDelta(t, 0.01, cfg.Pricing.RollupFeeDiscount, 1e-9)
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRoutines)
	assert.InDelta(t, 4.0, cfg.Performance.ExplorerRequestsPerSecond, 1e-9)
	assert.Equal(t, 5, cfg.Performance.GasCacheTTLMinutes)
	assert.Equal(t, "ETH", cfg.Networks[0].NativeSymbol)
	assert.EqualValues(t, 15000, cfg.Networks[0].Explorer.RequestTimeoutMillis)
	assert.Equal(t, "/swagger", cfg.Swagger.Path)
}

func TestLoadEnvCredentialOverrides(t *testing.T) {
	t.Setenv(EnvIdentityAPIKey, "neynar-secret")
	t.Setenv(EnvPrimaryExplorerAPIKey, "ethscan-secret")
	t.Setenv(EnvSecondaryExplorerAPIKey, "basescan-secret")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "neynar-secret", cfg.Identity.APIKey)
	assert.Equal(t, "ethscan-secret", cfg.Networks[0].Explorer.APIKey)
	assert.Equal(t, "basescan-secret", cfg.Networks[1].Explorer.APIKey)
}

func TestLoadRequiresBothChainRoles(t *testing.T) {
	onlyPrimary := `
networks:
  - identifier: "ethereum"
    name: "Ethereum Mainnet"
    chainID: 1
    role: "primary"
    rpcURL: "https://rpc.example"
`
	_, err := Load(writeConfig(t, onlyPrimary))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secondary")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestNetworkByRole(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	primary, err := cfg.NetworkByRole(entity.RolePrimary)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", primary.Identifier)

	def := primary.Definition()
	assert.Equal(t, uint64(1), def.ChainID)
	assert.Equal(t, entity.RolePrimary, def.Role)
	assert.Equal(t, "https://rpc.example", def.PrimaryRPCURL)
}
