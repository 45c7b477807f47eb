package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gas_checker/internal/domain/entity"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// IdentityProviderConfig holds identity-provider (Neynar-style) API settings.
type IdentityProviderConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// RegistryConfig holds the fname registry lookup settings.
type RegistryConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// HubConfig holds the verification hub settings.
type HubConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ExplorerConfig holds one chain's block-explorer API settings. APIKey is
// optional; an empty key disables lifetime-gas computation for that chain.
type ExplorerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// NetworkNodeConfig holds configuration for a specific blockchain network.
type NetworkNodeConfig struct {
	Identifier   string         `yaml:"identifier"`
	Name         string         `yaml:"name"`
	ChainID      uint64         `yaml:"chainID"`
	Role         string         `yaml:"role"`
	NativeSymbol string         `yaml:"nativeSymbol"`
	RPCURL       string         `yaml:"rpcURL"`
	Explorer     ExplorerConfig `yaml:"explorer"`
}

// PricingConfig holds the fixed USD conversion used for gas estimates.
type PricingConfig struct {
	EthUSD            float64 `yaml:"ethUSD"`
	RollupFeeDiscount float64 `yaml:"rollupFeeDiscount"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines     int     `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds     int     `yaml:"rpc_call_timeout_seconds"`
	ExplorerRequestsPerSecond float64 `yaml:"explorer_requests_per_second"`
	GasCacheTTLMinutes        int     `yaml:"gas_cache_ttl_minutes"`
}

// CORSConfig holds the allowed cross-origin caller list.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SwaggerConfig toggles the swagger UI route.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig           `yaml:"server"`
	Logging     LoggingConfig          `yaml:"logging"`
	Identity    IdentityProviderConfig `yaml:"identity"`
	Registry    RegistryConfig         `yaml:"registry"`
	Hub         HubConfig              `yaml:"hub"`
	Networks    []NetworkNodeConfig    `yaml:"networks"`
	Pricing     PricingConfig          `yaml:"pricing"`
	Performance PerformanceConfig      `yaml:"performance"`
	CORS        CORSConfig             `yaml:"cors"`
	Swagger     SwaggerConfig          `yaml:"swagger"`
}

// Env var names recognized as credential overrides. Keys in the environment
// win over keys in the YAML file so secrets can stay out of the repo.
const (
	EnvIdentityAPIKey          = "NEYNAR_API_KEY"
	EnvPrimaryExplorerAPIKey   = "ETHERSCAN_API_KEY"
	EnvSecondaryExplorerAPIKey = "BASESCAN_API_KEY"
)

// Load reads the YAML configuration file from the given path, unmarshals it,
// applies defaults and environment credential overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if _, err := cfg.NetworkByRole(entity.RolePrimary); err != nil {
		return nil, err
	}
	if _, err := cfg.NetworkByRole(entity.RoleSecondary); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 90
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Identity.BaseURL == "" {
		cfg.Identity.BaseURL = "https://api.neynar.com"
	}
	if cfg.Identity.RequestTimeoutMillis == 0 {
		cfg.Identity.RequestTimeoutMillis = 10000
	}
	if cfg.Registry.BaseURL == "" {
		cfg.Registry.BaseURL = "https://fnames.farcaster.xyz"
	}
	if cfg.Registry.RequestTimeoutMillis == 0 {
		cfg.Registry.RequestTimeoutMillis = 10000
	}
	if cfg.Hub.BaseURL == "" {
		cfg.Hub.BaseURL = "https://hub.pinata.cloud"
	}
	if cfg.Hub.RequestTimeoutMillis == 0 {
		cfg.Hub.RequestTimeoutMillis = 10000
	}

	for i := range cfg.Networks {
		if cfg.Networks[i].NativeSymbol == "" {
			cfg.Networks[i].NativeSymbol = "ETH"
		}
		if cfg.Networks[i].Explorer.RequestTimeoutMillis == 0 {
			// Explorer txlist calls are the slowest upstream class.
			cfg.Networks[i].Explorer.RequestTimeoutMillis = 15000
		}
	}

	if cfg.Pricing.EthUSD <= 0 {
		cfg.Pricing.EthUSD = 3500
	}
	if cfg.Pricing.RollupFeeDiscount <= 0 {
		cfg.Pricing.RollupFeeDiscount = 0.01
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.ExplorerRequestsPerSecond <= 0 {
		cfg.Performance.ExplorerRequestsPerSecond = 4
	}
	if cfg.Performance.GasCacheTTLMinutes <= 0 {
		cfg.Performance.GasCacheTTLMinutes = 5
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv(EnvIdentityAPIKey); key != "" {
		cfg.Identity.APIKey = key
	}
	for i := range cfg.Networks {
		var envKey string
		switch cfg.Networks[i].Role {
		case entity.RolePrimary:
			envKey = os.Getenv(EnvPrimaryExplorerAPIKey)
		case entity.RoleSecondary:
			envKey = os.Getenv(EnvSecondaryExplorerAPIKey)
		}
		if envKey != "" {
			cfg.Networks[i].Explorer.APIKey = envKey
		}
	}
}

// NetworkByRole returns the network node configured with the given role.
func (c *Config) NetworkByRole(role string) (NetworkNodeConfig, error) {
	for _, n := range c.Networks {
		if n.Role == role {
			return n, nil
		}
	}
	return NetworkNodeConfig{}, fmt.Errorf("no network configured with role %q", role)
}

// Definition converts a network node config into its domain definition.
func (n NetworkNodeConfig) Definition() entity.NetworkDefinition {
	return entity.NetworkDefinition{
		ChainID:       n.ChainID,
		Name:          n.Name,
		Identifier:    n.Identifier,
		Role:          n.Role,
		NativeSymbol:  n.NativeSymbol,
		PrimaryRPCURL: n.RPCURL,
	}
}
