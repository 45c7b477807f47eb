package entity

// Chain identifies which of the two report chains a stat belongs to.
type Chain string

const (
	// ChainPrimary is the higher-fee settlement chain (Ethereum mainnet).
	ChainPrimary Chain = "primary"
	// ChainSecondary is the low-fee rollup chain (Base).
	ChainSecondary Chain = "secondary"
)

// NetworkRole values recognized in network configuration.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
)

// NetworkDefinition holds the configuration for a specific blockchain network.
type NetworkDefinition struct {
	ChainID         uint64   `json:"chainId" yaml:"chainId"`
	Name            string   `json:"name" yaml:"name"`
	Identifier      string   `json:"identifier" yaml:"identifier"`
	Role            string   `json:"role,omitempty" yaml:"role,omitempty"`
	NativeSymbol    string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL   string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs []string `json:"fallbackRpcUrls,omitempty" yaml:"fallbackRpcUrls,omitempty"`
}

// ChainStat is one stat snapshot for an (address, chain) pair. Values are
// whole native-currency units; a fetch failure leaves the value at zero.
type ChainStat struct {
	Chain          Chain   `json:"chain"`
	Address        string  `json:"address"`
	TxCount        uint64  `json:"tx_count"`
	BalanceNative  float64 `json:"balance_native"`
	GasSpentNative float64 `json:"gas_spent_native"`
}
