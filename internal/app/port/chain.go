package port

import (
	"context"
	"math/big"

	"gas_checker/internal/domain/entity"
)

// BlockchainClient defines the interface for interacting with one EVM chain.
type BlockchainClient interface {
	// TransactionCount returns the confirmed nonce for the address.
	TransactionCount(ctx context.Context, address string) (uint64, error)

	// NativeBalance returns the native balance in the smallest unit (wei).
	NativeBalance(ctx context.Context, address string) (*big.Int, error)

	// ResolveName resolves an ENS name through the chain's name registry.
	// Only meaningful on the settlement chain.
	ResolveName(ctx context.Context, name string) (string, error)

	// Connected reports whether the RPC endpoint answers a chain-id call.
	Connected(ctx context.Context) bool

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// BlockchainClientProvider hands out long-lived chain clients. Clients are
// created on first use and reused for the process lifetime.
type BlockchainClientProvider interface {
	GetClient(netDef entity.NetworkDefinition) (BlockchainClient, error)
}

// GasExplorer is a block-explorer transaction-list API for one chain.
type GasExplorer interface {
	// LifetimeGas sums gasUsed×gasPrice over every transaction the address
	// sent, in whole native units.
	LifetimeGas(ctx context.Context, address string) (float64, error)

	// Configured reports whether an API credential is present. Unconfigured
	// explorers are skipped, not treated as failures.
	Configured() bool
}

// ChainStats exposes per-chain wallet statistics. Every operation degrades
// to zero on upstream failure and never returns an error; callers cannot
// distinguish a zero value from a failed fetch.
type ChainStats interface {
	TxCount(ctx context.Context, chain entity.Chain, address string) uint64
	Balance(ctx context.Context, chain entity.Chain, address string) float64
	LifetimeGas(ctx context.Context, chain entity.Chain, address string) float64
}

// RateProvider supplies the USD conversion used for the gas total estimate.
// The default implementation is a fixed configured rate, not a price feed.
type RateProvider interface {
	// NativeUSD is the USD price of one whole native unit on the primary chain.
	NativeUSD() float64

	// RollupDiscount scales secondary-chain gas when converting to USD,
	// reflecting typical rollup fee ratios.
	RollupDiscount() float64
}
