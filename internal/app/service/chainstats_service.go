package service

import (
	"context"

	"go.uber.org/zap"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/pkg/metrics"
	"gas_checker/internal/pkg/utils"
)

// chainStatsImpl implements port.ChainStats over one blockchain client and
// one explorer per chain. Every upstream failure collapses to a zero value
// here; callers never see an error. The cost of that contract is that a
// genuine zero and a failed fetch are indistinguishable downstream.
type chainStatsImpl struct {
	clients   map[entity.Chain]port.BlockchainClient
	explorers map[entity.Chain]port.GasExplorer
	logger    *zap.Logger
}

// NewChainStatsService creates the stats provider for the two report chains.
func NewChainStatsService(
	primaryClient, secondaryClient port.BlockchainClient,
	primaryExplorer, secondaryExplorer port.GasExplorer,
	logger *zap.Logger,
) port.ChainStats {
	return &chainStatsImpl{
		clients: map[entity.Chain]port.BlockchainClient{
			entity.ChainPrimary:   primaryClient,
			entity.ChainSecondary: secondaryClient,
		},
		explorers: map[entity.Chain]port.GasExplorer{
			entity.ChainPrimary:   primaryExplorer,
			entity.ChainSecondary: secondaryExplorer,
		},
		logger: logger.Named("ChainStatsService"),
	}
}

// TxCount returns the confirmed transaction count, or 0 on any failure.
func (s *chainStatsImpl) TxCount(ctx context.Context, chain entity.Chain, address string) uint64 {
	cli, ok := s.clients[chain]
	if !ok {
		return 0
	}

	count, err := cli.TransactionCount(ctx, address)
	if err != nil {
		s.logger.Warn("Transaction count fetch degraded to zero",
			zap.String("chain", string(chain)),
			zap.String("address", address),
			zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("rpc").Inc()
		return 0
	}
	return count
}

// Balance returns the native balance in whole units, or 0 on any failure.
func (s *chainStatsImpl) Balance(ctx context.Context, chain entity.Chain, address string) float64 {
	cli, ok := s.clients[chain]
	if !ok {
		return 0
	}

	wei, err := cli.NativeBalance(ctx, address)
	if err != nil {
		s.logger.Warn("Balance fetch degraded to zero",
			zap.String("chain", string(chain)),
			zap.String("address", address),
			zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("rpc").Inc()
		return 0
	}
	return utils.WeiToNative(wei)
}

// LifetimeGas returns the cumulative gas spend in whole native units. An
// unconfigured explorer skips the computation entirely; both that and a
// failed fetch yield 0.
func (s *chainStatsImpl) LifetimeGas(ctx context.Context, chain entity.Chain, address string) float64 {
	explorer, ok := s.explorers[chain]
	if !ok || !explorer.Configured() {
		return 0
	}

	gas, err := explorer.LifetimeGas(ctx, address)
	if err != nil {
		s.logger.Warn("Lifetime gas fetch degraded to zero",
			zap.String("chain", string(chain)),
			zap.String("address", address),
			zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("explorer").Inc()
		return 0
	}
	return gas
}
