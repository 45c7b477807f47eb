package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
)

// aggregatorServiceImpl implements port.GasAggregator: the five per-wallet
// stat fetches run concurrently with each other and across wallets; totals
// accumulate by simple addition, degraded zeros included.
type aggregatorServiceImpl struct {
	stats                 port.ChainStats
	logger                *zap.Logger
	maxConcurrentRoutines int
}

// NewAggregatorService creates the gas aggregator.
func NewAggregatorService(stats port.ChainStats, maxRoutines int, logger *zap.Logger) port.GasAggregator {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &aggregatorServiceImpl{
		stats:                 stats,
		logger:                logger.Named("AggregatorService"),
		maxConcurrentRoutines: maxRoutines,
	}
}

// Aggregate builds one WalletReport per candidate, in candidate order, and
// returns the primary- and secondary-chain gas totals. No candidate's fetch
// set depends on another's result; a failed stat contributes its zero value
// instead of being excluded.
func (s *aggregatorServiceImpl) Aggregate(
	ctx context.Context,
	candidates *entity.CandidateSet,
	primary *string,
) ([]entity.WalletReport, float64, float64) {
	list := candidates.Candidates()
	reports := make([]entity.WalletReport, len(list))

	var totalPrimaryGas, totalSecondaryGas float64
	var totalsMu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrentRoutines)

	for i := range list {
		eg.Go(func() error {
			address := list[i].Address
			report := entity.WalletReport{Address: address}
			var gasPrimary, gasSecondary float64

			fetches, fetchCtx := errgroup.WithContext(egCtx)
			fetches.Go(func() error {
				report.PrimaryTxCount = s.stats.TxCount(fetchCtx, entity.ChainPrimary, address)
				return nil
			})
			fetches.Go(func() error {
				report.SecondaryTxCount = s.stats.TxCount(fetchCtx, entity.ChainSecondary, address)
				return nil
			})
			fetches.Go(func() error {
				report.BalanceNative = s.stats.Balance(fetchCtx, entity.ChainPrimary, address)
				return nil
			})
			fetches.Go(func() error {
				gasPrimary = s.stats.LifetimeGas(fetchCtx, entity.ChainPrimary, address)
				return nil
			})
			fetches.Go(func() error {
				gasSecondary = s.stats.LifetimeGas(fetchCtx, entity.ChainSecondary, address)
				return nil
			})
			_ = fetches.Wait()

			report.IsPrimary = primary != nil && strings.EqualFold(address, *primary)
			reports[i] = report

			totalsMu.Lock()
			totalPrimaryGas += gasPrimary
			totalSecondaryGas += gasSecondary
			totalsMu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	s.logger.Debug("Aggregation complete",
		zap.Int("wallet_count", len(reports)),
		zap.Float64("total_gas_primary", totalPrimaryGas),
		zap.Float64("total_gas_secondary", totalSecondaryGas))
	return reports, totalPrimaryGas, totalSecondaryGas
}
