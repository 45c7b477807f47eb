package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/pkg/metrics"
)

// reportServiceImpl implements port.ReportService by chaining the pipeline
// stages. Stage failures (no identity, no wallets) short-circuit into a
// failed report; aggregation itself cannot fail because individual stat
// fetches degrade to zero inside ChainStats.
type reportServiceImpl struct {
	resolver   port.IdentityResolver
	extractor  port.AddressExtractor
	selector   port.PrimaryWalletSelector
	aggregator port.GasAggregator
	rates      port.RateProvider
	logger     *zap.Logger
}

// NewReportService creates the pipeline orchestrator.
func NewReportService(
	resolver port.IdentityResolver,
	extractor port.AddressExtractor,
	selector port.PrimaryWalletSelector,
	aggregator port.GasAggregator,
	rates port.RateProvider,
	logger *zap.Logger,
) port.ReportService {
	return &reportServiceImpl{
		resolver:   resolver,
		extractor:  extractor,
		selector:   selector,
		aggregator: aggregator,
		rates:      rates,
		logger:     logger.Named("ReportService"),
	}
}

// FullReport runs the complete pipeline for one handle.
func (s *reportServiceImpl) FullReport(ctx context.Context, username string) entity.GasReport {
	started := time.Now()
	defer func() {
		metrics.ReportDuration.Observe(time.Since(started).Seconds())
	}()

	handle := NormalizeHandle(username)
	s.logger.Info("Building full gas report", zap.String("handle", handle))

	identity, profile := s.resolver.Resolve(ctx, handle)
	if identity == nil {
		metrics.ReportsTotal.WithLabelValues("user_not_found").Inc()
		return entity.FailedReport(handle, nil, entity.ErrUserNotFound)
	}

	candidates := s.extractor.Extract(ctx, identity, profile)
	if candidates.Len() == 0 {
		metrics.ReportsTotal.WithLabelValues("no_wallets").Inc()
		return entity.FailedReport(handle, identity, entity.ErrNoWallets)
	}

	primary := s.selector.Select(ctx, candidates)
	wallets, totalPrimaryGas, totalSecondaryGas := s.aggregator.Aggregate(ctx, candidates, primary)

	report := entity.GasReport{
		Username:          handle,
		FID:               identity.FID,
		DisplayName:       identity.DisplayName,
		AvatarURL:         identity.AvatarURL,
		Wallets:           wallets,
		PrimaryWallet:     primary,
		TotalGasPrimary:   totalPrimaryGas,
		TotalGasSecondary: totalSecondaryGas,
		TotalGasUSD:       s.estimateUSD(totalPrimaryGas, totalSecondaryGas),
	}

	metrics.ReportsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Full gas report complete",
		zap.String("handle", handle),
		zap.Int("wallet_count", len(wallets)),
		zap.Float64("total_gas_usd", report.TotalGasUSD),
		zap.Duration("elapsed", time.Since(started)))
	return report
}

// estimateUSD converts the two chain totals with the fixed configured rate.
// Secondary-chain gas is scaled by the rollup discount factor; this is an
// estimate, not a live price.
func (s *reportServiceImpl) estimateUSD(primaryGas, secondaryGas float64) float64 {
	rate := s.rates.NativeUSD()
	return primaryGas*rate + secondaryGas*rate*s.rates.RollupDiscount()
}

// QuickLookup resolves identity, wallets and the primary address without
// running aggregation.
func (s *reportServiceImpl) QuickLookup(ctx context.Context, username string) entity.QuickLookup {
	handle := NormalizeHandle(username)

	identity, profile := s.resolver.Resolve(ctx, handle)
	if identity == nil {
		reason := entity.ErrUserNotFound
		return entity.QuickLookup{Username: handle, Error: &reason}
	}

	candidates := s.extractor.Extract(ctx, identity, profile)
	var primary *string
	if candidates.Len() > 0 {
		primary = s.selector.Select(ctx, candidates)
	}

	return entity.QuickLookup{
		Username:      handle,
		FID:           identity.FID,
		DisplayName:   identity.DisplayName,
		AvatarURL:     identity.AvatarURL,
		PrimaryWallet: primary,
		WalletCount:   candidates.Len(),
	}
}

// ResolveFID returns only the numeric identity for a handle.
func (s *reportServiceImpl) ResolveFID(ctx context.Context, username string) (uint64, bool) {
	identity, _ := s.resolver.Resolve(ctx, username)
	if identity == nil || identity.FID == nil {
		return 0, false
	}
	return *identity.FID, true
}

// ListWallets returns the verified wallets with per-chain stats.
func (s *reportServiceImpl) ListWallets(ctx context.Context, username string) (*entity.WalletList, bool) {
	handle := NormalizeHandle(username)

	identity, profile := s.resolver.Resolve(ctx, handle)
	if identity == nil {
		return nil, false
	}

	candidates := s.extractor.Extract(ctx, identity, profile)
	var primary *string
	if candidates.Len() > 0 {
		primary = s.selector.Select(ctx, candidates)
	}
	wallets, _, _ := s.aggregator.Aggregate(ctx, candidates, primary)

	return &entity.WalletList{
		Username:      handle,
		FID:           identity.FID,
		WalletCount:   len(wallets),
		PrimaryWallet: primary,
		Wallets:       wallets,
	}, true
}
