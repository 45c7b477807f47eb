package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
)

// selectorServiceImpl implements port.PrimaryWalletSelector.
//
// The heuristic: a candidate with zero mainnet transactions but rollup
// activity is likely the actively-used signing wallet (cheap chain, daily
// use); when every candidate has mainnet history, the least-reused address
// is the better primary guess than an old custody or funding address. This
// is a best-effort signal, there is no authoritative primary flag upstream.
type selectorServiceImpl struct {
	stats                 port.ChainStats
	logger                *zap.Logger
	maxConcurrentRoutines int
}

// NewSelectorService creates the primary-wallet selector.
func NewSelectorService(stats port.ChainStats, maxRoutines int, logger *zap.Logger) port.PrimaryWalletSelector {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &selectorServiceImpl{
		stats:                 stats,
		logger:                logger.Named("SelectorService"),
		maxConcurrentRoutines: maxRoutines,
	}
}

// Select picks the primary wallet. Single-candidate sets return immediately
// with no network calls. Ties always break toward the first-encountered
// candidate.
func (s *selectorServiceImpl) Select(ctx context.Context, candidates *entity.CandidateSet) *string {
	list := candidates.Candidates()

	switch len(list) {
	case 0:
		return nil
	case 1:
		addr := list[0].Address
		return &addr
	}

	primaryCounts := make([]uint64, len(list))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrentRoutines)
	for i := range list {
		eg.Go(func() error {
			primaryCounts[i] = s.stats.TxCount(egCtx, entity.ChainPrimary, list[i].Address)
			return nil
		})
	}
	_ = eg.Wait()

	var zeroIdx []int
	for i, count := range primaryCounts {
		if count == 0 {
			zeroIdx = append(zeroIdx, i)
		}
	}

	if len(zeroIdx) > 0 {
		// Wallets silent on the settlement chain: rank them by rollup
		// activity and take the busiest.
		secondaryCounts := make([]uint64, len(zeroIdx))
		seg, segCtx := errgroup.WithContext(ctx)
		seg.SetLimit(s.maxConcurrentRoutines)
		for j := range zeroIdx {
			seg.Go(func() error {
				secondaryCounts[j] = s.stats.TxCount(segCtx, entity.ChainSecondary, list[zeroIdx[j]].Address)
				return nil
			})
		}
		_ = seg.Wait()

		best := 0
		for j := 1; j < len(zeroIdx); j++ {
			if secondaryCounts[j] > secondaryCounts[best] {
				best = j
			}
		}
		addr := list[zeroIdx[best]].Address
		s.logger.Debug("Primary wallet selected by secondary-chain activity",
			zap.String("address", addr),
			zap.Uint64("secondary_tx_count", secondaryCounts[best]))
		return &addr
	}

	best := 0
	for i := 1; i < len(list); i++ {
		if primaryCounts[i] < primaryCounts[best] {
			best = i
		}
	}
	addr := list[best].Address
	s.logger.Debug("Primary wallet selected by lowest primary-chain reuse",
		zap.String("address", addr),
		zap.Uint64("primary_tx_count", primaryCounts[best]))
	return &addr
}
