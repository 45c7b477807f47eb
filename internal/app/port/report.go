package port

import (
	"context"

	"gas_checker/internal/domain/entity"
)

// PrimaryWalletSelector applies the primary-wallet heuristic over a
// candidate set. The result is a best-effort signal, not ground truth.
type PrimaryWalletSelector interface {
	// Select returns nil for an empty set, otherwise the address of exactly
	// one member of the set.
	Select(ctx context.Context, candidates *entity.CandidateSet) *string
}

// GasAggregator collects per-wallet chain stats concurrently and folds them
// into per-wallet reports plus chain totals.
type GasAggregator interface {
	Aggregate(ctx context.Context, candidates *entity.CandidateSet, primary *string) ([]entity.WalletReport, float64, float64)
}

// ReportService runs the resolution pipeline end to end.
type ReportService interface {
	// FullReport runs identity → addresses → primary selection → aggregation.
	FullReport(ctx context.Context, username string) entity.GasReport

	// QuickLookup skips aggregation for latency-sensitive callers.
	QuickLookup(ctx context.Context, username string) entity.QuickLookup

	// ResolveFID returns only the numeric identity for a handle.
	ResolveFID(ctx context.Context, username string) (uint64, bool)

	// ListWallets returns the verified wallets with per-chain stats, or
	// false when the handle cannot be resolved.
	ListWallets(ctx context.Context, username string) (*entity.WalletList, bool)
}
