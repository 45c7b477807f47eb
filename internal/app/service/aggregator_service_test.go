package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gas_checker/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestAggregateCollectsPerWalletStats(t *testing.T) {
	stats := newStubChainStats()
	stats.txCounts[entity.ChainPrimary] = map[string]uint64{"0xA": 10, "0xB": 2}
	stats.txCounts[entity.ChainSecondary] = map[string]uint64{"0xA": 1, "0xB": 40}
	stats.balances = map[string]float64{"0xA": 1.5, "0xB": 0.25}
	stats.lifetimeGas[entity.ChainPrimary] = map[string]float64{"0xA": 0.3, "0xB": 0.1}
	stats.lifetimeGas[entity.ChainSecondary] = map[string]float64{"0xA": 0.01, "0xB": 0.04}
	aggregator := NewAggregatorService(stats, 4, zap.NewNop())

	reports, totalPrimary, totalSecondary := aggregator.Aggregate(
		context.Background(), candidateSet("0xA", "0xB"), strPtr("0xB"))

	require.Len(t, reports, 2)
	assert.Equal(t, "0xA", reports[0].Address)
	assert.Equal(t, uint64(10), reports[0].PrimaryTxCount)
	assert.Equal(t, uint64(1), reports[0].SecondaryTxCount)
	assert.InDelta(t, 1.5, reports[0].BalanceNative, 1e-9)
	assert.False(t, reports[0].IsPrimary)

	assert.Equal(t, "0xB", reports[1].Address)
	assert.True(t, reports[1].IsPrimary)

	assert.InDelta(t, 0.4, totalPrimary, 1e-9)
	assert.InDelta(t, 0.05, totalSecondary, 1e-9)
}

func TestAggregatePrimaryMatchIsCaseInsensitive(t *testing.T) {
	stats := newStubChainStats()
	aggregator := NewAggregatorService(stats, 4, zap.NewNop())

	reports, _, _ := aggregator.Aggregate(
		context.Background(), candidateSet("0xAbC"), strPtr("0xABC"))

	require.Len(t, reports, 1)
	assert.True(t, reports[0].IsPrimary)
}

func TestAggregateDegradedWalletDoesNotAffectOthers(t *testing.T) {
	// A wallet every upstream failed for contributes zeros; the other
	// wallet's numbers are untouched.
	stats := newStubChainStats()
	stats.txCounts[entity.ChainPrimary] = map[string]uint64{"0xGood": 5}
	stats.lifetimeGas[entity.ChainPrimary] = map[string]float64{"0xGood": 0.2}
	aggregator := NewAggregatorService(stats, 4, zap.NewNop())

	reports, totalPrimary, totalSecondary := aggregator.Aggregate(
		context.Background(), candidateSet("0xGood", "0xDead"), nil)

	require.Len(t, reports, 2)
	assert.Equal(t, uint64(5), reports[0].PrimaryTxCount)
	assert.Zero(t, reports[1].PrimaryTxCount)
	assert.Zero(t, reports[1].BalanceNative)
	assert.InDelta(t, 0.2, totalPrimary, 1e-9)
	assert.Zero(t, totalSecondary)
	assert.False(t, reports[0].IsPrimary)
	assert.False(t, reports[1].IsPrimary)
}

func TestAggregateEmptySet(t *testing.T) {
	aggregator := NewAggregatorService(newStubChainStats(), 4, zap.NewNop())

	reports, totalPrimary, totalSecondary := aggregator.Aggregate(
		context.Background(), entity.NewCandidateSet(), nil)

	assert.Empty(t, reports)
	assert.Zero(t, totalPrimary)
	assert.Zero(t, totalSecondary)
}
