package service

import (
	"context"

	"go.uber.org/zap"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/pkg/metrics"
)

// addressServiceImpl implements port.AddressExtractor: it folds the
// profile's three address fields and the hub's verification list into one
// insertion-ordered, case-insensitively deduplicated candidate set.
type addressServiceImpl struct {
	hub    port.VerificationHub
	logger *zap.Logger
}

// NewAddressService creates the extractor.
func NewAddressService(hub port.VerificationHub, logger *zap.Logger) port.AddressExtractor {
	return &addressServiceImpl{
		hub:    hub,
		logger: logger.Named("AddressService"),
	}
}

// Extract collects candidates in priority order: structured verified
// addresses, legacy verifications, custody address, then hub verifications
// when a FID is known. An empty result distinguishes "user exists, no
// wallets" from "user not found" and is not an error.
func (s *addressServiceImpl) Extract(ctx context.Context, identity *entity.Identity, profile *entity.Profile) *entity.CandidateSet {
	set := entity.NewCandidateSet()

	if profile != nil {
		set.AddAll(profile.VerifiedAddresses.EthAddresses)
		set.AddAll(profile.Verifications)
		set.Add(profile.CustodyAddress)
	}

	if identity != nil && identity.FID != nil {
		hubAddresses, err := s.hub.VerifiedAddresses(ctx, *identity.FID)
		if err != nil {
			s.logger.Debug("Hub verification fetch missed",
				zap.Uint64("fid", *identity.FID),
				zap.Error(err))
			metrics.UpstreamFailures.WithLabelValues("hub").Inc()
		} else {
			set.AddAll(hubAddresses)
		}
	}

	s.logger.Debug("Extracted wallet candidates", zap.Int("count", set.Len()))
	return set
}
