package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/pkg/metrics"
)

// NormalizeHandle canonicalizes user input: trimmed, lowercased, with any
// leading @ stripped.
func NormalizeHandle(handle string) string {
	handle = strings.ToLower(strings.TrimSpace(handle))
	return strings.TrimPrefix(handle, "@")
}

// resolutionStrategy is one upstream source able to turn a handle into a
// profile. Strategies are tried in order; any failure is a miss, never a
// fatal error, and each source is attempted at most once per resolution.
type resolutionStrategy struct {
	name    string
	applies func(handle string) bool
	resolve func(ctx context.Context, handle string) (*entity.Profile, error)
}

// identityServiceImpl implements port.IdentityResolver as an ordered
// strategy list, so new sources append without touching existing ones.
type identityServiceImpl struct {
	strategies []resolutionStrategy
	logger     *zap.Logger
}

// NewIdentityService creates the resolver with the standard source order:
// direct profile lookup, fname registry, then ENS for .eth handles.
func NewIdentityService(
	identityAPI port.IdentityAPI,
	registry port.RegistryAPI,
	names port.NameResolver,
	logger *zap.Logger,
) port.IdentityResolver {
	s := &identityServiceImpl{logger: logger.Named("IdentityService")}

	s.strategies = []resolutionStrategy{
		{
			name: "profile_by_username",
			resolve: func(ctx context.Context, handle string) (*entity.Profile, error) {
				return identityAPI.UserByUsername(ctx, handle)
			},
		},
		{
			name: "registry_fid",
			resolve: func(ctx context.Context, handle string) (*entity.Profile, error) {
				fid, err := registry.FIDByName(ctx, handle)
				if err != nil {
					return nil, err
				}
				return identityAPI.UserByFID(ctx, fid)
			},
		},
		{
			name: "ens_address",
			applies: func(handle string) bool {
				return strings.HasSuffix(handle, ".eth")
			},
			resolve: func(ctx context.Context, handle string) (*entity.Profile, error) {
				address, err := names.ResolveName(ctx, handle)
				if err != nil {
					return nil, err
				}
				partial, err := identityAPI.UserByAddress(ctx, address)
				if err != nil {
					return nil, err
				}
				// The bulk-by-address record can be partial; refetch the
				// full profile by FID before extraction.
				return identityAPI.UserByFID(ctx, partial.FID)
			},
		},
	}

	return s
}

// Resolve tries each applicable source in order; first success wins, no
// merging across sources.
func (s *identityServiceImpl) Resolve(ctx context.Context, handle string) (*entity.Identity, *entity.Profile) {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return nil, nil
	}

	for _, strategy := range s.strategies {
		if strategy.applies != nil && !strategy.applies(handle) {
			continue
		}

		profile, err := strategy.resolve(ctx, handle)
		if err != nil {
			s.logger.Debug("Resolution source missed",
				zap.String("handle", handle),
				zap.String("source", strategy.name),
				zap.Error(err))
			metrics.UpstreamFailures.WithLabelValues("identity").Inc()
			continue
		}
		if profile == nil {
			continue
		}

		s.logger.Debug("Handle resolved",
			zap.String("handle", handle),
			zap.String("source", strategy.name),
			zap.Uint64("fid", profile.FID))
		identity := entity.IdentityFromProfile(handle, profile)
		return &identity, profile
	}

	s.logger.Info("Handle not resolvable by any source", zap.String("handle", handle))
	return nil, nil
}
