package port

import (
	"context"

	"gas_checker/internal/domain/entity"
)

// IdentityAPI is the social-graph identity provider (Neynar-shaped).
// Every method returns (nil, error) for "no usable result"; callers treat
// any error as a miss, not a fatal condition.
type IdentityAPI interface {
	// UserByUsername fetches the profile for an exact fname.
	UserByUsername(ctx context.Context, username string) (*entity.Profile, error)

	// UserByFID fetches the profile for a numeric identity.
	UserByFID(ctx context.Context, fid uint64) (*entity.Profile, error)

	// UserByAddress fetches the profile of the user who verified the given
	// wallet address.
	UserByAddress(ctx context.Context, address string) (*entity.Profile, error)

	// Configured reports whether an API credential is present.
	Configured() bool
}

// RegistryAPI is the fname registry, a name→FID directory distinct from the
// identity provider.
type RegistryAPI interface {
	FIDByName(ctx context.Context, name string) (uint64, error)
}

// NameResolver resolves ENS-style names to wallet addresses.
type NameResolver interface {
	ResolveName(ctx context.Context, name string) (string, error)
}

// VerificationHub serves cryptographic address verifications by FID. Only
// Ethereum-protocol verifications are returned.
type VerificationHub interface {
	VerifiedAddresses(ctx context.Context, fid uint64) ([]string, error)
}

// IdentityResolver turns a raw handle into a canonical identity plus the
// profile record the identity was built from.
type IdentityResolver interface {
	// Resolve tries each resolution source in order. A nil profile means no
	// source could resolve the handle.
	Resolve(ctx context.Context, handle string) (*entity.Identity, *entity.Profile)
}

// AddressExtractor collects the ordered, deduplicated set of verified wallet
// addresses for a resolved identity.
type AddressExtractor interface {
	Extract(ctx context.Context, identity *entity.Identity, profile *entity.Profile) *entity.CandidateSet
}
