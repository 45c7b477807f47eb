package entity

// Identity is the canonical resolved form of a Farcaster handle.
// Absent fields stay nil; they are never collapsed to empty strings.
type Identity struct {
	Username    string  `json:"username"`
	FID         *uint64 `json:"fid,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"pfp_url,omitempty"`
}

// VerifiedAddressList mirrors the identity provider's structured
// verified-address block.
type VerifiedAddressList struct {
	EthAddresses []string `json:"eth_addresses"`
	SolAddresses []string `json:"sol_addresses"`
}

// Profile is the raw user record returned by the identity provider.
// It is the input to address extraction and is never mutated.
type Profile struct {
	FID               uint64              `json:"fid"`
	Username          string              `json:"username"`
	DisplayName       string              `json:"display_name"`
	PfpURL            string              `json:"pfp_url"`
	CustodyAddress    string              `json:"custody_address"`
	VerifiedAddresses VerifiedAddressList `json:"verified_addresses"`
	Verifications     []string            `json:"verifications"`
}

// IdentityFromProfile builds an Identity for a normalized handle from a
// provider profile record.
func IdentityFromProfile(handle string, p *Profile) Identity {
	id := Identity{Username: handle}
	if p == nil {
		return id
	}
	if p.FID != 0 {
		fid := p.FID
		id.FID = &fid
	}
	if p.DisplayName != "" {
		name := p.DisplayName
		id.DisplayName = &name
	}
	if p.PfpURL != "" {
		url := p.PfpURL
		id.AvatarURL = &url
	}
	return id
}
