package entity

// Report failure reasons. A non-nil Error field on a report is authoritative
// regardless of the numeric fields next to it.
const (
	ErrUserNotFound = "User not found"
	ErrNoWallets    = "No verified wallets found"
)

// GasReport is the full pipeline result for one handle.
type GasReport struct {
	Username          string         `json:"username"`
	FID               *uint64        `json:"fid,omitempty"`
	DisplayName       *string        `json:"display_name,omitempty"`
	AvatarURL         *string        `json:"pfp_url,omitempty"`
	Wallets           []WalletReport `json:"wallets"`
	PrimaryWallet     *string        `json:"primary_wallet,omitempty"`
	TotalGasPrimary   float64        `json:"total_gas_primary"`
	TotalGasSecondary float64        `json:"total_gas_secondary"`
	TotalGasUSD       float64        `json:"total_gas_usd"`
	Error             *string        `json:"error,omitempty"`
}

// Success reports whether the pipeline completed without a stage failure.
func (r *GasReport) Success() bool {
	return r.Error == nil
}

// FailedReport builds the zero-valued report for a stage failure.
func FailedReport(username string, identity *Identity, reason string) GasReport {
	report := GasReport{
		Username: username,
		Wallets:  []WalletReport{},
		Error:    &reason,
	}
	if identity != nil {
		report.FID = identity.FID
		report.DisplayName = identity.DisplayName
		report.AvatarURL = identity.AvatarURL
	}
	return report
}

// QuickLookup is the latency-sensitive variant of GasReport: identity,
// primary wallet and wallet count only, no aggregation.
type QuickLookup struct {
	Username      string  `json:"username"`
	FID           *uint64 `json:"fid,omitempty"`
	DisplayName   *string `json:"display_name,omitempty"`
	AvatarURL     *string `json:"pfp_url,omitempty"`
	PrimaryWallet *string `json:"primary_wallet,omitempty"`
	WalletCount   int     `json:"wallet_count"`
	Error         *string `json:"error,omitempty"`
}

// Success reports whether the lookup resolved an identity.
func (q *QuickLookup) Success() bool {
	return q.Error == nil
}

// WalletList is the result of the wallets-only entry point.
type WalletList struct {
	Username      string         `json:"username"`
	FID           *uint64        `json:"fid,omitempty"`
	WalletCount   int            `json:"wallet_count"`
	PrimaryWallet *string        `json:"primary_wallet,omitempty"`
	Wallets       []WalletReport `json:"wallets"`
}
