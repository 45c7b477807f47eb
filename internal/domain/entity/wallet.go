package entity

import "strings"

// WalletCandidate is a verified wallet address. Display keeps the upstream
// casing; comparisons are always case-insensitive.
type WalletCandidate struct {
	Address string `json:"address"`
}

// CandidateSet is an insertion-ordered set of wallet candidates with
// case-insensitive uniqueness.
type CandidateSet struct {
	candidates []WalletCandidate
	seen       map[string]struct{}
}

// NewCandidateSet creates an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

// Add appends the address unless an entry differing only by letter case is
// already present. Blank addresses are ignored.
func (s *CandidateSet) Add(address string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return
	}
	key := strings.ToLower(address)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.candidates = append(s.candidates, WalletCandidate{Address: address})
}

// AddAll appends every address in order, deduplicating as it goes.
func (s *CandidateSet) AddAll(addresses []string) {
	for _, a := range addresses {
		s.Add(a)
	}
}

// Candidates returns the members in insertion order.
func (s *CandidateSet) Candidates() []WalletCandidate {
	out := make([]WalletCandidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Len returns the number of distinct addresses in the set.
func (s *CandidateSet) Len() int {
	return len(s.candidates)
}

// WalletReport is the per-wallet slice of the final report.
type WalletReport struct {
	Address          string  `json:"address"`
	PrimaryTxCount   uint64  `json:"primary_tx_count"`
	SecondaryTxCount uint64  `json:"secondary_tx_count"`
	BalanceNative    float64 `json:"balance_native"`
	IsPrimary        bool    `json:"is_primary"`
}
