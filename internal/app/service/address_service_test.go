package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"gas_checker/internal/domain/entity"
)

type stubHub struct {
	addresses map[uint64][]string
	err       error
	calls     int
}

func (h *stubHub) VerifiedAddresses(_ context.Context, fid uint64) ([]string, error) {
	h.calls++
	if h.err != nil {
		return nil, h.err
	}
	return h.addresses[fid], nil
}

func uintPtr(v uint64) *uint64 { return &v }

func TestExtractDeduplicatesAcrossSources(t *testing.T) {
	extractor := NewAddressService(&stubHub{}, zap.NewNop())

	profile := &entity.Profile{
		VerifiedAddresses: entity.VerifiedAddressList{
			EthAddresses: []string{"0xAbcDef0000000000000000000000000000000001", "0xDEF0000000000000000000000000000000000002"},
		},
		Verifications:  []string{"0xabcdef0000000000000000000000000000000001"},
		CustodyAddress: "0x1230000000000000000000000000000000000003",
	}
	identity := &entity.Identity{Username: "alice"}

	set := extractor.Extract(context.Background(), identity, profile)

	assert.Equal(t, 3, set.Len())
	got := set.Candidates()
	assert.Equal(t, "0xAbcDef0000000000000000000000000000000001", got[0].Address)
	assert.Equal(t, "0xDEF0000000000000000000000000000000000002", got[1].Address)
	assert.Equal(t, "0x1230000000000000000000000000000000000003", got[2].Address)
}

func TestExtractMergesHubWhenFIDKnown(t *testing.T) {
	hub := &stubHub{addresses: map[uint64][]string{
		42: {"0xAAA0000000000000000000000000000000000001", "0xBBB0000000000000000000000000000000000002"},
	}}
	extractor := NewAddressService(hub, zap.NewNop())

	profile := &entity.Profile{
		FID: 42,
		VerifiedAddresses: entity.VerifiedAddressList{
			EthAddresses: []string{"0xaaa0000000000000000000000000000000000001"},
		},
	}
	identity := &entity.Identity{Username: "alice", FID: uintPtr(42)}

	set := extractor.Extract(context.Background(), identity, profile)

	assert.Equal(t, 1, hub.calls)
	assert.Equal(t, 2, set.Len())
	got := set.Candidates()
	assert.Equal(t, "0xaaa0000000000000000000000000000000000001", got[0].Address)
	assert.Equal(t, "0xBBB0000000000000000000000000000000000002", got[1].Address)
}

func TestExtractSkipsHubWithoutFID(t *testing.T) {
	hub := &stubHub{}
	extractor := NewAddressService(hub, zap.NewNop())

	identity := &entity.Identity{Username: "alice"}
	set := extractor.Extract(context.Background(), identity, &entity.Profile{})

	assert.Zero(t, hub.calls)
	assert.Zero(t, set.Len())
}

func TestExtractHubFailureIsNotFatal(t *testing.T) {
	hub := &stubHub{err: errors.New("hub unavailable")}
	extractor := NewAddressService(hub, zap.NewNop())

	profile := &entity.Profile{
		FID:            7,
		CustodyAddress: "0x1230000000000000000000000000000000000003",
	}
	identity := &entity.Identity{Username: "alice", FID: uintPtr(7)}

	set := extractor.Extract(context.Background(), identity, profile)

	assert.Equal(t, 1, set.Len())
}

func TestExtractEmptyProfile(t *testing.T) {
	extractor := NewAddressService(&stubHub{}, zap.NewNop())

	set := extractor.Extract(context.Background(), nil, nil)

	assert.Zero(t, set.Len())
}
