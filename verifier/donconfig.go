package verifier

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Uranium-Digi/go-data-streams-verifier/evm"
)

const (
	// MaxOracles bounds the signer set of a single DON config.
	MaxOracles = 31
	// MaxConfigs bounds the config history. Must be a power of two.
	MaxConfigs = 256
)

// SigningKeys is the fixed-capacity signer set of a DON config. Stored sets
// are sorted ascending, duplicate free and zero free; Push enforces none of
// that, the registry mutation path does.
type SigningKeys struct {
	Len  uint8
	Keys [MaxOracles]common.Address
}

func (s *SigningKeys) Push(addr common.Address) {
	s.Keys[s.Len] = addr
	s.Len++
}

// Slice is a view over the populated prefix.
func (s *SigningKeys) Slice() []common.Address {
	return s.Keys[:s.Len]
}

// Contains reports membership of addr. Linear: the capacity bound keeps the
// worst case trivially inside any host compute ceiling.
func (s *SigningKeys) Contains(addr common.Address) bool {
	for i := uint8(0); i < s.Len; i++ {
		if s.Keys[i] == addr {
			return true
		}
	}
	return false
}

// DonConfig is one snapshot of the authorized signer set.
type DonConfig struct {
	// ActivationTime is unix seconds; strictly increasing across the
	// registry insertion order.
	ActivationTime uint32
	DonConfigID    evm.DonConfigID
	// F is the fault tolerance bound; a valid report needs strictly more
	// than F distinct recovered signers.
	F        uint8
	IsActive bool
	Signers  SigningKeys
}

// DonConfigs is the ordered config history: a fixed-capacity array plus a
// length counter, so the serialized state has a statically known maximum
// size. Append only, except for popping the tail and toggling IsActive.
type DonConfigs struct {
	Len     uint16
	Configs [MaxConfigs]DonConfig
}

func (d *DonConfigs) Push(c DonConfig) {
	d.Configs[d.Len] = c
	d.Len++
}

// Pop removes and returns the tail config. ok is false on an empty history.
func (d *DonConfigs) Pop() (DonConfig, bool) {
	if d.Len == 0 {
		return DonConfig{}, false
	}
	d.Len--
	c := d.Configs[d.Len]
	d.Configs[d.Len] = DonConfig{}
	return c, true
}

// Last returns the most recently appended config, or nil.
func (d *DonConfigs) Last() *DonConfig {
	if d.Len == 0 {
		return nil
	}
	return &d.Configs[d.Len-1]
}

// At returns the config at index, or nil when index is out of bounds.
func (d *DonConfigs) At(index uint64) *DonConfig {
	if index >= uint64(d.Len) {
		return nil
	}
	return &d.Configs[index]
}

// FindByTimestamp selects the config governing a report produced at ts: the
// first config, scanning newest to oldest, whose activation time is at or
// before ts. Because activation times are strictly increasing this is the
// config with the largest activation time not after ts. The scan does not
// skip inactive entries; selection is by time alone and the activity of the
// selected config is judged afterwards, so re-activating an older config can
// never change which config serves a timestamp.
func (d *DonConfigs) FindByTimestamp(ts uint32) *DonConfig {
	for i := int(d.Len) - 1; i >= 0; i-- {
		if d.Configs[i].ActivationTime <= ts {
			return &d.Configs[i]
		}
	}
	return nil
}
