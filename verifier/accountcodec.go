package verifier

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Uranium-Digi/go-data-streams-verifier/evm"
	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// The account state is stored as a single fixed-layout record so that the
// host can reserve its space up front; capacity is encoded in the layout,
// occupancy in the length counters. All integers are big endian.
//
//	header    | version | reserved | owner | proposed_owner | access_controller |
//	bytes     |    1    |    7     |  32   |       32       |        32         |
//
//	configs   | len | reserved | MaxConfigs x config |
//	bytes     |  2  |    6     |                     |
//
//	config    | activation_time | don_config_id | f | is_active | reserved | signers |
//	bytes     |        4        |      24       | 1 |     1     |    2     |   621   |
//
//	signers   | len | MaxOracles x 20-byte address |
//	bytes     |  1  |             620              |
const (
	accountVersionFirstByte = 0
	// 7 reserved bytes follow the version
	accountOwnerFirstByte            = 8
	accountProposedOwnerFirstByte    = accountOwnerFirstByte + host.PrincipalSize
	accountAccessControllerFirstByte = accountProposedOwnerFirstByte + host.PrincipalSize
	accountHeaderEnd                 = accountAccessControllerFirstByte + host.PrincipalSize

	configsLenFirstByte = accountHeaderEnd
	// 6 reserved bytes follow the config count
	configsFirstByte = configsLenFirstByte + 8

	signersSize = 1 + MaxOracles*common.AddressLength
	configSize  = 4 + evm.DonConfigIDSize + 1 + 1 + 2 + signersSize

	// AccountDataSize is the constant serialized size of a VerifierAccount.
	AccountDataSize = configsFirstByte + MaxConfigs*configSize
)

// MarshalBinary encodes the account state into its fixed layout.
func (a *VerifierAccount) MarshalBinary() ([]byte, error) {
	data := make([]byte, AccountDataSize)
	data[accountVersionFirstByte] = a.Version
	copy(data[accountOwnerFirstByte:], a.Config.Owner[:])
	copy(data[accountProposedOwnerFirstByte:], a.Config.ProposedOwner[:])
	copy(data[accountAccessControllerFirstByte:], a.Config.AccessController[:])

	binary.BigEndian.PutUint16(data[configsLenFirstByte:], a.DonConfigs.Len)
	for i := uint16(0); i < a.DonConfigs.Len; i++ {
		marshalConfig(data[configsFirstByte+int(i)*configSize:], &a.DonConfigs.Configs[i])
	}
	return data, nil
}

// UnmarshalBinary decodes the account state. data must be at least
// AccountDataSize; a freshly allocated zero-filled account decodes to the
// version 0 zero state.
func (a *VerifierAccount) UnmarshalBinary(data []byte) error {
	if len(data) < AccountDataSize {
		return host.ErrAccountTooSmall
	}
	a.Version = data[accountVersionFirstByte]
	copy(a.Config.Owner[:], data[accountOwnerFirstByte:])
	copy(a.Config.ProposedOwner[:], data[accountProposedOwnerFirstByte:])
	copy(a.Config.AccessController[:], data[accountAccessControllerFirstByte:])

	a.DonConfigs = DonConfigs{}
	count := binary.BigEndian.Uint16(data[configsLenFirstByte:])
	if count > MaxConfigs {
		return ErrInvalidInputs
	}
	a.DonConfigs.Len = count
	for i := uint16(0); i < count; i++ {
		unmarshalConfig(data[configsFirstByte+int(i)*configSize:], &a.DonConfigs.Configs[i])
	}
	return nil
}

func marshalConfig(data []byte, c *DonConfig) {
	binary.BigEndian.PutUint32(data[0:], c.ActivationTime)
	copy(data[4:], c.DonConfigID[:])
	data[28] = c.F
	if c.IsActive {
		data[29] = 1
	}
	data[32] = c.Signers.Len
	for i := uint8(0); i < c.Signers.Len; i++ {
		copy(data[33+int(i)*common.AddressLength:], c.Signers.Keys[i][:])
	}
}

func unmarshalConfig(data []byte, c *DonConfig) {
	*c = DonConfig{}
	c.ActivationTime = binary.BigEndian.Uint32(data[0:])
	copy(c.DonConfigID[:], data[4:])
	c.F = data[28]
	c.IsActive = data[29] != 0
	n := data[32]
	if n > MaxOracles {
		n = MaxOracles
	}
	c.Signers.Len = n
	for i := uint8(0); i < n; i++ {
		copy(c.Signers.Keys[i][:], data[33+int(i)*common.AddressLength:])
	}
}
