package evm

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DonConfigIDSize is the width of a DON config identifier in bytes.
const DonConfigIDSize = 24

// DonConfigID deterministically identifies a (sorted signer set, f) pair.
type DonConfigID [DonConfigIDSize]byte

// String renders the id the way it appears in events: lowercase hex with no
// prefix.
func (id DonConfigID) String() string {
	return hex.EncodeToString(id[:])
}

// EncodeDonConfigID produces the abi.encodePacked form of (signers, f): each
// signer left padded to a full word, then f as a single trailing byte.
// signers must already be sorted; the encoding is order sensitive.
func EncodeDonConfigID(signers []common.Address, f uint8) []byte {
	encoded := make([]byte, 0, len(signers)*WordSize+1)
	var padding [WordSize - common.AddressLength]byte
	for _, signer := range signers {
		encoded = append(encoded, padding[:]...)
		encoded = append(encoded, signer[:]...)
	}
	return append(encoded, f)
}

// ComputeDonConfigID returns the config id for the packed encoding: the first
// 24 bytes of its keccak256, for consistency with the source chain contract.
func ComputeDonConfigID(encoded []byte) DonConfigID {
	var id DonConfigID
	copy(id[:], crypto.Keccak256(encoded))
	return id
}
