package evm

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrRecover is returned when a signature does not yield a usable public key.
var ErrRecover = errors.New("signature recovery failed")

// RecoverSigner recovers the 20-byte signer address from an ECDSA signature
// over hash. r and s are the 32-byte signature components and v the recovery
// parity; values of v at or above 27 carry the legacy Ethereum offset and are
// normalized before recovery.
//
// The address is the last 20 bytes of the keccak256 of the uncompressed
// public key with its 0x04 prefix dropped.
func RecoverSigner(hash []byte, r, s []byte, v byte) (common.Address, error) {
	if len(r) != WordSize || len(s) != WordSize {
		return common.Address{}, ErrRecover
	}
	if v >= 27 {
		v -= 27
	}

	sig := make([]byte, crypto.SignatureLength)
	copy(sig[:32], r)
	copy(sig[32:64], s)
	sig[64] = v

	pubkey, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return common.Address{}, ErrRecover
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pubkey[1:])[12:])
	return addr, nil
}
