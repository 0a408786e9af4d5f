package host

import (
	"crypto/sha256"
)

// deriveMarker domain-separates derived account identifiers from any other
// sha256 use on the host.
const deriveMarker = "ProgramDerivedAddress"

// DeriveConfigAccount derives the config account principal for a report from
// the 32-byte seed carried in the report context and the program identifier.
//
// The derivation only needs to be collision resistant and reproducible by the
// caller; it is the address the submitter must present alongside a report so
// the verifier can cross-check which configuration namespace the report was
// produced for.
func DeriveConfigAccount(seed []byte, program Principal) Principal {
	h := sha256.New()
	h.Write(seed)
	h.Write(program[:])
	h.Write([]byte(deriveMarker))
	var p Principal
	copy(p[:], h.Sum(nil))
	return p
}
