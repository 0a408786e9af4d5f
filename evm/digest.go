package evm

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// ReportDigest computes the domain-separated digest the report signatures
// commit to:
//
//	keccak256(keccak256(reportData) || context[0] || context[1] || context[2])
//
// There are no length prefixes and no domain tag beyond the inner hash; the
// output is bit compatible with the source chain contract.
func ReportDigest(reportData []byte, reportContext [3][]byte) []byte {
	inner := crypto.Keccak256(reportData)
	return crypto.Keccak256(inner, reportContext[0], reportContext[1], reportContext[2])
}
