// Package reporttest builds signed report blobs for tests: generated signer
// keys, report payload encoding, signature assembly and the container
// encoding the verifier decodes. The payload field values mirror the fixtures
// the original report verifier was validated against.
package reporttest

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Uranium-Digi/go-data-streams-verifier/evm"
)

// Signer is a report signing identity.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

// NewSigners generates n fresh signing identities.
func NewSigners(t *testing.T, n int) []Signer {
	t.Helper()
	signers := make([]Signer, n)
	for i := range signers {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		signers[i] = Signer{
			PrivateKey: key,
			Address:    crypto.PubkeyToAddress(key.PublicKey),
		}
	}
	return signers
}

// Addresses projects the signer addresses, in signer order.
func Addresses(signers []Signer) []common.Address {
	addrs := make([]common.Address, len(signers))
	for i, s := range signers {
		addrs[i] = s.Address
	}
	return addrs
}

// V3Report is the price report payload schema. All fields are ABI static
// types, so the encoding is one word per field in declaration order.
type V3Report struct {
	FeedID                [32]byte
	LowerTimestamp        uint32
	ObservationsTimestamp uint32
	NativeFee             *big.Int
	LinkFee               *big.Int
	ValidFromTimestamp    uint32
	BenchmarkPrice        *big.Int
	Bid                   *big.Int
	Ask                   *big.Int
}

// NewV3Report returns a payload with representative market values and the
// given observations timestamp. The observations timestamp is the one the
// verifier reads as the report timestamp (payload bytes 92..96).
func NewV3Report(observationsTimestamp uint32) V3Report {
	return V3Report{
		FeedID: [32]byte{
			0x00, 0x03, 0x0a, 0xb7, 0xd0, 0x2f, 0xbb, 0xa9, 0xc6, 0x30, 0x4f, 0x98, 0x82, 0x45, 0x24, 0x40,
			0x7b, 0x1f, 0x49, 0x47, 0x41, 0x17, 0x43, 0x20, 0xcf, 0xd1, 0x7a, 0x2c, 0x22, 0xee, 0xc1, 0xde,
		},
		LowerTimestamp:        1_727_467_477,
		ObservationsTimestamp: observationsTimestamp,
		NativeFee:             bigFromDec("118647852657900"),
		LinkFee:               bigFromDec("25234531311164200"),
		ValidFromTimestamp:    0,
		BenchmarkPrice:        bigFromDec("655442225238888900"),
		Bid:                   bigFromDec("655292586749804350"),
		Ask:                   bigFromDec("655615783467747900"),
	}
}

// Encode renders the payload as its ABI encoding.
func (r V3Report) Encode() []byte {
	out := make([]byte, 0, 9*evm.WordSize)
	out = appendFixedBytes(out, r.FeedID)
	out = appendUintWord(out, uint64(r.LowerTimestamp))
	out = appendUintWord(out, uint64(r.ObservationsTimestamp))
	out = appendBigWord(out, r.NativeFee)
	out = appendBigWord(out, r.LinkFee)
	out = appendUintWord(out, uint64(r.ValidFromTimestamp))
	out = appendBigWord(out, r.BenchmarkPrice)
	out = appendBigWord(out, r.Bid)
	out = appendBigWord(out, r.Ask)
	return out
}

// SignReport signs the report digest with every signer and returns the
// parallel signature component arrays plus the packed parity word.
func SignReport(t *testing.T, reportData []byte, context [3][32]byte, signers []Signer) (rs, ss [][32]byte, rawVs [32]byte) {
	t.Helper()
	require.LessOrEqual(t, len(signers), 32, "the parity word holds at most 32 signatures")

	digest := evm.ReportDigest(reportData, contextViews(context))
	for i, signer := range signers {
		sig, err := crypto.Sign(digest, signer.PrivateKey)
		require.NoError(t, err)
		var r, s [32]byte
		copy(r[:], sig[:32])
		copy(s[:], sig[32:64])
		rs = append(rs, r)
		ss = append(ss, s)
		rawVs[i] = sig[64]
	}
	return rs, ss, rawVs
}

// EncodeSignedReport assembles the container tuple
//
//	(bytes32[3] context, bytes report, bytes32[] rs, bytes32[] ss, bytes32 rawVs)
//
// in standard ABI form: a seven word static region followed by the three
// length-prefixed dynamic sections.
func EncodeSignedReport(reportData []byte, context [3][32]byte, rs, ss [][32]byte, rawVs [32]byte) []byte {
	reportSection := evm.WordSize + padded(len(reportData))
	rsSection := evm.WordSize * (1 + len(rs))

	reportOffset := 7 * evm.WordSize
	rsOffset := reportOffset + reportSection
	ssOffset := rsOffset + rsSection

	out := make([]byte, 0, ssOffset+evm.WordSize*(1+len(ss)))
	for _, word := range context {
		out = appendFixedBytes(out, word)
	}
	out = appendUintWord(out, uint64(reportOffset))
	out = appendUintWord(out, uint64(rsOffset))
	out = appendUintWord(out, uint64(ssOffset))
	out = appendFixedBytes(out, rawVs)

	out = appendUintWord(out, uint64(len(reportData)))
	out = append(out, reportData...)
	out = append(out, make([]byte, padded(len(reportData))-len(reportData))...)

	out = appendUintWord(out, uint64(len(rs)))
	for _, r := range rs {
		out = appendFixedBytes(out, r)
	}
	out = appendUintWord(out, uint64(len(ss)))
	for _, s := range ss {
		out = appendFixedBytes(out, s)
	}
	return out
}

// BuildSignedReport signs reportData and returns the complete, uncompressed
// container blob.
func BuildSignedReport(t *testing.T, reportData []byte, context [3][32]byte, signers []Signer) []byte {
	t.Helper()
	rs, ss, rawVs := SignReport(t, reportData, context, signers)
	return EncodeSignedReport(reportData, context, rs, ss, rawVs)
}

func contextViews(context [3][32]byte) [3][]byte {
	return [3][]byte{context[0][:], context[1][:], context[2][:]}
}

func padded(n int) int {
	return (n + evm.WordSize - 1) / evm.WordSize * evm.WordSize
}

func appendFixedBytes(out []byte, word [32]byte) []byte {
	return append(out, word[:]...)
}

func appendUintWord(out []byte, v uint64) []byte {
	var word [evm.WordSize]byte
	word[24] = byte(v >> 56)
	word[25] = byte(v >> 48)
	word[26] = byte(v >> 40)
	word[27] = byte(v >> 32)
	word[28] = byte(v >> 24)
	word[29] = byte(v >> 16)
	word[30] = byte(v >> 8)
	word[31] = byte(v)
	return append(out, word[:]...)
}

func appendBigWord(out []byte, v *big.Int) []byte {
	var word [evm.WordSize]byte
	v.FillBytes(word[:])
	return append(out, word[:]...)
}

func bigFromDec(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("reporttest: bad decimal literal " + s)
	}
	return v
}
