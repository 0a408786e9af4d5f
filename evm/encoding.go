// Package evm implements the word-granular codecs shared with the source
// chain verifier contract: the signed report container format, the packed
// DON config identifier, the report digest, and ECDSA signer recovery.
//
// All multi-byte integers are big endian and all layouts are expressed in
// 32-byte EVM words. Decoding is zero copy: the returned structures hold
// views into the caller's buffer and must not outlive it.
package evm

import (
	"encoding/binary"
	"errors"
)

// WordSize is the EVM word size in bytes.
const WordSize = 32

// ErrDecode is returned for any structural defect in an encoded report. It is
// deliberately cause free; the verify surface folds it into its single coarse
// verification failure.
var ErrDecode = errors.New("malformed report encoding")

// SignedReport is the decoded form of the report container tuple
//
//	(bytes32[3] context, bytes report, bytes32[] rs, bytes32[] ss, bytes32 rawVs)
//
// Every field aliases the decode input buffer.
type SignedReport struct {
	// ReportContext is three 32-byte words. The verifier treats them as
	// opaque except for ReportContext[0], which seeds the derived config
	// account identifier.
	ReportContext [3][]byte
	// ReportData is the raw report payload, returned verbatim from a
	// successful verification.
	ReportData []byte
	// Rs and Ss are the parallel 32-byte signature component arrays.
	Rs [][]byte
	Ss [][]byte
	// RawVs is a 32-byte word; RawVs[i] is the recovery parity for the
	// i-th signature.
	RawVs []byte
}

// Report carries the fields the verifier reads out of the report payload.
type Report struct {
	// FeedID is the 32-byte feed identifier at offset 0 of the payload.
	FeedID []byte
	// ReportTimestamp selects the DON config the report is judged against.
	ReportTimestamp uint32
}

// Signed report static region layout, in words:
//
//	.     | context | reportOff | rsOff | ssOff | rawVs |
//	word  | 0     2 |     3     |   4   |   5   |   6   |
//
// followed by the three dynamic sections, each a 32-byte length prefix and
// then length bytes (report) or length 32-byte elements (rs, ss).
const (
	contextWords     = 3
	staticWords      = 7
	staticSize       = staticWords * WordSize
	reportOffsetWord = 3
	rsOffsetWord     = 4
	ssOffsetWord     = 5
	rawVsWord        = 6
)

// Report payload layout, the two fields the verifier consumes:
const (
	feedIDEnd            = WordSize
	reportTimestampStart = 92
	reportTimestampEnd   = 96
)

// ParseSignedReport decodes the report container without copying. The views
// in the result are valid only while data is.
func ParseSignedReport(data []byte) (SignedReport, error) {
	if len(data) < staticSize {
		return SignedReport{}, ErrDecode
	}

	var sr SignedReport
	for i := range contextWords {
		sr.ReportContext[i] = data[i*WordSize : (i+1)*WordSize]
	}
	sr.RawVs = data[rawVsWord*WordSize : (rawVsWord+1)*WordSize]

	reportOffset := readWordAsOffset(data, reportOffsetWord)
	rsOffset := readWordAsOffset(data, rsOffsetWord)
	ssOffset := readWordAsOffset(data, ssOffsetWord)

	var err error
	if sr.ReportData, err = readBytes(data, reportOffset); err != nil {
		return SignedReport{}, err
	}
	if sr.Rs, err = readWordArray(data, rsOffset); err != nil {
		return SignedReport{}, err
	}
	if sr.Ss, err = readWordArray(data, ssOffset); err != nil {
		return SignedReport{}, err
	}
	return sr, nil
}

// ParseReportDetails extracts the feed id and the report timestamp from the
// report payload. The feed id aliases reportData.
func ParseReportDetails(reportData []byte) (Report, error) {
	if len(reportData) < reportTimestampEnd {
		return Report{}, ErrDecode
	}
	return Report{
		FeedID:          reportData[:feedIDEnd],
		ReportTimestamp: binary.BigEndian.Uint32(reportData[reportTimestampStart:reportTimestampEnd]),
	}, nil
}

// readWordAsOffset reads the offset stored in the given static word. Only the
// low 8 bytes of the word are consulted; a high-bit set in them is rejected
// later by the checked bounds arithmetic, and the upper 24 bytes never
// contribute, so an adversarial u256 offset cannot wrap.
func readWordAsOffset(data []byte, word int) uint64 {
	end := (word + 1) * WordSize
	return binary.BigEndian.Uint64(data[end-8 : end])
}

// readBytes decodes a length-prefixed byte section at offset.
func readBytes(data []byte, offset uint64) ([]byte, error) {
	start, length, err := readSectionHeader(data, offset)
	if err != nil {
		return nil, err
	}
	end := start + length
	if end < start || end > uint64(len(data)) {
		return nil, ErrDecode
	}
	return data[start:end], nil
}

// readWordArray decodes a length-prefixed bytes32[] section at offset. Each
// element is a 32-byte view into data.
func readWordArray(data []byte, offset uint64) ([][]byte, error) {
	start, count, err := readSectionHeader(data, offset)
	if err != nil {
		return nil, err
	}
	size := count * WordSize
	if count != 0 && size/count != WordSize {
		return nil, ErrDecode
	}
	end := start + size
	if end < start || end > uint64(len(data)) {
		return nil, ErrDecode
	}
	section := data[start:end]
	words := make([][]byte, count)
	for i := range words {
		words[i] = section[uint64(i)*WordSize : uint64(i+1)*WordSize]
	}
	return words, nil
}

// readSectionHeader validates a dynamic section offset and returns the start
// of the section body and the decoded length prefix.
func readSectionHeader(data []byte, offset uint64) (uint64, uint64, error) {
	headerEnd := offset + WordSize
	if headerEnd < offset || headerEnd > uint64(len(data)) {
		return 0, 0, ErrDecode
	}
	length := binary.BigEndian.Uint64(data[headerEnd-8 : headerEnd])
	return headerEnd, length, nil
}
