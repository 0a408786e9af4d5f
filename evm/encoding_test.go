package evm

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireReportHex is a complete production-shaped report container: a two
// signature report over a 288 byte payload.
const wireReportHex = "000906f3cbb5a230ad230e8f693aecc4aa5ff7a5c63ecf67ec7201c8a237152c" +
	"000000000000000000000000000000000000000000000000000000000027018a" +
	"0000000000000000000000000000000000000000000000000000000100000001" +
	"00000000000000000000000000000000000000000000000000000000000000e0" +
	"0000000000000000000000000000000000000000000000000000000000000220" +
	"0000000000000000000000000000000000000000000000000000000000000280" +
	"0100000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000120" +
	"0003ab9412a454b0fb347d0c2c3062186f60640057203d5fb20982d7fb9c927f" +
	"0000000000000000000000000000000000000000000000000000000067aa7140" +
	"0000000000000000000000000000000000000000000000000000000067aa7140" +
	"0000000000000000000000000000000000000000000000000000221896f269e6" +
	"0000000000000000000000000000000000000000000000000012f260aec4d600" +
	"0000000000000000000000000000000000000000000000000000000067abc2c0" +
	"0000000000000000000000000000000000000000000000000de08c8d4fa030c8" +
	"0000000000000000000000000000000000000000000000000de065a57df39d20" +
	"0000000000000000000000000000000000000000000000000de0e2fe81975800" +
	"0000000000000000000000000000000000000000000000000000000000000002" +
	"f173d87393dd8a9dcb97847d1a9a0710e7e4216655477631523a2284e7672790" +
	"c758cd6413f08d730a3c96b3ede2aca6c9daa554f57b3221754aa579bcea7201" +
	"0000000000000000000000000000000000000000000000000000000000000002" +
	"6284f170f3e580bc532020b1f526b75d7012a632003da5d30f316434689e4995" +
	"09bb8dee47c9c92896e3b2350a74ffcdd564286fc250fe31df3043cfdc2951ef"

func wireReport(t *testing.T) []byte {
	t.Helper()
	data, err := hex.DecodeString(wireReportHex)
	require.NoError(t, err)
	return data
}

func TestParseSignedReport(t *testing.T) {
	data := wireReport(t)

	sr, err := ParseSignedReport(data)
	require.NoError(t, err)

	assert.Equal(t, data[0:32], sr.ReportContext[0])
	assert.Equal(t, data[32:64], sr.ReportContext[1])
	assert.Equal(t, data[64:96], sr.ReportContext[2])

	require.Len(t, sr.ReportData, 0x120)
	assert.Equal(t, data[7*WordSize+WordSize:7*WordSize+WordSize+0x120], sr.ReportData)

	require.Len(t, sr.Rs, 2)
	require.Len(t, sr.Ss, 2)
	for _, word := range append(append([][]byte{}, sr.Rs...), sr.Ss...) {
		assert.Len(t, word, WordSize)
	}
	assert.Equal(t, byte(0x01), sr.RawVs[0])
	assert.Equal(t, byte(0x00), sr.RawVs[1])

	// the views alias the input, no bytes were copied
	assert.Same(t, &data[0], &sr.ReportContext[0][0])
	assert.Same(t, &data[7*WordSize+WordSize], &sr.ReportData[0])
}

func TestParseSignedReportRejectsMalformed(t *testing.T) {
	valid := wireReport(t)

	corrupt := func(mutate func(data []byte) []byte) []byte {
		data := append([]byte(nil), valid...)
		return mutate(data)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"truncated static region", valid[:7*WordSize-1]},
		{"report offset past end", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[4*WordSize-8:], uint64(len(data)))
			return data
		})},
		{"rs offset past end", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[5*WordSize-8:], uint64(len(data))+1)
			return data
		})},
		{"offset wraps on header read", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[4*WordSize-8:], ^uint64(0)-8)
			return data
		})},
		{"report length overflows", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[0xe0+WordSize-8:], ^uint64(0)-16)
			return data
		})},
		{"report length past end", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[0xe0+WordSize-8:], uint64(len(data)))
			return data
		})},
		{"rs count overflows", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[0x220+WordSize-8:], ^uint64(0)/16)
			return data
		})},
		{"ss count past end", corrupt(func(data []byte) []byte {
			binary.BigEndian.PutUint64(data[0x280+WordSize-8:], 3)
			return data
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignedReport(tt.data)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestParseReportDetails(t *testing.T) {
	data := wireReport(t)
	sr, err := ParseSignedReport(data)
	require.NoError(t, err)

	report, err := ParseReportDetails(sr.ReportData)
	require.NoError(t, err)

	assert.Equal(t,
		"0003ab9412a454b0fb347d0c2c3062186f60640057203d5fb20982d7fb9c927f",
		hex.EncodeToString(report.FeedID))
	assert.Equal(t, uint32(0x67aa7140), report.ReportTimestamp)
}

func TestParseReportDetailsShortPayload(t *testing.T) {
	_, err := ParseReportDetails(make([]byte, reportTimestampEnd-1))
	assert.ErrorIs(t, err, ErrDecode)
}
