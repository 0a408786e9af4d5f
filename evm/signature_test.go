package evm

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverSignerRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	context := [3][]byte{make([]byte, 32), make([]byte, 32), make([]byte, 32)}
	digest := ReportDigest([]byte("report payload"), context)
	require.Len(t, digest, 32)

	sig, err := crypto.Sign(digest, key)
	require.NoError(t, err)

	got, err := RecoverSigner(digest, sig[:32], sig[32:64], sig[64])
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// the legacy ethereum parity offset is normalized away
	got, err = RecoverSigner(digest, sig[:32], sig[32:64], sig[64]+27)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecoverSignerRejectsGarbage(t *testing.T) {
	digest := make([]byte, 32)
	word := make([]byte, 32)

	_, err := RecoverSigner(digest, word, word, 0)
	assert.ErrorIs(t, err, ErrRecover)

	_, err = RecoverSigner(digest, word[:31], word, 0)
	assert.ErrorIs(t, err, ErrRecover)

	key, _ := crypto.GenerateKey()
	sig, err := crypto.Sign(digest, key)
	require.NoError(t, err)
	// recovery parity outside {0,1} (and not a legacy offset) cannot recover
	_, err = RecoverSigner(digest, sig[:32], sig[32:64], 9)
	assert.ErrorIs(t, err, ErrRecover)
}

func TestReportDigestDomainSeparation(t *testing.T) {
	context := [3][]byte{make([]byte, 32), make([]byte, 32), make([]byte, 32)}
	other := [3][]byte{make([]byte, 32), make([]byte, 32), make([]byte, 32)}
	other[0][0] = 1

	payload := []byte("report payload")
	assert.NotEqual(t, ReportDigest(payload, context), ReportDigest(payload, other))
	assert.NotEqual(t, ReportDigest(payload, context), ReportDigest([]byte("other payload"), context))
	assert.Equal(t, ReportDigest(payload, context), ReportDigest(payload, context))
}
