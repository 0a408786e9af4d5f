package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveConfigAccount(t *testing.T) {
	seed := make([]byte, 32)
	seed[0] = 0x09
	var program Principal
	program[31] = 1

	derived := DeriveConfigAccount(seed, program)
	assert.False(t, derived.IsZero())
	assert.Equal(t, derived, DeriveConfigAccount(seed, program))

	otherSeed := append([]byte(nil), seed...)
	otherSeed[31] ^= 1
	assert.NotEqual(t, derived, DeriveConfigAccount(otherSeed, program))

	var otherProgram Principal
	otherProgram[31] = 2
	assert.NotEqual(t, derived, DeriveConfigAccount(seed, otherProgram))
}

func TestAccountLifecycle(t *testing.T) {
	acc := &Account{}
	require.NoError(t, acc.Allocate(16))
	assert.Len(t, acc.Data, 16)

	assert.ErrorIs(t, acc.Allocate(16), ErrAccountExists)

	acc.Data[0] = 0xaa
	require.NoError(t, acc.Grow(64))
	assert.Len(t, acc.Data, 64)
	assert.Equal(t, byte(0xaa), acc.Data[0])
	assert.Equal(t, byte(0), acc.Data[63])

	assert.ErrorIs(t, acc.Grow(32), ErrAccountShrink)
	require.NoError(t, acc.Grow(64))
}

func TestPrincipalFromBytes(t *testing.T) {
	b := make([]byte, PrincipalSize)
	b[0] = 1
	p, ok := PrincipalFromBytes(b)
	require.True(t, ok)
	assert.Equal(t, byte(1), p[0])
	assert.False(t, p.IsZero())

	_, ok = PrincipalFromBytes(b[:31])
	assert.False(t, ok)

	assert.True(t, Principal{}.IsZero())
}
