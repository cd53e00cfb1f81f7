package hash

import (
	"encoding/hex"
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha256(t *testing.T) {
	input := []byte("hello")
	data := Sha256(input)

	expected := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	actual := hex.EncodeToString(data.BytesBE())

	assert.Equal(t, expected, actual)
}

func TestSha256Empty(t *testing.T) {
	data := Sha256([]byte{})
	expected := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	assert.Equal(t, expected, hex.EncodeToString(data.BytesBE()))
}

func TestHashDoubleSha256(t *testing.T) {
	input := []byte("hello")
	data := DoubleSha256(input)

	firstSha := Sha256(input)
	doubleSha := Sha256(firstSha.BytesBE())
	expected := hex.EncodeToString(doubleSha.BytesBE())

	actual := hex.EncodeToString(data.BytesBE())
	assert.Equal(t, expected, actual)
}

func TestRipeMD160(t *testing.T) {
	input := []byte("hello")
	data := RipeMD160(input)

	expected := "108f07b8382412612c048d07d13f814118445acd"
	actual := hex.EncodeToString(data.BytesBE())
	assert.Equal(t, expected, actual)
}

func TestHash160(t *testing.T) {
	// hash160 of the empty input, a well-known vector.
	data := Hash160([]byte{})

	expected := "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb"
	actual := hex.EncodeToString(data.BytesBE())
	assert.Equal(t, expected, actual)
}

func TestChecksum(t *testing.T) {
	sum := Checksum([]byte("hello"))
	require.Equal(t, 4, len(sum))
	h := DoubleSha256([]byte("hello"))
	require.Equal(t, h.BytesBE()[:4], sum)
}

type fixedHashable util.Uint256

func (f fixedHashable) Hash() util.Uint256 {
	return util.Uint256(f)
}

func TestNetSha256(t *testing.T) {
	var hh fixedHashable
	hh[0] = 42

	h1 := NetSha256(0x334f454e, hh)
	h2 := NetSha256(0x3554334e, hh)
	require.NotEqual(t, h1, h2)
	require.Equal(t, h1, NetSha256(0x334f454e, hh))
}
