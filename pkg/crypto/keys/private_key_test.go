package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivateKey(t *testing.T) {
	for _, testCase := range wifTestCases {
		if !testCase.compressed || testCase.version != 0x80 {
			continue
		}
		privKey, err := NewPrivateKeyFromHex(testCase.privateKey)
		require.NoError(t, err)
		assert.Equal(t, testCase.wif, privKey.WIF())
		assert.Equal(t, testCase.privateKey, privKey.String())
	}

	_, err := NewPrivateKeyFromHex("zzzz")
	require.Error(t, err)
	_, err = NewPrivateKeyFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestPrivateKeyFromWIF(t *testing.T) {
	for _, testCase := range wifTestCases {
		if !testCase.compressed || testCase.version != 0x80 {
			continue
		}
		key, err := NewPrivateKeyFromWIF(testCase.wif)
		require.NoError(t, err)
		assert.Equal(t, testCase.privateKey, key.String())
	}
}

func TestSigning(t *testing.T) {
	// Taken from https://tools.ietf.org/html/rfc6979#page-33 (P-256, SHA-256,
	// message "sample").
	privateKey, err := NewPrivateKeyFromHex("C9AFA9D845BA75166B5C215767B1D6934E50C3DB36E89B127B8A622B120F6721")
	require.NoError(t, err)

	data := privateKey.Sign([]byte("sample"))

	r := "EFD48B2AACB6A8FD1140DD9CD45E81D69D2C877B56AAF991C34D0EA84EAF3716"
	s := "F7CB1C942D657C41D436C7A1B6E29F65F3E900DBB9AFF4064DC4AB2F843ACDA8"
	assert.Equal(t, strings.ToLower(r+s), hex.EncodeToString(data))

	// Deterministic signing yields the same signature.
	assert.Equal(t, data, privateKey.Sign([]byte("sample")))
}

func TestPrivateKeyDerivedEntities(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)
	pub := key.PublicKey()
	require.Equal(t, pub.GetScriptHash(), key.GetScriptHash())
	require.Equal(t, pub.Address(), key.Address())
}

func TestSecp256k1Key(t *testing.T) {
	key, err := NewSecp256k1PrivateKey()
	require.NoError(t, err)
	require.Equal(t, 32, len(key.Bytes()))
}

func TestDestroy(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)
	b := key.Bytes()
	key.Destroy()
	require.NotEqual(t, b, key.Bytes())
}
