package keys

import (
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hashableItem util.Uint256

func (h hashableItem) Hash() util.Uint256 {
	return util.Uint256(h)
}

func TestPubKeyVerify(t *testing.T) {
	var data = []byte("sample")
	signedData := hash.Sha256(data)

	privKey, err := NewPrivateKey()
	require.NoError(t, err)
	signature := privKey.SignHash(signedData)
	pubKey := privKey.PublicKey()
	result := pubKey.Verify(signature, signedData.BytesBE())
	assert.True(t, result)

	pubKey = &PublicKey{}
	assert.False(t, pubKey.Verify(signature, signedData.BytesBE()))
}

func TestWrongPubKey(t *testing.T) {
	sample := []byte("sample")
	hashed := hash.Sha256(sample)
	privKey, _ := NewPrivateKey()
	signature := privKey.SignHash(hashed)

	secondPrivKey, _ := NewPrivateKey()
	wrongPubKey := secondPrivKey.PublicKey()

	actual := wrongPubKey.Verify(signature, hashed.BytesBE())
	assert.False(t, actual)
}

func TestSignHashable(t *testing.T) {
	var (
		net  uint32 = 42
		item        = hashableItem{0x01, 0x02, 0x03}
	)
	privKey, err := NewPrivateKey()
	require.NoError(t, err)
	pubKey := privKey.PublicKey()

	signature := privKey.SignHashable(net, item)
	require.True(t, pubKey.VerifyHashable(signature, net, item))
	// Different network magic invalidates the signature.
	require.False(t, pubKey.VerifyHashable(signature, net+1, item))
	// Truncated signatures are rejected.
	require.False(t, pubKey.VerifyHashable(signature[:40], net, item))
}
