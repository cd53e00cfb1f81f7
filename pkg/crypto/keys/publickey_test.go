package keys

import (
	"encoding/hex"
	"encoding/json"
	"sort"
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeInfinity(t *testing.T) {
	key := &PublicKey{}
	b, err := testserdesEncDec(key, new(PublicKey))
	require.NoError(t, err)
	require.Equal(t, 1, len(b))

	keyDecode := &PublicKey{}
	require.NoError(t, keyDecode.DecodeBytes(b))
	require.Equal(t, []byte{0x00}, keyDecode.Bytes())
}

func testserdesEncDec(key *PublicKey, out *PublicKey) ([]byte, error) {
	buf := io.NewBufBinWriter()
	key.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil, buf.Err
	}
	b := buf.Bytes()
	r := io.NewBinReaderFromBuf(b)
	out.DecodeBinary(r)
	return b, r.Err
}

func TestEncodeDecodePublicKey(t *testing.T) {
	for i := 0; i < 4; i++ {
		k, err := NewPrivateKey()
		require.NoError(t, err)
		p := k.PublicKey()
		var pDecode = new(PublicKey)
		_, err = testserdesEncDec(p, pDecode)
		require.NoError(t, err)
		require.Equal(t, p.X, pDecode.X)
		require.Equal(t, p.Y, pDecode.Y)
		require.True(t, p.Equal(pDecode))

		// Uncompressed form decodes to the same point.
		pUncompr, err := NewPublicKeyFromBytes(p.UncompressedBytes())
		require.NoError(t, err)
		require.True(t, p.Equal(pUncompr))
	}

	errCases := [][]byte{{}, {0x02}, {0x04}, {0x02, 0xff, 0xff}}
	for _, tc := range errCases {
		require.Error(t, new(PublicKey).DecodeBytes(tc))
	}
}

func TestNewPublicKeyFromBytes(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)

	b := priv.PublicKey().Bytes()
	pub, err := NewPublicKeyFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, priv.PublicKey(), pub)
	// Extra data.
	b = append(b, 0x01)
	_, err = NewPublicKeyFromBytes(b)
	require.Error(t, err)
}

func TestDecodeFromString(t *testing.T) {
	str := "03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	pubKey, err := NewPublicKeyFromString(str)
	require.NoError(t, err)
	require.Equal(t, str, hex.EncodeToString(pubKey.Bytes()))

	_, err = NewPublicKeyFromString(str[2:])
	require.Error(t, err)

	str = "zzb209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	_, err = NewPublicKeyFromString(str)
	require.Error(t, err)
}

func TestPubkeyToAddress(t *testing.T) {
	k, err := NewPrivateKey()
	require.NoError(t, err)
	p := k.PublicKey()
	// Addresses always use the 0x35 prefix which maps to 'N'.
	address := p.Address()
	require.Equal(t, byte('N'), address[0])
}

func TestVerificationScript(t *testing.T) {
	k, err := NewPrivateKey()
	require.NoError(t, err)
	p := k.PublicKey()
	script := p.GetVerificationScript()

	require.Equal(t, 40, len(script))
	require.Equal(t, byte(0x0C), script[0]) // PUSHDATA1
	require.Equal(t, byte(33), script[1])
	require.Equal(t, p.Bytes(), script[2:35])
	require.Equal(t, byte(0x41), script[35]) // SYSCALL
	// System.Crypto.CheckSig interop identifier.
	require.Equal(t, []byte{0x56, 0xe7, 0xb3, 0x27}, script[36:40])
}

func TestSort(t *testing.T) {
	pubs1 := make(PublicKeys, 10)
	for i := range pubs1 {
		priv, err := NewPrivateKey()
		require.NoError(t, err)
		pubs1[i] = priv.PublicKey()
	}

	pubs2 := pubs1.Copy()
	sort.Sort(pubs1)
	pubs2.Sort()
	// Check that sorting is deterministic.
	require.Equal(t, pubs1, pubs2)
	for i := range pubs1 {
		if i == 0 {
			continue
		}
		require.True(t, pubs1[i-1].Cmp(pubs1[i]) < 0)
	}
}

func TestContainsUnique(t *testing.T) {
	pubKeys := new(PublicKeys)
	pubKey, err := NewPublicKeyFromString("03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c")
	require.NoError(t, err)
	assert.False(t, pubKeys.Contains(pubKey))
	*pubKeys = append(*pubKeys, pubKey)
	*pubKeys = append(*pubKeys, pubKey)
	assert.True(t, pubKeys.Contains(pubKey))
	assert.Equal(t, 1, len(pubKeys.Unique()))
}

func TestMarshallJSON(t *testing.T) {
	str := "03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	pubKey, err := NewPublicKeyFromString(str)
	require.NoError(t, err)

	bytes, err := json.Marshal(&pubKey)
	require.NoError(t, err)
	require.Equal(t, []byte(`"`+str+`"`), bytes)
}

func TestUnmarshallJSON(t *testing.T) {
	str := "03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	expected, err := NewPublicKeyFromString(str)
	require.NoError(t, err)

	actual := &PublicKey{}
	err = json.Unmarshal([]byte(`"`+str+`"`), actual)
	require.NoError(t, err)
	require.Equal(t, expected, actual)

	// Invalid hex.
	require.Error(t, json.Unmarshal([]byte(`"04||"`), &PublicKey{}))
	// Not a string.
	require.Error(t, (&PublicKey{}).UnmarshalJSON([]byte(`123`)))
}

func TestDecodeBytes(t *testing.T) {
	pubs := make(PublicKeys, 2)
	for i := range pubs {
		priv, err := NewPrivateKey()
		require.NoError(t, err)
		pubs[i] = priv.PublicKey()
	}
	b := pubs.Bytes()

	var dec PublicKeys
	require.NoError(t, dec.DecodeBytes(b))
	require.Equal(t, pubs, dec)

	require.Error(t, dec.DecodeBytes(append(b, 0x00)))
}

func TestScriptHashAndNetSha(t *testing.T) {
	k, err := NewPrivateKey()
	require.NoError(t, err)
	p := k.PublicKey()
	require.Equal(t, hash.Hash160(p.GetVerificationScript()), p.GetScriptHash())
}
