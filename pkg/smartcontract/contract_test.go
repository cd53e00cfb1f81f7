package smartcontract

import (
	"math/rand"
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T, n int) keys.PublicKeys {
	pubs := make(keys.PublicKeys, n)
	for i := range pubs {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs[i] = priv.PublicKey()
	}
	return pubs
}

func TestCreateMultiSigRedeemScript(t *testing.T) {
	pubs := newTestKeys(t, 3)
	script, err := CreateMultiSigRedeemScript(2, pubs)
	require.NoError(t, err)

	require.Equal(t, byte(opcode.PUSH2), script[0])
	// 3 keys of 35 bytes each (PUSHDATA1 33 key), PUSH3, SYSCALL and 4 id bytes.
	require.Equal(t, 1+3*35+1+5, len(script))
	require.Equal(t, byte(opcode.PUSH3), script[len(script)-6])
	require.Equal(t, byte(opcode.SYSCALL), script[len(script)-5])
	require.Equal(t, []byte{0x9e, 0xd0, 0xdc, 0x3a}, script[len(script)-4:])

	m, parsed, ok := ParseMultiSigContract(script)
	require.True(t, ok)
	require.Equal(t, 2, m)
	require.Equal(t, 3, len(parsed))

	// Keys inside the script are sorted.
	sorted := pubs.Copy()
	sorted.Sort()
	for i := range sorted {
		require.Equal(t, sorted[i].Bytes(), parsed[i])
	}
}

func TestMultiSigScriptOrderInvariance(t *testing.T) {
	pubs := newTestKeys(t, 5)
	expected, err := CreateMultiSigRedeemScript(3, pubs)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		shuffled := pubs.Copy()
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		script, err := CreateMultiSigRedeemScript(3, shuffled)
		require.NoError(t, err)
		require.Equal(t, expected, script)
	}
	// The input key list is not touched.
	expected2, err := CreateMultiSigRedeemScript(3, pubs)
	require.NoError(t, err)
	require.Equal(t, expected, expected2)
}

func TestCreateMultiSigRedeemScriptErrors(t *testing.T) {
	pubs := newTestKeys(t, 3)

	_, err := CreateMultiSigRedeemScript(0, pubs)
	require.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = CreateMultiSigRedeemScript(4, pubs)
	require.ErrorIs(t, err, ErrInvalidThreshold)

	tooMany := make(keys.PublicKeys, MaxMultisigKeys+1)
	for i := range tooMany {
		tooMany[i] = pubs[0]
	}
	_, err = CreateMultiSigRedeemScript(1, tooMany)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestCreateDefaultMultiSigRedeemScript(t *testing.T) {
	var pubs keys.PublicKeys
	checkM := func(t *testing.T, n, expectedM int) {
		script, err := CreateDefaultMultiSigRedeemScript(pubs)
		require.NoError(t, err)
		m, keyList, ok := ParseMultiSigContract(script)
		require.True(t, ok)
		require.Equal(t, expectedM, m)
		require.Equal(t, n, len(keyList))
	}

	pubs = newTestKeys(t, 4)
	checkM(t, 4, 3)

	pubs = append(pubs, newTestKeys(t, 3)...)
	checkM(t, 7, 5)

	pubs = append(pubs, newTestKeys(t, 3)...)
	checkM(t, 10, 7)
}

func TestCreateMajorityMultiSigRedeemScript(t *testing.T) {
	pubs := newTestKeys(t, 4)
	script, err := CreateMajorityMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	m, _, ok := ParseMultiSigContract(script)
	require.True(t, ok)
	require.Equal(t, 3, m)
}

func TestSignatureContractParsing(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()
	script := pub.GetVerificationScript()

	require.True(t, IsSignatureContract(script))
	parsed, ok := ParseSignatureContract(script)
	require.True(t, ok)
	require.Equal(t, pub.Bytes(), parsed)

	assert.False(t, IsMultiSigContract(script))
	assert.False(t, IsSignatureContract(script[:len(script)-1]))

	bad := make([]byte, len(script))
	copy(bad, script)
	bad[len(bad)-1]++
	assert.False(t, IsSignatureContract(bad))
}

func TestMultiSigContractParsingBad(t *testing.T) {
	assert.False(t, IsMultiSigContract(nil))
	assert.False(t, IsMultiSigContract([]byte{byte(opcode.RET)}))

	pubs := newTestKeys(t, 2)
	script, err := CreateMultiSigRedeemScript(2, pubs)
	require.NoError(t, err)

	// Truncated script.
	assert.False(t, IsMultiSigContract(script[:len(script)-1]))
	// Wrong syscall.
	bad := make([]byte, len(script))
	copy(bad, script)
	bad[len(bad)-1]++
	assert.False(t, IsMultiSigContract(bad))
	// Trailing data.
	assert.False(t, IsMultiSigContract(append(script, byte(opcode.RET))))
}
