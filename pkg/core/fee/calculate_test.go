package fee

import (
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/smartcontract"
	"github.com/stretchr/testify/require"
)

const base = 30

func TestCalculateSignatureContract(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)

	script := priv.PublicKey().GetVerificationScript()
	netFee, size := Calculate(base, script)
	// 64-byte signature in an invocation script plus the verification script.
	require.Equal(t, 67+1+len(script), size)
	// Two PUSHDATA1 plus a signature check.
	require.Equal(t, int64(base*(8+8+ECDSAVerifyPrice)), netFee)
}

func TestCalculateMultiSigContract(t *testing.T) {
	const (
		m = 3
		n = 5
	)
	pubs := make(keys.PublicKeys, n)
	for i := range pubs {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs[i] = priv.PublicKey()
	}
	script, err := smartcontract.CreateMultiSigRedeemScript(m, pubs)
	require.NoError(t, err)

	netFee, size := Calculate(base, script)
	sizeInv := 66 * m
	require.Equal(t, 1+sizeInv+1+len(script), size)

	expected := int64(base * (8*m + 1)) // m signatures plus a threshold push.
	expected += int64(base * (8*n + 1)) // n keys plus a count push.
	expected += base * ECDSAVerifyPrice * n
	require.Equal(t, expected, netFee)
}

func TestCalculateUnknownContract(t *testing.T) {
	netFee, size := Calculate(base, []byte{0x51})
	require.EqualValues(t, 0, netFee)
	require.Equal(t, 0, size)
}
