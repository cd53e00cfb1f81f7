package transaction

import (
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/internal/testserdes"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/stretchr/testify/require"
)

func TestWitnessSerDes(t *testing.T) {
	expected := &Witness{
		InvocationScript:   []byte{1, 2, 3},
		VerificationScript: []byte{4, 5, 6},
	}
	actual := &Witness{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
	testserdes.MarshalUnmarshalJSON(t, expected, &Witness{})

	data, err := testserdes.EncodeBinary(expected)
	require.NoError(t, err)
	require.Equal(t, len(data), expected.Size())

	// Too long scripts are rejected.
	bad := &Witness{InvocationScript: make([]byte, MaxInvocationScript+1)}
	data, err = testserdes.EncodeBinary(bad)
	require.NoError(t, err)
	require.Error(t, testserdes.DecodeBinary(data, &Witness{}))
}

func TestWitnessScriptHash(t *testing.T) {
	w := &Witness{VerificationScript: []byte{1, 2, 3}}
	require.Equal(t, hash.Hash160(w.VerificationScript), w.ScriptHash())
}

func TestWitnessCopy(t *testing.T) {
	w := Witness{
		InvocationScript:   []byte{1, 2, 3},
		VerificationScript: []byte{4, 5, 6},
	}
	cp := w.Copy()
	cp.InvocationScript[0] = 0xFF
	require.NotEqual(t, w.InvocationScript, cp.InvocationScript)
}

func TestAttributeSerDes(t *testing.T) {
	attrs := []*Attribute{
		{Type: HighPriority},
		{Type: NotValidBeforeT, Value: &NotValidBefore{Height: 123}},
	}
	for _, expected := range attrs {
		actual := &Attribute{}
		testserdes.EncodeDecodeBinary(t, expected, actual)
		testserdes.MarshalUnmarshalJSON(t, expected, &Attribute{})

		data, err := testserdes.EncodeBinary(expected)
		require.NoError(t, err)
		require.Equal(t, len(data), expected.Size())
	}

	// Unknown type.
	require.Error(t, testserdes.DecodeBinary([]byte{0x42}, &Attribute{}))
}
