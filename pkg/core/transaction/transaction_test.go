package transaction

import (
	"encoding/binary"
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/internal/testserdes"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTx() *Transaction {
	tx := New([]byte{0x41}, 1_0000_0000)
	tx.Nonce = 12345
	tx.NetworkFee = 50_0000
	tx.ValidUntilBlock = 100
	tx.Signers = []Signer{{
		Account: util.Uint160{1, 2, 3},
		Scopes:  CalledByEntry,
	}}
	tx.Scripts = []Witness{{
		InvocationScript:   []byte{0x0C, 0x01, 0x01},
		VerificationScript: []byte{0x41},
	}}
	return tx
}

func TestTransactionEncodeDecode(t *testing.T) {
	tx := newTestTx()
	data := tx.Bytes()
	require.NotNil(t, data)

	dec, err := NewTransactionFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), dec.Hash())
	require.Equal(t, tx.Version, dec.Version)
	require.Equal(t, tx.Nonce, dec.Nonce)
	require.Equal(t, tx.SystemFee, dec.SystemFee)
	require.Equal(t, tx.NetworkFee, dec.NetworkFee)
	require.Equal(t, tx.ValidUntilBlock, dec.ValidUntilBlock)
	require.Equal(t, tx.Signers, dec.Signers)
	require.Equal(t, tx.Script, dec.Script)
	require.Equal(t, tx.Scripts, dec.Scripts)
	require.Equal(t, len(data), dec.Size())

	// Trailing data is rejected.
	_, err = NewTransactionFromBytes(append(data, 0x00))
	require.Error(t, err)
}

func TestTransactionWireLayout(t *testing.T) {
	tx := newTestTx()
	data := tx.Bytes()

	require.Equal(t, byte(0), data[0])
	require.Equal(t, uint32(12345), binary.LittleEndian.Uint32(data[1:5]))
	require.Equal(t, uint64(1_0000_0000), binary.LittleEndian.Uint64(data[5:13]))
	require.Equal(t, uint64(50_0000), binary.LittleEndian.Uint64(data[13:21]))
	require.Equal(t, uint32(100), binary.LittleEndian.Uint32(data[21:25]))
	// Signer array: count, 20 bytes of account, scope byte.
	require.Equal(t, byte(1), data[25])
	require.Equal(t, tx.Signers[0].Account.BytesBE(), data[26:46])
	require.Equal(t, byte(CalledByEntry), data[46])
	// Empty attributes, then the script.
	require.Equal(t, byte(0), data[47])
	require.Equal(t, []byte{1, 0x41}, data[48:50])
}

func TestTransactionHash(t *testing.T) {
	tx := newTestTx()
	hb, err := tx.EncodeHashableFields()
	require.NoError(t, err)
	require.Equal(t, hash.Sha256(hb), tx.Hash())

	// Witnesses do not affect the hash.
	tx2 := newTestTx()
	tx2.Scripts = append(tx2.Scripts[:0:0], tx2.Scripts...)
	tx2.Scripts[0].InvocationScript = []byte{0x0C, 0x01, 0xFF}
	require.Equal(t, tx.Hash(), tx2.Hash())

	// Any hashable field does.
	tx3 := newTestTx()
	tx3.Nonce++
	require.NotEqual(t, tx.Hash(), tx3.Hash())
}

func TestTransactionValidation(t *testing.T) {
	check := func(mod func(tx *Transaction), target error) {
		tx := newTestTx()
		mod(tx)
		data := tx.Bytes()
		_, err := NewTransactionFromBytes(data)
		require.ErrorIs(t, err, target)
	}

	t.Run("negative system fee", func(t *testing.T) {
		check(func(tx *Transaction) { tx.SystemFee = -1 }, ErrNegativeSystemFee)
	})
	t.Run("negative network fee", func(t *testing.T) {
		check(func(tx *Transaction) { tx.NetworkFee = -1 }, ErrNegativeNetworkFee)
	})
	t.Run("duplicate signers", func(t *testing.T) {
		check(func(tx *Transaction) {
			tx.Signers = append(tx.Signers, tx.Signers[0])
			tx.Scripts = append(tx.Scripts, Witness{})
		}, ErrDuplicateSigner)
	})
}

func TestTransactionEmptyScript(t *testing.T) {
	tx := newTestTx()
	tx.Script = nil
	require.ErrorIs(t, tx.isValid(), ErrEmptyScript)
}

func TestTransactionNoSigners(t *testing.T) {
	tx := newTestTx()
	tx.Signers = nil
	require.ErrorIs(t, tx.isValid(), ErrEmptySigners)
}

func TestWitnessSignerMismatch(t *testing.T) {
	tx := newTestTx()
	tx.Scripts = nil
	data := tx.Bytes()
	_, err := NewTransactionFromBytes(data)
	require.ErrorIs(t, err, ErrInvalidWitnessNum)
}

func TestDecodeHashableFields(t *testing.T) {
	tx := newTestTx()
	buf, err := tx.EncodeHashableFields()
	require.NoError(t, err)

	var dec Transaction
	require.NoError(t, dec.DecodeHashableFields(buf))
	require.Equal(t, tx.Hash(), dec.Hash())
	require.Equal(t, 0, len(dec.Scripts))

	require.Error(t, new(Transaction).DecodeHashableFields(append(buf, 0x00)))
}

func TestTransactionMarshalJSON(t *testing.T) {
	tx := newTestTx()
	testserdes.MarshalUnmarshalJSON(t, tx, new(Transaction))
}

func TestTransactionAttributes(t *testing.T) {
	tx := newTestTx()
	tx.Attributes = []Attribute{
		{Type: HighPriority},
		{Type: NotValidBeforeT, Value: &NotValidBefore{Height: 42}},
	}
	require.True(t, tx.HasAttribute(HighPriority))
	require.Equal(t, 1, len(tx.GetAttributes(NotValidBeforeT)))

	data := tx.Bytes()
	dec, err := NewTransactionFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, tx.Attributes, dec.Attributes)
	require.Equal(t, tx.Hash(), dec.Hash())
}

func TestTransactionCopy(t *testing.T) {
	tx := newTestTx()
	cp := tx.Copy()
	require.Equal(t, tx.Hash(), cp.Hash())

	cp.Scripts[0].InvocationScript[0] = 0xFF
	assert.NotEqual(t, tx.Scripts[0].InvocationScript, cp.Scripts[0].InvocationScript)

	cp2 := tx.Copy()
	cp2.Nonce++
	require.NotEqual(t, tx.Hash(), cp2.Hash())
}

func TestTransactionSender(t *testing.T) {
	tx := newTestTx()
	require.Equal(t, tx.Signers[0].Account, tx.Sender())
	require.True(t, tx.HasSigner(tx.Signers[0].Account))
	require.False(t, tx.HasSigner(util.Uint160{9}))
}
