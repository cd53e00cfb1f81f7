package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
)

const (
	// HeaderSize is the size of the fixed part of the transaction: version,
	// nonce, system and network fees and the validity height.
	HeaderSize = 1 + 4 + 8 + 8 + 4

	// MaxScriptLength is the limit for transaction's script length.
	MaxScriptLength = math.MaxUint16

	// MaxTransactionSize is the upper limit size in bytes that a
	// transaction can reach. It is set to be 102400.
	MaxTransactionSize = 102400

	// MaxAttributes is the maximum number of attributes per transaction.
	MaxAttributes = 16
)

// Various errors for transaction validation.
var (
	ErrInvalidVersion     = errors.New("only version 0 is supported")
	ErrNegativeSystemFee  = errors.New("negative system fee")
	ErrNegativeNetworkFee = errors.New("negative network fee")
	ErrTooBigFees         = errors.New("too big fees: int64 overflow")
	ErrEmptySigners       = errors.New("signers array should contain sender")
	ErrDuplicateSigner    = errors.New("transaction signers should be unique")
	ErrEmptyScript        = errors.New("transaction has no script")
	ErrTooBigScript       = errors.New("transaction script is too big")
	ErrInvalidAttribute   = errors.New("invalid attribute")
	ErrInvalidWitnessNum  = errors.New("number of witnesses does not match signers")
)

// Transaction is a Neo transaction, a signed set of instructions executed on
// the chain along with the conditions of its validity.
type Transaction struct {
	// Version of the binary format, only 0 is used currently.
	Version uint8

	// Random number to avoid hash collision.
	Nonce uint32

	// Fee burned for the execution of the script, in GAS fractions.
	SystemFee int64

	// Fee paid for the inclusion and verification of the transaction, in
	// GAS fractions.
	NetworkFee int64

	// Maximum blockchain height exceeding which the transaction should
	// fail verification. The transaction is valid for inclusion up to and
	// including this height.
	ValidUntilBlock uint32

	// Code to run in the VM.
	Script []byte

	// Transaction signers along with their witness scopes. The first one
	// is the sender paying the fees.
	Signers []Signer

	// Attributes of the transaction.
	Attributes []Attribute

	// Witnesses proving the transaction, one per signer in the same
	// order.
	Scripts []Witness

	// size is transaction's serialized size.
	size int

	// Hash of the transaction (double SHA256 of hashable fields is NOT
	// used, a single SHA256 is).
	hash   util.Uint256
	hashed bool
}

// New returns a new transaction to execute the given script with the given
// system fee.
func New(script []byte, gas int64) *Transaction {
	return &Transaction{
		Version:   0,
		Script:    script,
		SystemFee: gas,
	}
}

// NewTransactionFromBytes decodes a byte array into a Transaction, performing
// basic validity checks along the way. The whole input has to be consumed.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	r := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Len() != 0 {
		return nil, errors.New("additional data after the transaction")
	}
	tx.size = len(b)
	if err := tx.isValid(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Hash returns the hash of the transaction which is used to identify it. It
// is a single SHA256 of the serialized hashable fields.
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashed {
		if t.createHash() != nil {
			panic("failed to compute hash!")
		}
	}
	return t.hash
}

// HasSigner returns true if the given account is one of the signers.
func (t *Transaction) HasSigner(hash util.Uint160) bool {
	for _, h := range t.Signers {
		if h.Account.Equals(hash) {
			return true
		}
	}
	return false
}

// Sender returns the sender of the transaction which is always on the first
// place in the transaction's signers list.
func (t *Transaction) Sender() util.Uint160 {
	if len(t.Signers) == 0 {
		panic("transaction does not have signers")
	}
	return t.Signers[0].Account
}

// HasAttribute returns true if the transaction has an attribute of the given
// type.
func (t *Transaction) HasAttribute(typ AttrType) bool {
	for i := range t.Attributes {
		if t.Attributes[i].Type == typ {
			return true
		}
	}
	return false
}

// GetAttributes returns all attributes of the given type.
func (t *Transaction) GetAttributes(typ AttrType) []Attribute {
	var result []Attribute
	for _, attr := range t.Attributes {
		if attr.Type == typ {
			result = append(result, attr)
		}
	}
	return result
}

// decodeHashableFields decodes the fields that are used for signing the
// transaction, which are all fields except the scripts.
func (t *Transaction) decodeHashableFields(br *io.BinReader, buf []byte) {
	var start, end int

	if buf != nil {
		start = len(buf) - br.Len()
	}
	t.Version = br.ReadB()
	t.Nonce = br.ReadU32LE()
	t.SystemFee = int64(br.ReadU64LE())
	t.NetworkFee = int64(br.ReadU64LE())
	t.ValidUntilBlock = br.ReadU32LE()
	br.ReadArray(&t.Signers, maxSubitems)
	br.ReadArray(&t.Attributes, MaxAttributes)
	t.Script = br.ReadVarBytes(MaxScriptLength)
	if br.Err == nil {
		br.Err = t.isValid()
	}
	if buf != nil {
		end = len(buf) - br.Len()
		t.hash = hash.Sha256(buf[start:end])
		t.hashed = true
	}
}

// DecodeHashableFields decodes a part of the transaction which should be
// hashed and signed, the body without the witnesses.
func (t *Transaction) DecodeHashableFields(buf []byte) error {
	r := io.NewBinReaderFromBuf(buf)
	t.decodeHashableFields(r, buf)
	if r.Err != nil {
		return r.Err
	}
	if r.Len() != 0 {
		return errors.New("additional data after the signed part")
	}
	t.Scripts = make([]Witness, 0)
	return nil
}

// DecodeBinary implements the Serializable interface.
func (t *Transaction) DecodeBinary(br *io.BinReader) {
	t.decodeHashableFields(br, nil)
	if br.Err != nil {
		return
	}
	br.ReadArray(&t.Scripts, len(t.Signers))
	if br.Err == nil && len(t.Signers) != len(t.Scripts) {
		br.Err = fmt.Errorf("%w: %d vs %d", ErrInvalidWitnessNum, len(t.Signers), len(t.Scripts))
		return
	}

	// Create the hash of the transaction at decode, so we dont need to
	// do it anymore.
	if br.Err == nil {
		br.Err = t.createHash()
	}
}

// encodeHashableFields encodes the fields that are not used for signing the
// transaction, which are all fields except the scripts.
func (t *Transaction) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteB(t.Version)
	bw.WriteU32LE(t.Nonce)
	bw.WriteU64LE(uint64(t.SystemFee))
	bw.WriteU64LE(uint64(t.NetworkFee))
	bw.WriteU32LE(t.ValidUntilBlock)
	io.WriteArray(bw, t.Signers)
	io.WriteArray(bw, t.Attributes)
	bw.WriteVarBytes(t.Script)
}

// EncodeBinary implements the Serializable interface.
func (t *Transaction) EncodeBinary(bw *io.BinWriter) {
	t.encodeHashableFields(bw)
	io.WriteArray(bw, t.Scripts)
}

// EncodeHashableFields returns serialized transaction's fields which are
// hashed and signed.
func (t *Transaction) EncodeHashableFields() ([]byte, error) {
	bw := io.NewBufBinWriter()
	t.encodeHashableFields(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// createHash creates the hash of the transaction.
func (t *Transaction) createHash() error {
	b, err := t.EncodeHashableFields()
	if err != nil {
		return err
	}
	t.hash = hash.Sha256(b)
	t.hashed = true
	return nil
}

// DecodedHash returns the hash of the transaction in case it was already
// calculated (which happens when the transaction is decoded from the binary
// or its hash is requested explicitly).
func (t *Transaction) DecodedHash() (util.Uint256, bool) {
	return t.hash, t.hashed
}

// Bytes converts the transaction to []byte.
func (t *Transaction) Bytes() []byte {
	buf := io.NewBufBinWriter()
	t.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// FeePerByte returns the network fee divided by the transaction size.
func (t *Transaction) FeePerByte() int64 {
	return t.NetworkFee / int64(t.Size())
}

// Size returns the size of the serialized transaction in bytes.
func (t *Transaction) Size() int {
	if t.size == 0 {
		t.size = HeaderSize +
			io.GetVarSize(t.Signers) +
			io.GetVarSize(t.Attributes) +
			io.GetVarSize(t.Script) +
			io.GetVarSize(t.Scripts)
	}
	return t.size
}

// InvalidateCache drops the cached size and hash, it has to be used after
// any modification of the transaction fields.
func (t *Transaction) InvalidateCache() {
	t.size = 0
	t.hash = util.Uint256{}
	t.hashed = false
}

// isValid checks whether the decoded/created transaction has all its fields
// in a valid state, it doesn't check the witnesses.
func (t *Transaction) isValid() error {
	if t.Version > 0 {
		return ErrInvalidVersion
	}
	if t.SystemFee < 0 {
		return ErrNegativeSystemFee
	}
	if t.NetworkFee < 0 {
		return ErrNegativeNetworkFee
	}
	if t.NetworkFee+t.SystemFee < t.SystemFee {
		return ErrTooBigFees
	}
	if len(t.Signers) == 0 {
		return ErrEmptySigners
	}
	for i := range t.Signers {
		for j := i + 1; j < len(t.Signers); j++ {
			if t.Signers[i].Account.Equals(t.Signers[j].Account) {
				return ErrDuplicateSigner
			}
		}
	}
	hasHighPrio := false
	for i := range t.Attributes {
		switch t.Attributes[i].Type {
		case HighPriority:
			if hasHighPrio {
				return fmt.Errorf("%w: multiple high priority attributes", ErrInvalidAttribute)
			}
			hasHighPrio = true
		case NotValidBeforeT:
			if len(t.GetAttributes(NotValidBeforeT)) > 1 {
				return fmt.Errorf("%w: multiple NotValidBefore attributes", ErrInvalidAttribute)
			}
		}
	}
	if len(t.Script) == 0 {
		return ErrEmptyScript
	}
	if len(t.Script) > MaxScriptLength {
		return ErrTooBigScript
	}
	return nil
}

// transactionJSON is a wrapper for Transaction and used for correct
// marshalling of transaction.Data.
type transactionJSON struct {
	TxID            util.Uint256 `json:"hash"`
	Size            int          `json:"size"`
	Version         uint8        `json:"version"`
	Nonce           uint32       `json:"nonce"`
	Sender          string       `json:"sender"`
	SystemFee       int64        `json:"sysfee,string"`
	NetworkFee      int64        `json:"netfee,string"`
	ValidUntilBlock uint32       `json:"validuntilblock"`
	Attributes      []Attribute  `json:"attributes"`
	Signers         []Signer     `json:"signers"`
	Script          []byte       `json:"script"`
	Scripts         []Witness    `json:"witnesses"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	tx := transactionJSON{
		TxID:            t.Hash(),
		Size:            t.Size(),
		Version:         t.Version,
		Nonce:           t.Nonce,
		SystemFee:       t.SystemFee,
		NetworkFee:      t.NetworkFee,
		ValidUntilBlock: t.ValidUntilBlock,
		Attributes:      t.Attributes,
		Signers:         t.Signers,
		Script:          t.Script,
		Scripts:         t.Scripts,
	}
	if len(t.Signers) > 0 {
		tx.Sender = t.Signers[0].Account.StringLE()
	}
	return json.Marshal(tx)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	tx := new(transactionJSON)
	if err := json.Unmarshal(data, tx); err != nil {
		return err
	}
	t.Version = tx.Version
	t.Nonce = tx.Nonce
	t.SystemFee = tx.SystemFee
	t.NetworkFee = tx.NetworkFee
	t.ValidUntilBlock = tx.ValidUntilBlock
	t.Attributes = tx.Attributes
	t.Signers = tx.Signers
	t.Script = tx.Script
	t.Scripts = tx.Scripts
	if err := t.isValid(); err != nil {
		return err
	}
	if t.Hash() != tx.TxID {
		return errors.New("txid doesn't match transaction hash")
	}
	if t.Size() != tx.Size {
		return errors.New("'size' doesn't match transaction size")
	}
	return nil
}

// Copy creates a deep copy of the Transaction, including all slice fields.
// Cached values like size and hash are reset to be recalculated when needed.
func (t *Transaction) Copy() *Transaction {
	if t == nil {
		return nil
	}
	cp := *t

	if t.Attributes != nil {
		cp.Attributes = make([]Attribute, len(t.Attributes))
		for i, attr := range t.Attributes {
			cp.Attributes[i] = *attr.Copy()
		}
	}
	if t.Signers != nil {
		cp.Signers = make([]Signer, len(t.Signers))
		for i, signer := range t.Signers {
			cp.Signers[i] = *signer.Copy()
		}
	}
	if t.Scripts != nil {
		cp.Scripts = make([]Witness, len(t.Scripts))
		for i, script := range t.Scripts {
			cp.Scripts[i] = script.Copy()
		}
	}
	cp.Script = append([]byte(nil), t.Script...)

	cp.InvalidateCache()
	return &cp
}
