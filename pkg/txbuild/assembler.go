// Package txbuild creates unsigned transactions. An Assembler validates the
// header fields, computes the network-bound signable hash and estimates both
// fees, the rest of the signing pipeline (signature collection and witness
// attachment) is handled by the smartcontract/context package.
package txbuild

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/R3E-Network/NeoRust-sub001/pkg/config/netmode"
	"github.com/R3E-Network/NeoRust-sub001/pkg/core/transaction"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
)

const (
	// DefaultFeePerByte is the default per-byte network fee in GAS
	// fractions used when the Assembler is not configured with the
	// chain's actual policy value.
	DefaultFeePerByte = 1000
	// DefaultBaseExecFee is the default base execution price used for
	// verification cost estimation.
	DefaultBaseExecFee = 30
	// DefaultValidUntilIncrement is the number of blocks above the
	// current height a transaction stays valid for when the caller
	// doesn't provide an explicit ValidUntilBlock value.
	DefaultValidUntilIncrement = 5760
)

// ErrInvalidValidity is returned when ValidUntilBlock doesn't exceed the
// current blockchain height.
var ErrInvalidValidity = errors.New("validUntilBlock is not in the future")

// Assembler creates unsigned transactions for the given network. Fields can
// be adjusted between calls, but the zero values of FeePerByte and
// BaseExecFee are replaced with defaults. Assembler itself is stateless,
// each Assemble call produces an independently owned transaction.
type Assembler struct {
	// Magic is the network the transactions are intended for.
	Magic netmode.Magic
	// FeePerByte is the per-byte network fee.
	FeePerByte int64
	// BaseExecFee is the base execution price for verification costs.
	BaseExecFee int64
	// Simulator is used for system fee estimation. It can be nil if
	// SystemFee is never called.
	Simulator Simulator
}

// Options allows to fine-tune the assembled transaction.
type Options struct {
	// Nonce is the transaction nonce. When nil a random one is used.
	Nonce *uint32
	// ValidUntilBlock is the exclusive upper height bound. When zero
	// it's set to the current height plus DefaultValidUntilIncrement.
	ValidUntilBlock uint32
	// Attributes are added to the transaction as is.
	Attributes []transaction.Attribute
	// SystemFee is the execution fee. Use SystemFee method to estimate it.
	SystemFee int64
	// NetworkFee is the inclusion fee. Use NetworkFee method to estimate it.
	NetworkFee int64
}

// New creates an Assembler for the given network using default fee settings.
func New(magic netmode.Magic, sim Simulator) *Assembler {
	return &Assembler{
		Magic:       magic,
		FeePerByte:  DefaultFeePerByte,
		BaseExecFee: DefaultBaseExecFee,
		Simulator:   sim,
	}
}

// Assemble creates an unsigned transaction running the given script on
// behalf of the given signers. The currentHeight is the chain height known
// to the caller, it bounds the validity checks. The returned transaction has
// no witnesses, its signable hash is available via SignableHash.
func (a *Assembler) Assemble(script []byte, signers []transaction.Signer, currentHeight uint32, opts Options) (*transaction.Transaction, error) {
	if len(script) == 0 {
		return nil, transaction.ErrEmptyScript
	}
	if len(signers) == 0 {
		return nil, transaction.ErrEmptySigners
	}
	for i := range signers {
		for j := i + 1; j < len(signers); j++ {
			if signers[i].Account.Equals(signers[j].Account) {
				return nil, fmt.Errorf("%w: %s", transaction.ErrDuplicateSigner, signers[i].Account.StringLE())
			}
		}
	}
	if opts.SystemFee < 0 {
		return nil, transaction.ErrNegativeSystemFee
	}
	if opts.NetworkFee < 0 {
		return nil, transaction.ErrNegativeNetworkFee
	}
	vub := opts.ValidUntilBlock
	if vub == 0 {
		vub = currentHeight + DefaultValidUntilIncrement
	}
	if vub <= currentHeight {
		return nil, fmt.Errorf("%w: %d is at or below height %d", ErrInvalidValidity, vub, currentHeight)
	}

	tx := transaction.New(script, opts.SystemFee)
	tx.NetworkFee = opts.NetworkFee
	tx.ValidUntilBlock = vub
	tx.Signers = signers
	tx.Attributes = opts.Attributes
	if opts.Nonce != nil {
		tx.Nonce = *opts.Nonce
	} else {
		tx.Nonce = rand.Uint32()
	}
	return tx, nil
}

// SignableHash returns the hash signers have to sign for the transaction to
// be valid on the Assembler's network.
func (a *Assembler) SignableHash(t *transaction.Transaction) util.Uint256 {
	return hash.NetSha256(uint32(a.Magic), t)
}
