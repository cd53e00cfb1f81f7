package transaction

import (
	"errors"
	"fmt"
	"slices"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
)

// The maximum number of AllowedContracts or AllowedGroups.
const maxSubitems = 16

// Signer implements a Transaction signer.
type Signer struct {
	Account          util.Uint160      `json:"account"`
	Scopes           WitnessScope      `json:"scopes"`
	AllowedContracts []util.Uint160    `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey `json:"allowedgroups,omitempty"`
}

// NewSigner returns a Signer for the given account with the given scopes
// after validating the scope combination. Each Custom* flag requires a
// non-empty corresponding set (bounded by 16 entries) and the sets can't be
// given without their flags.
func NewSigner(account util.Uint160, scopes WitnessScope, allowedContracts []util.Uint160, allowedGroups keys.PublicKeys) (*Signer, error) {
	s, err := ScopesFromByte(byte(scopes))
	if err != nil {
		return nil, err
	}
	if s&CustomContracts != 0 && len(allowedContracts) == 0 {
		return nil, fmt.Errorf("%w: CustomContracts scope with no allowed contracts", ErrInvalidScope)
	}
	if s&CustomContracts == 0 && len(allowedContracts) != 0 {
		return nil, fmt.Errorf("%w: allowed contracts given without the CustomContracts scope", ErrInvalidScope)
	}
	if s&CustomGroups != 0 && len(allowedGroups) == 0 {
		return nil, fmt.Errorf("%w: CustomGroups scope with no allowed groups", ErrInvalidScope)
	}
	if s&CustomGroups == 0 && len(allowedGroups) != 0 {
		return nil, fmt.Errorf("%w: allowed groups given without the CustomGroups scope", ErrInvalidScope)
	}
	if len(allowedContracts) > maxSubitems {
		return nil, fmt.Errorf("%w: more than %d allowed contracts", ErrInvalidScope, maxSubitems)
	}
	if len(allowedGroups) > maxSubitems {
		return nil, fmt.Errorf("%w: more than %d allowed groups", ErrInvalidScope, maxSubitems)
	}
	return &Signer{
		Account:          account,
		Scopes:           s,
		AllowedContracts: allowedContracts,
		AllowedGroups:    allowedGroups,
	}, nil
}

// InvocationContext describes the circumstances of a contract call which a
// signer's witness availability is checked against.
type InvocationContext struct {
	// Entry is the script hash of the entry script of the transaction.
	Entry util.Uint160
	// Calling is the script hash of the immediate caller (zero for the
	// entry script itself).
	Calling util.Uint160
	// Current is the script hash of the contract being executed.
	Current util.Uint160
	// Groups is the set of groups the current contract belongs to.
	Groups keys.PublicKeys
}

// Permits checks whether the witness of this signer can be used in the given
// invocation context.
func (c *Signer) Permits(ctx InvocationContext) bool {
	if c.Scopes == Global {
		return true
	}
	if c.Scopes&CalledByEntry != 0 {
		if ctx.Calling.Equals(util.Uint160{}) || ctx.Calling.Equals(ctx.Entry) {
			return true
		}
	}
	if c.Scopes&CustomContracts != 0 {
		for i := range c.AllowedContracts {
			if c.AllowedContracts[i].Equals(ctx.Current) {
				return true
			}
		}
	}
	if c.Scopes&CustomGroups != 0 {
		for _, g := range c.AllowedGroups {
			if ctx.Groups.Contains(g) {
				return true
			}
		}
	}
	return false
}

// EncodeBinary implements the Serializable interface.
func (c Signer) EncodeBinary(bw *io.BinWriter) {
	bw.WriteBytes(c.Account[:])
	bw.WriteB(byte(c.Scopes))
	if c.Scopes&CustomContracts != 0 {
		io.WriteArray(bw, c.AllowedContracts)
	}
	if c.Scopes&CustomGroups != 0 {
		io.WriteArray(bw, c.AllowedGroups)
	}
}

// DecodeBinary implements the Serializable interface.
func (c *Signer) DecodeBinary(br *io.BinReader) {
	br.ReadBytes(c.Account[:])
	var err error
	c.Scopes, err = ScopesFromByte(br.ReadB())
	if br.Err == nil && err != nil {
		br.Err = err
		return
	}
	if c.Scopes&CustomContracts != 0 {
		br.ReadArray(&c.AllowedContracts, maxSubitems)
	}
	if c.Scopes&CustomGroups != 0 {
		br.ReadArray(&c.AllowedGroups, maxSubitems)
	}
}

// Size returns the size of the serialized Signer in bytes.
func (c Signer) Size() int {
	size := util.Uint160Size + 1 // account + scope
	if c.Scopes&CustomContracts != 0 {
		size += io.GetVarSize(c.AllowedContracts)
	}
	if c.Scopes&CustomGroups != 0 {
		size += io.GetVarSize(c.AllowedGroups)
	}
	return size
}

// SignersToBytes serializes a slice of signers to a byte slice.
func SignersToBytes(signers []Signer) ([]byte, error) {
	buf := io.NewBufBinWriter()
	for i := range signers {
		signers[i].EncodeBinary(buf.BinWriter)
	}
	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Bytes(), nil
}

// SignersFromBytes deserializes a slice of signers from the given bytes.
func SignersFromBytes(b []byte) ([]Signer, error) {
	br := io.NewBinReaderFromBuf(b)
	var res []Signer
	for br.Len() > 0 {
		if len(res) == maxSubitems {
			return nil, errors.New("too many signers")
		}
		var s Signer
		s.DecodeBinary(br)
		if br.Err != nil {
			return nil, br.Err
		}
		res = append(res, s)
	}
	return res, nil
}

// Copy creates a deep copy of the Signer.
func (c *Signer) Copy() *Signer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.AllowedContracts = slices.Clone(c.AllowedContracts)
	cp.AllowedGroups = slices.Clone(c.AllowedGroups)
	return &cp
}
