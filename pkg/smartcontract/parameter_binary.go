package smartcontract

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/R3E-Network/NeoRust-sub001/pkg/encoding/bigint"
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
)

// MaxNestingDepth is the maximum allowed nesting level of container
// parameters (arrays and maps) in the binary format.
const MaxNestingDepth = 2

// maxContainerItems limits the number of elements in a serialized array or
// map parameter.
const maxContainerItems = 128

// ErrMalformedParameter is returned when a parameter can't be represented in
// (or recovered from) the binary format.
var ErrMalformedParameter = errors.New("malformed parameter")

// EncodeBinary implements the io.Serializable interface. Containers can be
// nested up to MaxNestingDepth levels.
func (p *Parameter) EncodeBinary(w *io.BinWriter) {
	p.encodeBinary(w, 0)
}

func (p *Parameter) encodeBinary(w *io.BinWriter, depth int) {
	if w.Err != nil {
		return
	}
	w.WriteB(byte(p.Type))
	switch p.Type {
	case AnyType:
		if p.Value != nil {
			w.Err = fmt.Errorf("%w: non-nil Any value", ErrMalformedParameter)
		}
	case BoolType:
		v, ok := p.Value.(bool)
		if !ok {
			w.Err = fmt.Errorf("%w: expected bool, got %T", ErrMalformedParameter, p.Value)
			return
		}
		w.WriteBool(v)
	case IntegerType:
		v, ok := p.Value.(*big.Int)
		if !ok {
			w.Err = fmt.Errorf("%w: expected *big.Int, got %T", ErrMalformedParameter, p.Value)
			return
		}
		if checkIntegerSize(v) != nil {
			w.Err = fmt.Errorf("%w: integer is too big", ErrMalformedParameter)
			return
		}
		w.WriteVarBytes(bigint.ToBytes(v))
	case ByteArrayType, SignatureType, PublicKeyType:
		v, ok := p.Value.([]byte)
		if !ok {
			w.Err = fmt.Errorf("%w: expected []byte, got %T", ErrMalformedParameter, p.Value)
			return
		}
		w.WriteVarBytes(v)
	case StringType:
		v, ok := p.Value.(string)
		if !ok {
			w.Err = fmt.Errorf("%w: expected string, got %T", ErrMalformedParameter, p.Value)
			return
		}
		w.WriteString(v)
	case Hash160Type:
		v, ok := p.Value.(util.Uint160)
		if !ok {
			w.Err = fmt.Errorf("%w: expected Uint160, got %T", ErrMalformedParameter, p.Value)
			return
		}
		v.EncodeBinary(w)
	case Hash256Type:
		v, ok := p.Value.(util.Uint256)
		if !ok {
			w.Err = fmt.Errorf("%w: expected Uint256, got %T", ErrMalformedParameter, p.Value)
			return
		}
		v.EncodeBinary(w)
	case ArrayType:
		if depth >= MaxNestingDepth {
			w.Err = fmt.Errorf("%w: nesting is too deep", ErrMalformedParameter)
			return
		}
		v, ok := p.Value.([]Parameter)
		if !ok {
			w.Err = fmt.Errorf("%w: expected []Parameter, got %T", ErrMalformedParameter, p.Value)
			return
		}
		if len(v) > maxContainerItems {
			w.Err = fmt.Errorf("%w: too many array elements", ErrMalformedParameter)
			return
		}
		w.WriteVarUint(uint64(len(v)))
		for i := range v {
			v[i].encodeBinary(w, depth+1)
		}
	case MapType:
		if depth >= MaxNestingDepth {
			w.Err = fmt.Errorf("%w: nesting is too deep", ErrMalformedParameter)
			return
		}
		v, ok := p.Value.([]ParameterPair)
		if !ok {
			w.Err = fmt.Errorf("%w: expected []ParameterPair, got %T", ErrMalformedParameter, p.Value)
			return
		}
		if len(v) > maxContainerItems {
			w.Err = fmt.Errorf("%w: too many map elements", ErrMalformedParameter)
			return
		}
		w.WriteVarUint(uint64(len(v)))
		for i := range v {
			v[i].Key.encodeBinary(w, depth+1)
			v[i].Value.encodeBinary(w, depth+1)
		}
	default:
		w.Err = fmt.Errorf("%w: unsupported type %s", ErrMalformedParameter, p.Type)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (p *Parameter) DecodeBinary(r *io.BinReader) {
	p.decodeBinary(r, 0)
}

func (p *Parameter) decodeBinary(r *io.BinReader, depth int) {
	if r.Err != nil {
		return
	}
	p.Type = ParamType(r.ReadB())
	p.Value = nil
	if r.Err != nil {
		return
	}
	switch p.Type {
	case AnyType:
	case BoolType:
		p.Value = r.ReadBool()
	case IntegerType:
		b := r.ReadVarBytes(bigint.MaxBytesLen)
		if r.Err != nil {
			return
		}
		p.Value = bigint.FromBytes(b)
	case ByteArrayType, SignatureType, PublicKeyType:
		p.Value = r.ReadVarBytes()
	case StringType:
		p.Value = r.ReadString()
	case Hash160Type:
		var v util.Uint160
		v.DecodeBinary(r)
		p.Value = v
	case Hash256Type:
		var v util.Uint256
		v.DecodeBinary(r)
		p.Value = v
	case ArrayType:
		if depth >= MaxNestingDepth {
			r.Err = fmt.Errorf("%w: nesting is too deep", ErrMalformedParameter)
			return
		}
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > maxContainerItems {
			r.Err = fmt.Errorf("%w: too many array elements", ErrMalformedParameter)
			return
		}
		v := make([]Parameter, n)
		for i := range v {
			v[i].decodeBinary(r, depth+1)
			if r.Err != nil {
				return
			}
		}
		p.Value = v
	case MapType:
		if depth >= MaxNestingDepth {
			r.Err = fmt.Errorf("%w: nesting is too deep", ErrMalformedParameter)
			return
		}
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > maxContainerItems {
			r.Err = fmt.Errorf("%w: too many map elements", ErrMalformedParameter)
			return
		}
		v := make([]ParameterPair, n)
		for i := range v {
			v[i].Key.decodeBinary(r, depth+1)
			v[i].Value.decodeBinary(r, depth+1)
			if r.Err != nil {
				return
			}
		}
		p.Value = v
	default:
		r.Err = fmt.Errorf("%w: unsupported type %#x", ErrMalformedParameter, byte(p.Type))
	}
}

// NewParameterFromBytes decodes a Parameter from the given byte slice.
func NewParameterFromBytes(data []byte) (*Parameter, error) {
	br := io.NewBinReaderFromBuf(data)
	p := new(Parameter)
	p.DecodeBinary(br)
	if br.Err != nil {
		if errors.Is(br.Err, ErrMalformedParameter) {
			return nil, br.Err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedParameter, br.Err)
	}
	if br.Len() != 0 {
		return nil, fmt.Errorf("%w: additional data after the parameter", ErrMalformedParameter)
	}
	return p, nil
}

// ToBytes encodes the Parameter to the new byte slice.
func (p *Parameter) ToBytes() ([]byte, error) {
	bw := io.NewBufBinWriter()
	p.EncodeBinary(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}
