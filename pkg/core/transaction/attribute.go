package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
)

var (
	errUnknownAttributeType = errors.New("unknown attribute type")
)

// AttrValue represents a Transaction Attribute value.
type AttrValue interface {
	io.Serializable
	toJSONMap(map[string]interface{})
	// Copy returns a deep copy of the attribute value.
	Copy() AttrValue
}

// Attribute represents a Transaction attribute.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// attrJSON is used for JSON I/O of Attribute.
type attrJSON struct {
	Type string `json:"type"`
}

// DecodeBinary implements the Serializable interface.
func (attr *Attribute) DecodeBinary(br *io.BinReader) {
	attr.Type = AttrType(br.ReadB())

	switch t := attr.Type; t {
	case HighPriority:
		return
	case NotValidBeforeT:
		attr.Value = new(NotValidBefore)
	default:
		if br.Err == nil {
			br.Err = fmt.Errorf("%w: %#x", errUnknownAttributeType, byte(t))
		}
		return
	}
	attr.Value.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (attr Attribute) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(byte(attr.Type))
	switch t := attr.Type; t {
	case HighPriority:
	case NotValidBeforeT:
		attr.Value.EncodeBinary(bw)
	default:
		bw.Err = fmt.Errorf("%w: %#x", errUnknownAttributeType, byte(t))
	}
}

// Size returns the serialized size of the attribute.
func (attr Attribute) Size() int {
	sz := 1 // type byte
	if s, ok := attr.Value.(io.Sizer); ok {
		sz += s.Size()
	}
	return sz
}

// MarshalJSON implements the json.Marshaler interface.
func (attr *Attribute) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{"type": attr.Type.String()}
	if attr.Value != nil {
		attr.Value.toJSONMap(m)
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (attr *Attribute) UnmarshalJSON(data []byte) error {
	aj := new(attrJSON)
	err := json.Unmarshal(data, aj)
	if err != nil {
		return err
	}
	attr.Type, err = attrTypeFromString(aj.Type)
	if err != nil {
		return err
	}
	switch attr.Type {
	case HighPriority:
		return nil
	case NotValidBeforeT:
		// Reuse the full JSON for the value payload.
		value := new(NotValidBefore)
		if err := json.Unmarshal(data, value); err != nil {
			return err
		}
		attr.Value = value
	}
	return nil
}

// Copy creates a deep copy of the Attribute.
func (attr *Attribute) Copy() *Attribute {
	if attr == nil {
		return nil
	}
	cp := &Attribute{
		Type: attr.Type,
	}
	if attr.Value != nil {
		cp.Value = attr.Value.Copy()
	}
	return cp
}
