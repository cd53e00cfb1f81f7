package transaction

// AttrType represents the purpose of the attribute.
type AttrType uint8

// List of valid attribute types.
const (
	// HighPriority marks a transaction as high priority, it can only be
	// used by the network committee.
	HighPriority AttrType = 1
	// NotValidBeforeT sets the height before which the transaction is not
	// valid.
	NotValidBeforeT AttrType = 0x20
)

// String implements the stringer interface.
func (a AttrType) String() string {
	switch a {
	case HighPriority:
		return "HighPriority"
	case NotValidBeforeT:
		return "NotValidBefore"
	default:
		return "Unknown"
	}
}

func attrTypeFromString(s string) (AttrType, error) {
	switch s {
	case "HighPriority":
		return HighPriority, nil
	case "NotValidBefore":
		return NotValidBeforeT, nil
	default:
		return 0, errUnknownAttributeType
	}
}

// allowMultiple returns whether the transaction can contain multiple
// attributes of this type.
func (a AttrType) allowMultiple() bool {
	return false
}
