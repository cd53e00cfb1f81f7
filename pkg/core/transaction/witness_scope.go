package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// WitnessScope represents the set of witness flags for a Transaction signer.
type WitnessScope byte

const (
	// None specifies that no contract was witnessed. Only signs the
	// transaction and pays fees, the witness can't be used during the
	// execution.
	None WitnessScope = 0
	// CalledByEntry means that this condition must hold: EntryScriptHash
	// == CallingScriptHash. The witness/permission/signature given on
	// first invocation will automatically expire if entering deeper
	// internal invokes. This can be the default safe choice for native
	// NEO/GAS.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts restricts the witness to the contracts from the
	// signer's AllowedContracts list.
	CustomContracts WitnessScope = 0x10
	// CustomGroups restricts the witness to contracts belonging to one of
	// the groups from the signer's AllowedGroups list.
	CustomGroups WitnessScope = 0x20
	// Global allows the witness in all contexts. This cannot be combined
	// with other flags.
	Global WitnessScope = 0x80
)

// ErrInvalidScope is returned when the scope byte contains unknown flags or
// an impossible flag combination.
var ErrInvalidScope = errors.New("invalid witness scope")

// ScopesFromByte converts a byte to a set of scopes and performs validity
// check.
func ScopesFromByte(b byte) (WitnessScope, error) {
	var res = WitnessScope(b)
	if res & ^(None|CalledByEntry|CustomContracts|CustomGroups|Global) != 0 {
		return 0, fmt.Errorf("%w: unknown flags in %#x", ErrInvalidScope, b)
	}
	if res&Global != 0 && res != Global {
		return 0, fmt.Errorf("%w: Global can not be combined with other scopes", ErrInvalidScope)
	}
	return res, nil
}

// ScopesFromString converts a string of comma-separated scopes to a set of
// scopes (case-sensitive). The string can combine several scopes, e.g. be
// any of: 'Global', 'CalledByEntry,CustomGroups' etc. In case of an empty
// string an error will be returned.
func ScopesFromString(s string) (WitnessScope, error) {
	var result WitnessScope
	scopes := strings.Split(s, ",")
	dict := map[string]WitnessScope{
		Global.String():          Global,
		CalledByEntry.String():   CalledByEntry,
		CustomContracts.String(): CustomContracts,
		CustomGroups.String():    CustomGroups,
		None.String():            None,
	}
	var isGlobal bool
	for _, scopeStr := range scopes {
		scope, ok := dict[strings.TrimSpace(scopeStr)]
		if !ok {
			return result, fmt.Errorf("%w: %v", ErrInvalidScope, scopeStr)
		}
		if isGlobal && scope != Global {
			return result, fmt.Errorf("%w: Global can not be combined with other scopes", ErrInvalidScope)
		}
		result |= scope
		if scope == Global {
			isGlobal = true
		}
	}
	return result, nil
}

// String implements the stringer interface.
func (s WitnessScope) String() string {
	switch s {
	case None:
		return "None"
	case CalledByEntry:
		return "CalledByEntry"
	case CustomContracts:
		return "CustomContracts"
	case CustomGroups:
		return "CustomGroups"
	case Global:
		return "Global"
	default:
		return fmt.Sprintf("WitnessScope(%#x)", byte(s))
	}
}

// scopesToString converts a witness scope set to its string representation
// using "," as a separator.
func scopesToString(scopes WitnessScope) string {
	if scopes&Global != 0 || scopes == None {
		return scopes.String()
	}
	var res []string
	if scopes&CalledByEntry != 0 {
		res = append(res, CalledByEntry.String())
	}
	if scopes&CustomContracts != 0 {
		res = append(res, CustomContracts.String())
	}
	if scopes&CustomGroups != 0 {
		res = append(res, CustomGroups.String())
	}
	return strings.Join(res, ",")
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return []byte(`"` + scopesToString(s) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	scopes, err := ScopesFromString(js)
	if err != nil {
		return err
	}
	*s = scopes
	return nil
}
