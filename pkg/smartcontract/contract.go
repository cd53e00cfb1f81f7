package smartcontract

import (
	"errors"
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/core/interop/interopnames"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/emit"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/opcode"
)

// MaxMultisigKeys is the maximum number of keys allowed in a multisignature
// verification script.
const MaxMultisigKeys = 1024

// ErrInvalidThreshold is returned when the m out of n multisignature
// parameters don't make sense (m is zero, m exceeds the number of keys or
// there are too many keys).
var ErrInvalidThreshold = errors.New("invalid signature threshold")

var (
	checkSigID      = interopnames.ToID([]byte(interopnames.SystemCryptoCheckSig))
	checkMultisigID = interopnames.ToID([]byte(interopnames.SystemCryptoCheckMultisig))
)

// CreateSignatureRedeemScript creates a check signature script runnable by
// the VM for the given key.
func CreateSignatureRedeemScript(key *keys.PublicKey) []byte {
	return key.GetVerificationScript()
}

// CreateMultiSigRedeemScript creates an "m out of pubs" multisignature
// script. The keys are sorted in ascending order of their compressed
// representation, so the resulting script does not depend on the order of
// pubs given.
func CreateMultiSigRedeemScript(m int, pubs keys.PublicKeys) ([]byte, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: m is %d", ErrInvalidThreshold, m)
	}
	if m > len(pubs) {
		return nil, fmt.Errorf("%w: m is %d, but no more than %d keys given", ErrInvalidThreshold, m, len(pubs))
	}
	if len(pubs) > MaxMultisigKeys {
		return nil, fmt.Errorf("%w: %d keys is more than %d", ErrInvalidThreshold, len(pubs), MaxMultisigKeys)
	}

	buf := io.NewBufBinWriter()
	emit.Int(buf.BinWriter, int64(m))
	sorted := pubs.Copy()
	sorted.Sort()
	for _, pub := range sorted {
		emit.Bytes(buf.BinWriter, pub.Bytes())
	}
	emit.Int(buf.BinWriter, int64(len(pubs)))
	emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckMultisig)

	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Bytes(), nil
}

// CreateDefaultMultiSigRedeemScript creates an "m out of n" multisignature
// script using the BFT majority threshold, where n is the length of the
// given key list and m is n - (n-1)/3.
func CreateDefaultMultiSigRedeemScript(pubs keys.PublicKeys) ([]byte, error) {
	n := len(pubs)
	m := n - (n-1)/3
	return CreateMultiSigRedeemScript(m, pubs)
}

// CreateMajorityMultiSigRedeemScript creates an "m out of n" multisignature
// script using the simple majority threshold, n/2+1.
func CreateMajorityMultiSigRedeemScript(pubs keys.PublicKeys) ([]byte, error) {
	n := len(pubs)
	m := n/2 + 1
	return CreateMultiSigRedeemScript(m, pubs)
}

// IsSignatureContract checks whether the passed script is a signature check
// contract.
func IsSignatureContract(script []byte) bool {
	_, ok := ParseSignatureContract(script)
	return ok
}

// ParseSignatureContract parses a simple signature contract and returns the
// public key it uses.
func ParseSignatureContract(script []byte) ([]byte, bool) {
	if len(script) != 40 {
		return nil, false
	}
	if script[0] != byte(opcode.PUSHDATA1) || script[1] != 33 ||
		script[35] != byte(opcode.SYSCALL) ||
		interopIDFromScript(script[36:40]) != checkSigID {
		return nil, false
	}
	return script[2:35], true
}

// IsMultiSigContract checks whether the passed script is a multisignature
// check contract.
func IsMultiSigContract(script []byte) bool {
	_, _, ok := ParseMultiSigContract(script)
	return ok
}

// ParseMultiSigContract parses a multisignature contract and returns the
// number of signatures required and the public keys it uses (in the order
// they appear in the script).
func ParseMultiSigContract(script []byte) (int, [][]byte, bool) {
	var pubs [][]byte

	m, pos, ok := parseSmallInt(script, 0)
	if !ok || m < 1 || m > MaxMultisigKeys {
		return 0, nil, false
	}
	for pos+1 < len(script) && script[pos] == byte(opcode.PUSHDATA1) && script[pos+1] == 33 {
		if pos+35 > len(script) {
			return 0, nil, false
		}
		pubs = append(pubs, script[pos+2:pos+35])
		pos += 35
	}
	if len(pubs) < m || len(pubs) > MaxMultisigKeys {
		return 0, nil, false
	}
	n, pos, ok := parseSmallInt(script, pos)
	if !ok || n != len(pubs) {
		return 0, nil, false
	}
	if pos+5 != len(script) || script[pos] != byte(opcode.SYSCALL) ||
		interopIDFromScript(script[pos+1:pos+5]) != checkMultisigID {
		return 0, nil, false
	}
	return m, pubs, true
}

// parseSmallInt reads a non-negative integer push at the given position and
// returns its value along with the position of the next instruction.
func parseSmallInt(script []byte, pos int) (int, int, bool) {
	if pos >= len(script) {
		return 0, 0, false
	}
	op := opcode.Opcode(script[pos])
	switch {
	case op == opcode.PUSHINT8:
		if pos+2 > len(script) {
			return 0, 0, false
		}
		return int(script[pos+1]), pos + 2, true
	case op == opcode.PUSHINT16:
		if pos+3 > len(script) {
			return 0, 0, false
		}
		return int(script[pos+1]) | int(script[pos+2])<<8, pos + 3, true
	case op >= opcode.PUSH1 && op <= opcode.PUSH16:
		return int(op-opcode.PUSH0), pos + 1, true
	default:
		return 0, 0, false
	}
}

func interopIDFromScript(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
