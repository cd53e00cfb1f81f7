// Package base58 wraps generic base58 encoder with NEO-specific checksummed
// variants (Base58Check).
package base58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/mr-tron/base58"
)

// Encode encodes a byte slice to be presented as just base58.
func Encode(bytes []byte) string {
	return base58.Encode(bytes)
}

// Decode decodes a base58 string to a byte slice.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckEncode encodes a byte slice into a base58 string with a 4-byte
// double-SHA256 checksum appended.
func CheckEncode(b []byte) string {
	b = append(b, hash.Checksum(b)...)
	return base58.Encode(b)
}

// CheckDecode decodes the given string and checks the embedded checksum,
// returning the payload without it.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 5 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	if !bytes.Equal(hash.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, fmt.Errorf("invalid base-58 check string: invalid checksum")
	}

	// Strip the 4 byte long hash.
	b = b[:len(b)-4]

	return b, nil
}
