// Package bigint implements the minimal two's-complement little-endian
// encoding of arbitrary precision integers used by the NeoVM and contract
// parameters.
package bigint

import (
	"math/big"

	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
)

// MaxBytesLen is the maximum length of a serialized integer suitable for
// the NeoVM.
const MaxBytesLen = 33 // 32 bytes for the number and 1 for the sign

var bigOne = big.NewInt(1)

// FromBytesUnsigned converts data in little-endian format to an unsigned integer.
func FromBytesUnsigned(data []byte) *big.Int {
	bs := util.ArrayReverse(data)
	return new(big.Int).SetBytes(bs)
}

// FromBytes converts data in little-endian two's-complement format to an
// integer. An empty slice is a zero.
func FromBytes(data []byte) *big.Int {
	if len(data) == 0 {
		return big.NewInt(0)
	}

	n := new(big.Int).SetBytes(util.ArrayReverse(data))
	if data[len(data)-1]&0x80 != 0 {
		// Negative number: subtract 2^(8*len).
		sub := new(big.Int).Lsh(bigOne, uint(8*len(data)))
		n.Sub(n, sub)
	}
	return n
}

// ToBytes converts an integer to a minimal-length little-endian
// two's-complement byte slice. Zero is represented by an empty slice.
func ToBytes(n *big.Int) []byte {
	return ToPreallocatedBytes(n, []byte{})
}

// ToPreallocatedBytes converts an integer to a slice in little-endian
// two's-complement format using the given byte buffer.
func ToPreallocatedBytes(n *big.Int, data []byte) []byte {
	sign := n.Sign()
	if sign == 0 {
		return data[:0]
	}

	if sign > 0 {
		b := util.ArrayReverse(n.Bytes())
		if b[len(b)-1]&0x80 != 0 {
			// High bit clashes with the sign, pad with one zero byte.
			b = append(b, 0)
		}
		return append(data[:0], b...)
	}

	abs := new(big.Int).Neg(n)
	size := (abs.BitLen() + 7) / 8
	if size == 0 {
		size = 1
	}
	// -2^(8*size-1) is the smallest value fitting in size bytes.
	limit := new(big.Int).Lsh(bigOne, uint(8*size-1))
	if abs.Cmp(limit) > 0 {
		size++
	}
	val := new(big.Int).Lsh(bigOne, uint(8*size))
	val.Add(val, n)

	b := util.ArrayReverse(val.Bytes())
	data = append(data[:0], b[:size]...)
	return data
}
