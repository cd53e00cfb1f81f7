package crypto

import (
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
)

// Verifiable represents an object which can be verified. Its hash is
// combined with the network magic to produce the data that is actually
// signed and checked.
type Verifiable interface {
	hash.Hashable
}

// VerifiableDecodable represents an object which can be both verified and
// decoded from the given data. It's used by signature collection code that
// needs to reconstruct the object being signed.
type VerifiableDecodable interface {
	Verifiable
	EncodeHashableFields() ([]byte, error)
	DecodeHashableFields([]byte) error
}
