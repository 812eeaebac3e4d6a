// Package types defines the core data model for the shielded pool: hashes,
// addresses, pool/vault state, and the events a deposit or withdrawal emits.
package types

import "encoding/hex"

const (
	// HashSize is the size of a field-element hash in bytes (BN254 Fr, big-endian).
	HashSize = 32

	// AddressSize is the size of a host account address in bytes. The host
	// is a Solana-style chain, so addresses are 32-byte pubkeys, not the
	// 20-byte EVM-style addresses the teacher's chain used.
	AddressSize = 32
)

// Hash is a 32-byte big-endian encoding of a BN254 scalar field element.
type Hash [HashSize]byte

// Address is a 32-byte host account address.
type Address [AddressSize]byte

// EmptyHash is the all-zero hash. is_known_root treats it as the sentinel
// for "no root" and always rejects it (P3).
var EmptyHash = Hash{}

// EmptyAddress is the all-zero address, used as the relayer placeholder
// when a withdrawal names no relayer.
var EmptyAddress = Address{}

// IsZero reports whether h is the all-zero sentinel hash.
func (h Hash) IsZero() bool {
	return h == EmptyHash
}

// Bytes returns the hash's bytes as a slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the 0x-prefixed hex encoding of h.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// HashFromBytes builds a Hash from a byte slice, left-padding with zeros if
// shorter than HashSize and truncating from the left (keeping the low
// bytes) if longer.
func HashFromBytes(b []byte) Hash {
	var h Hash
	if len(b) >= HashSize {
		copy(h[:], b[len(b)-HashSize:])
		return h
	}
	copy(h[HashSize-len(b):], b)
	return h
}

// IsZero reports whether a is the all-zero sentinel address.
func (a Address) IsZero() bool {
	return a == EmptyAddress
}

// Bytes returns the address's bytes as a slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the 0x-prefixed hex encoding of a.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AddressFromBytes builds an Address from a byte slice of exactly AddressSize.
func AddressFromBytes(b []byte) (Address, bool) {
	var a Address
	if len(b) != AddressSize {
		return a, false
	}
	copy(a[:], b)
	return a, true
}
