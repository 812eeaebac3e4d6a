package hostsim

import (
	"crypto/sha256"

	"github.com/tornadopool/core/pkg/types"
)

// addressFromSeed derives a deterministic address from a single namespace
// seed, the same sha256-of-seeds scheme a real host's program-derived
// address facility would use (spec.md §6's "Derived addresses").
func addressFromSeed(seed string) types.Address {
	sum := sha256.Sum256([]byte(seed))
	var addr types.Address
	copy(addr[:], sum[:])
	return addr
}

// addressFromSeed2 derives a deterministic address from a namespace seed
// plus a 32-byte discriminator (a parent address or a nullifier hash).
func addressFromSeed2(seed string, discriminator types.Address) types.Address {
	h := sha256.New()
	h.Write([]byte(seed))
	h.Write(discriminator[:])
	sum := h.Sum(nil)
	var addr types.Address
	copy(addr[:], sum[:])
	return addr
}
