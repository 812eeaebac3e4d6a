package groth16verifier

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/tornadopool/core/pkg/types"
)

// Proof is a parsed, wire-format Groth16 proof: A in G1 (64 bytes
// uncompressed), B in G2 (128 bytes uncompressed), C in G1 (64 bytes
// uncompressed), exactly as produced by circom/snarkjs and consumed by the
// groth16-solana verifier convention this pool follows.
type Proof struct {
	A [64]byte
	B [128]byte
	C [64]byte
}

// ParseProof splits a raw 256-byte proof blob into its A/B/C components
// (S4: proof.len() must be exactly 256).
func ParseProof(raw []byte) (Proof, error) {
	if len(raw) != types.ProofSize {
		return Proof{}, types.ErrInvalidProofLength
	}

	var p Proof
	copy(p.A[:], raw[0:64])
	copy(p.B[:], raw[64:192])
	copy(p.C[:], raw[192:256])
	return p, nil
}

// NegateA negates the proof's A point, required for circom/snarkjs
// compatibility with the pairing-check convention this verifier uses
// (e(-A,B)*e(alpha,beta)*e(vk_x,gamma)*e(C,delta) == 1). original_source's
// negate_proof_a flips to little-endian around the negation because
// arkworks (ark-bn254) is little-endian-native; gnark-crypto's G1Affine is
// big-endian-native, matching circom/snarkjs's own wire format directly
// (the same convention B, C, alpha, beta, gamma, delta and every VK point
// already use below with no reversal), so no endianness flip belongs here.
func NegateA(a [64]byte) ([64]byte, error) {
	var point bn254.G1Affine
	if err := point.Unmarshal(a[:]); err != nil {
		return [64]byte{}, types.ErrInvalidProofFormat
	}

	point.Neg(&point)

	negated := point.Marshal()
	if len(negated) != 64 {
		return [64]byte{}, types.ErrProofNegationFailed
	}

	var out [64]byte
	copy(out[:], negated)
	return out, nil
}
