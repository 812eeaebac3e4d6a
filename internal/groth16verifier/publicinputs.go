// Package groth16verifier implements the withdrawal proof-verification
// pipeline: C4 encodes the eight public inputs, C5 normalizes the raw proof
// bytes for circom/snarkjs compatibility, C6 parses and validates the
// verifying-key blob, and C7 drives the final pairing check. Grounded on
// original_source/.../lib.rs's verify_proof/prepare_public_inputs/
// negate_proof_a/split_address_to_high_low, and on the teacher's
// internal/zkp/pedersen.go for direct gnark-crypto bn254 point handling.
package groth16verifier

import (
	"encoding/binary"

	"github.com/tornadopool/core/pkg/types"
)

// PublicInputs is the ordered set of field elements a withdrawal proof is
// checked against, matching spec.md §4.4's layout exactly: root,
// nullifierHash, recipientHigh, recipientLow, relayerHigh, relayerLow, fee,
// refund.
type PublicInputs [types.PublicInputCount][32]byte

// EncodePublicInputs builds the 8 public-input field elements for a
// withdrawal, splitting the two addresses into field-safe high/low halves
// (host addresses are wider than the BN254 scalar field) and encoding the
// two amounts as big-endian 32-byte integers.
func EncodePublicInputs(root, nullifierHash types.Hash, recipient types.Address, relayer types.Address, fee, refund uint64) PublicInputs {
	var inputs PublicInputs

	inputs[0] = root
	inputs[1] = nullifierHash

	recipientHigh, recipientLow := splitAddressToHighLow(recipient)
	inputs[2] = recipientHigh
	inputs[3] = recipientLow

	relayerHigh, relayerLow := splitAddressToHighLow(relayer)
	inputs[4] = relayerHigh
	inputs[5] = relayerLow

	inputs[6] = encodeU64As32Bytes(fee)
	inputs[7] = encodeU64As32Bytes(refund)

	return inputs
}

// splitAddressToHighLow splits a 32-byte host address into two field-safe
// 32-byte elements: high = zero-pad || first 16 bytes, low = zero-pad ||
// last 16 bytes. Each half fits comfortably under the ~254-bit BN254
// scalar field modulus even though the full address does not.
func splitAddressToHighLow(addr types.Address) (high, low [32]byte) {
	copy(high[16:32], addr[0:16])
	copy(low[16:32], addr[16:32])
	return high, low
}

// ReconstructAddress is the inverse of splitAddressToHighLow, used by
// callers that need to recover an address from its encoded halves (e.g.
// test fixtures and off-chain tooling).
func ReconstructAddress(high, low [32]byte) types.Address {
	var addr types.Address
	copy(addr[0:16], high[16:32])
	copy(addr[16:32], low[16:32])
	return addr
}

// encodeU64As32Bytes encodes v into the low 8 bytes of a 32-byte big-endian
// buffer, matching original_source's encode_u64_as_32_bytes.
func encodeU64As32Bytes(v uint64) [32]byte {
	var out [32]byte
	binary.BigEndian.PutUint64(out[24:32], v)
	return out
}
