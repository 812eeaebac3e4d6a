package groth16verifier

import (
	"encoding/binary"

	"github.com/tornadopool/core/pkg/types"
)

// VerifyingKey is a parsed Groth16 verifying key, in the groth16-solana wire
// layout spec.md §4.6 specifies: nr_pubinputs (u32 LE), then alpha_g1 (64),
// beta_g2 (128), gamma_g2 (128), delta_g2 (128), and nr_pubinputs+1
// 64-byte G1 points for the IC (Lagrange basis) array. Grounded on
// original_source/.../verifying_key.rs's Groth16Verifyingkey struct.
type VerifyingKey struct {
	NrPublicInputs uint32
	AlphaG1        [64]byte
	BetaG2         [128]byte
	GammaG2        [128]byte
	DeltaG2        [128]byte
	IC             [][64]byte // length NrPublicInputs+1
}

const vkFixedHeaderSize = 4 + 64 + 128 + 128 + 128 // nr_pubinputs + alpha + beta + gamma + delta

// ParseVerifyingKey decodes a raw VK blob, rejecting anything that fails
// the size/bounds checks C6 requires (I8: a malformed VK must never reach
// the pairing check).
func ParseVerifyingKey(raw []byte) (*VerifyingKey, error) {
	if len(raw) < vkFixedHeaderSize {
		return nil, types.ErrInvalidVerifyingKey
	}

	vk := &VerifyingKey{}
	off := 0

	vk.NrPublicInputs = binary.LittleEndian.Uint32(raw[off : off+4])
	off += 4

	if vk.NrPublicInputs == 0 || vk.NrPublicInputs > types.MaxVKPublicInputs {
		return nil, types.ErrInvalidVerifyingKey
	}
	if int(vk.NrPublicInputs) != types.PublicInputCount {
		return nil, types.ErrInvalidVerifyingKey
	}

	copy(vk.AlphaG1[:], raw[off:off+64])
	off += 64
	copy(vk.BetaG2[:], raw[off:off+128])
	off += 128
	copy(vk.GammaG2[:], raw[off:off+128])
	off += 128
	copy(vk.DeltaG2[:], raw[off:off+128])
	off += 128

	expectedICCount := int(vk.NrPublicInputs) + 1
	expectedTotal := vkFixedHeaderSize + expectedICCount*64
	if len(raw) != expectedTotal {
		return nil, types.ErrInvalidVerifyingKey
	}

	vk.IC = make([][64]byte, expectedICCount)
	for i := 0; i < expectedICCount; i++ {
		copy(vk.IC[i][:], raw[off:off+64])
		off += 64
	}

	if allZero(vk.AlphaG1[:]) || allZero(vk.BetaG2[:]) || allZero(vk.GammaG2[:]) || allZero(vk.DeltaG2[:]) {
		return nil, types.ErrInvalidVerifyingKey
	}

	return vk, nil
}

// Bytes re-serializes the verifying key to its wire format, the inverse of
// ParseVerifyingKey.
func (vk *VerifyingKey) Bytes() []byte {
	out := make([]byte, 0, vkFixedHeaderSize+len(vk.IC)*64)

	var nrBuf [4]byte
	binary.LittleEndian.PutUint32(nrBuf[:], vk.NrPublicInputs)
	out = append(out, nrBuf[:]...)
	out = append(out, vk.AlphaG1[:]...)
	out = append(out, vk.BetaG2[:]...)
	out = append(out, vk.GammaG2[:]...)
	out = append(out, vk.DeltaG2[:]...)
	for _, ic := range vk.IC {
		out = append(out, ic[:]...)
	}
	return out
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
