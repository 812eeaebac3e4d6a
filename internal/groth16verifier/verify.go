package groth16verifier

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/tornadopool/core/pkg/types"
)

// WithdrawalProofInput bundles everything the C7 driver needs to check a
// withdrawal proof against a pool's stored verifying key.
type WithdrawalProofInput struct {
	RawProof      [types.ProofSize]byte
	Root          types.Hash
	NullifierHash types.Hash
	Recipient     types.Address
	Relayer       types.Address // the zero address when no relayer was named
	Fee           uint64
	Refund        uint64
}

// Verify runs the full C4-C7 pipeline: parse the proof, negate A, encode
// the public inputs, assemble the prepared inputs against the verifying
// key's IC basis, and run the final pairing check. It is the sole entry
// point internal/pool calls for withdrawal proof verification (I8).
func Verify(vk *VerifyingKey, in WithdrawalProofInput) error {
	proof, err := ParseProof(in.RawProof[:])
	if err != nil {
		return err
	}

	negA, err := NegateA(proof.A)
	if err != nil {
		return err
	}

	publicInputs := EncodePublicInputs(in.Root, in.NullifierHash, in.Recipient, in.Relayer, in.Fee, in.Refund)

	if len(vk.IC) != len(publicInputs)+1 {
		return types.ErrVerifierCreationFailed
	}

	var negAPoint, cPoint bn254.G1Affine
	if err := negAPoint.Unmarshal(negA[:]); err != nil {
		return types.ErrInvalidProofFormat
	}
	if err := cPoint.Unmarshal(proof.C[:]); err != nil {
		return types.ErrInvalidProofFormat
	}

	var bPoint bn254.G2Affine
	if err := bPoint.Unmarshal(proof.B[:]); err != nil {
		return types.ErrInvalidProofFormat
	}

	var alphaPoint bn254.G1Affine
	var betaPoint, gammaPoint, deltaPoint bn254.G2Affine
	if err := alphaPoint.Unmarshal(vk.AlphaG1[:]); err != nil {
		return types.ErrInvalidVerifyingKey
	}
	if err := betaPoint.Unmarshal(vk.BetaG2[:]); err != nil {
		return types.ErrInvalidVerifyingKey
	}
	if err := gammaPoint.Unmarshal(vk.GammaG2[:]); err != nil {
		return types.ErrInvalidVerifyingKey
	}
	if err := deltaPoint.Unmarshal(vk.DeltaG2[:]); err != nil {
		return types.ErrInvalidVerifyingKey
	}

	vkX, err := preparedInputs(vk, publicInputs)
	if err != nil {
		return err
	}

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{negAPoint, alphaPoint, *vkX, cPoint},
		[]bn254.G2Affine{bPoint, betaPoint, gammaPoint, deltaPoint},
	)
	if err != nil {
		return types.ErrVerifierCreationFailed
	}
	if !ok {
		return types.ErrInvalidProof
	}
	return nil
}

// preparedInputs computes vk_x = IC[0] + sum_i(IC[i+1] * publicInput[i]),
// the standard Groth16 linear combination of the verifying key's Lagrange
// basis with the public input scalars.
func preparedInputs(vk *VerifyingKey, publicInputs PublicInputs) (*bn254.G1Affine, error) {
	var acc bn254.G1Affine
	if err := acc.Unmarshal(vk.IC[0][:]); err != nil {
		return nil, types.ErrInvalidVerifyingKey
	}

	for i, input := range publicInputs {
		var basis bn254.G1Affine
		if err := basis.Unmarshal(vk.IC[i+1][:]); err != nil {
			return nil, types.ErrInvalidVerifyingKey
		}

		scalar, err := scalarFromFieldElement(input)
		if err != nil {
			return nil, err
		}

		var term bn254.G1Affine
		term.ScalarMultiplication(&basis, scalar)
		acc.Add(&acc, &term)
	}

	return &acc, nil
}

// scalarFromFieldElement reduces a 32-byte big-endian public input into a
// canonical BN254 scalar, rejecting values that overflow what the curve's
// scalar field representation can hold.
func scalarFromFieldElement(input [32]byte) (*big.Int, error) {
	v := new(big.Int).SetBytes(input[:])
	if v.Cmp(fr.Modulus()) >= 0 {
		return nil, types.ErrVerifierCreationFailed
	}
	return v, nil
}
