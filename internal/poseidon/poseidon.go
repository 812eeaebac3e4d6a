// Package poseidon implements the circom-compatible Poseidon hash primitive
// (C1) over the BN254 scalar field: arity-1 and arity-2 permutations with 8
// full rounds, 57 partial rounds, and an x^5 S-box, matching the circomlib
// parameter set spec.md §4.1 specifies. Byte-for-byte reproducibility with
// the prover's hash is a correctness requirement (I2): drift here would
// silently corrupt every future Merkle root and nullifier a prover computes
// against this core.
//
// The permutation itself is delegated to github.com/iden3/go-iden3-crypto,
// the canonical Go port of circomlib's Poseidon (same round counts, same
// round-constant/MDS generation) rather than re-derived here, so this
// package is a thin field-encoding shim around it.
package poseidon

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/tornadopool/core/pkg/types"
)

// ErrTooManyInputs is returned by hashN for zero or more than two inputs
// (only arity 1 and 2 are used anywhere in this pool).
var ErrTooManyInputs = errors.New("poseidon: only 1 or 2 inputs are supported")

// Hash1 computes Poseidon(x) with the arity-1 (t=2) permutation. Used for
// the leaf-level of the zero-subtree chain (zeros[0] = Poseidon(0)) and for
// deriving a nullifier hash from a nullifier.
func Hash1(x types.Hash) (types.Hash, error) {
	return hashN(x)
}

// Hash2 computes Poseidon(l, r) with the arity-2 (t=3) permutation. Used for
// every non-leaf Merkle node and for the commitment Poseidon(nullifier, secret).
func Hash2(l, r types.Hash) (types.Hash, error) {
	return hashN(l, r)
}

func hashN(inputs ...types.Hash) (types.Hash, error) {
	if len(inputs) == 0 || len(inputs) > 2 {
		return types.Hash{}, ErrTooManyInputs
	}

	ins := make([]*big.Int, len(inputs))
	for i, h := range inputs {
		ins[i] = reduceToField(h)
	}

	out, err := poseidon.Hash(ins)
	if err != nil {
		return types.Hash{}, err
	}

	return fieldToHash(out), nil
}

// reduceToField interprets a 32-byte big-endian buffer as an integer and
// reduces it modulo the BN254 scalar field order, matching spec.md §4.1's
// "inputs are interpreted modulo the BN254 scalar field order".
func reduceToField(h types.Hash) *big.Int {
	var e fr.Element
	e.SetBytes(h[:])
	return e.BigInt(new(big.Int))
}

// fieldToHash encodes a field element as its canonical (already-reduced)
// 32-byte big-endian representative.
func fieldToHash(x *big.Int) types.Hash {
	var e fr.Element
	e.SetBigInt(x)
	b := e.Bytes() // canonical big-endian [32]byte
	return types.Hash(b)
}
