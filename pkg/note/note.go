// Package note implements off-chain deposit-note generation: the secret
// (nullifier, secret) pair a depositor must keep to later prove
// membership and derive a withdrawal's nullifier hash. Grounded on
// Alex110709-obsidian-core's crypto/signature.go bip39 usage
// (GenerateMnemonic/MnemonicToSeed), generalized from an ECDSA seed phrase
// to a Poseidon-commitment note: the standard 64-byte BIP39 seed is split
// in half to give the note's two field elements, so the whole note backs
// up as a single human-writable mnemonic.
package note

import (
	"errors"

	"github.com/tyler-smith/go-bip39"

	"github.com/tornadopool/core/internal/poseidon"
	"github.com/tornadopool/core/pkg/types"
)

// ErrInvalidMnemonic is returned when a mnemonic fails BIP39 validation.
var ErrInvalidMnemonic = errors.New("note: invalid mnemonic")

// Note is the secret witness pair behind a commitment: a depositor
// generates one before calling deposit, and must retain it to later
// withdraw (spec.md glossary's "Commitment"/"Nullifier").
type Note struct {
	Nullifier types.Hash
	Secret    types.Hash
}

// Generate creates a fresh note from 256 bits of system entropy, returning
// both the note and its 24-word mnemonic encoding.
func Generate() (*Note, string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return nil, "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, "", err
	}
	n, err := FromMnemonic(mnemonic)
	if err != nil {
		return nil, "", err
	}
	return n, mnemonic, nil
}

// FromMnemonic reconstructs a note from its mnemonic backup, deterministically:
// the BIP39 seed derivation is stable, so the same words always yield the
// same (nullifier, secret) pair.
func FromMnemonic(mnemonic string) (*Note, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, ErrInvalidMnemonic
	}

	var n Note
	copy(n.Nullifier[:], seed[0:32])
	copy(n.Secret[:], seed[32:64])
	return &n, nil
}

// Commitment computes the deposit leaf value Poseidon(nullifier, secret).
func (n *Note) Commitment() (types.Hash, error) {
	return poseidon.Hash2(n.Nullifier, n.Secret)
}

// NullifierHash computes the withdrawal-time spent-set key Poseidon(nullifier).
func (n *Note) NullifierHash() (types.Hash, error) {
	return poseidon.Hash1(n.Nullifier)
}
