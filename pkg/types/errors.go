package types

import "errors"

// Error kinds for the shielded pool core. Every one is terminal: the host
// unwinds the entire transaction on any of them, so none is retried inside
// the core (spec.md §7).
var (
	// ErrFeeExceedsDenomination: fee > denomination.
	ErrFeeExceedsDenomination = errors.New("fee exceeds denomination")

	// ErrNoteAlreadySpent: nullifier record creation collided with an
	// existing record.
	ErrNoteAlreadySpent = errors.New("note already spent")

	// ErrUnknownRoot: root absent from the last W accepted roots, or root
	// is the all-zero sentinel.
	ErrUnknownRoot = errors.New("unknown merkle root")

	// ErrInvalidProofLength: proof.len() != 256.
	ErrInvalidProofLength = errors.New("invalid proof length")

	// ErrInvalidProofFormat: proof A/B/C fails curve-point deserialization.
	ErrInvalidProofFormat = errors.New("invalid proof format")

	// ErrProofNegationFailed: serialization of -A failed.
	ErrProofNegationFailed = errors.New("proof negation failed")

	// ErrVerifierCreationFailed: the Groth16 driver rejected inputs
	// (e.g. a public input scalar out of range).
	ErrVerifierCreationFailed = errors.New("verifier creation failed")

	// ErrInvalidProof: the pairing check returned false.
	ErrInvalidProof = errors.New("invalid proof")

	// ErrTreeFull: next_index == 2^L.
	ErrTreeFull = errors.New("merkle tree is full")

	// ErrRelayerMismatch: the provided relayer account != the relayer
	// argument bound into the proof.
	ErrRelayerMismatch = errors.New("relayer account does not match proof-bound relayer")

	// ErrRecipientCannotBeRelayer: recipient == relayer with positive fee.
	ErrRecipientCannotBeRelayer = errors.New("recipient cannot be the relayer when a fee is charged")

	// ErrRelayerAccountMissing: relayer argument set but no account provided.
	ErrRelayerAccountMissing = errors.New("relayer account missing")

	// ErrInvalidVerifyingKey: VK blob fails size/bounds/zero-sentinel checks.
	ErrInvalidVerifyingKey = errors.New("invalid verifying key")

	// ErrVaultMismatch: provided vault account != derived address, or wrong bump.
	ErrVaultMismatch = errors.New("vault account mismatch")

	// ErrVaultNotSystemOwned: vault's owner field is unexpected.
	ErrVaultNotSystemOwned = errors.New("vault is not owned by the native transfer program")

	// ErrVaultBelowRent: payout would drop the vault under its rent-exempt minimum.
	ErrVaultBelowRent = errors.New("payout would drop vault below rent-exempt minimum")

	// ErrBadRecipient: recipient is an executable/program account.
	ErrBadRecipient = errors.New("recipient is an executable account")

	// ErrPoolAlreadyExists: initialize called on a pool that already exists.
	ErrPoolAlreadyExists = errors.New("pool already exists")

	// ErrPoolNotFound: an operation referenced a pool that has not been initialized.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrUnauthorized: caller is not the pool authority for an authority-gated operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNothingToMigrate: migrate_to_vault found no surplus above rent-exempt minimum.
	ErrNothingToMigrate = errors.New("nothing to migrate")
)
