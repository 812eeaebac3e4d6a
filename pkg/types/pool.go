package types

// Protocol constants (spec.md §6).
const (
	// TreeDepth is the fixed depth of the commitment Merkle tree (L).
	TreeDepth = 20

	// RootHistorySize is the size of the rolling root-history ring (W).
	RootHistorySize = 30

	// ProofSize is the wire size of a Groth16 proof: A(64) || B(128) || C(64).
	ProofSize = 256

	// PublicInputCount is the number of public field elements a withdrawal
	// proof is checked against (root, nullifierHash, recipientHigh/Low,
	// relayerHigh/Low, fee, refund).
	PublicInputCount = 8

	// MaxVKPublicInputs is the largest nr_pubinputs a verifying-key blob
	// may declare before it is rejected as malformed (C6).
	MaxVKPublicInputs = 100
)

// PoolState is the singleton account created by initialize and mutated by
// deposit/withdraw. It never holds leaves directly — only the Merkle
// frontier, the root-history ring, and the verifying-key blob.
type PoolState struct {
	// Authority is the identifier allowed to call migrate_to_vault.
	Authority Address

	// Denomination is the fixed deposit/withdrawal amount, in the host's
	// native-token base units.
	Denomination uint64

	// Depth is the Merkle tree depth this pool was initialized with
	// (always TreeDepth for production pools; kept explicit so a decoded
	// pool can assert it matches the compiled-in constant).
	Depth int

	// FilledSubtrees is the left-sibling frontier, one hash per tree level.
	FilledSubtrees []Hash

	// Zeros is the precomputed zero-subtree chain, one hash per level,
	// with Zeros[0] = Poseidon(0).
	Zeros []Hash

	// CurrentRoot is the root after the last insertion.
	CurrentRoot Hash

	// NextIndex is the number of leaves inserted so far.
	NextIndex uint64

	// Roots is the circular root-history buffer.
	Roots [RootHistorySize]Hash

	// CurrentRootIndex is the cursor into Roots of the most recently
	// written root.
	CurrentRootIndex uint32

	// VerifyingKeyBlob is the raw trusted-setup VK bytes decoded by C6.
	// It is the only VK ever used at withdrawal time (I8).
	VerifyingKeyBlob []byte
}

// VaultState is the segregated custody account holding a pool's funds,
// distinct from PoolState's own account.
type VaultState struct {
	// Balance is the vault's current native-token balance.
	Balance uint64

	// RentExemptMinimum is the floor the vault's balance must never drop
	// below (I5).
	RentExemptMinimum uint64

	// Bump is the PDA bump seed the vault was derived with.
	Bump uint8
}

// NullifierRecord is an existence-only tombstone: its presence for a given
// nullifier hash is the "spent" bit (I4). It carries no payload beyond the
// discriminator.
type NullifierRecord struct {
	Tombstone bool
}

// DepositArgs is the argument list for the deposit instruction.
type DepositArgs struct {
	Commitment Hash
}

// WithdrawArgs is the argument list for the withdraw instruction.
type WithdrawArgs struct {
	Proof          [ProofSize]byte
	Root           Hash
	NullifierHash  Hash
	Recipient      Address
	Relayer        *Address // nil when no relayer is named
	RelayerAccount *Address // the account actually supplied by the caller, for the RelayerMismatch check
	VaultAccount   Address  // the vault account actually supplied by the caller, for validate_vault_pda
	Fee            uint64
	Refund         uint64
}

// HasRelayer reports whether a relayer was named on this withdrawal.
func (w *WithdrawArgs) HasRelayer() bool {
	return w.Relayer != nil && !w.Relayer.IsZero()
}
