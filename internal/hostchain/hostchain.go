// Package hostchain defines the boundary between the pool core and the
// host runtime that spec.md §1 places out of scope: persistent account
// storage, native-token transfer, and deterministic address derivation.
// internal/pool depends only on these interfaces; internal/hostsim
// supplies concrete implementations for the demo CLI and tests.
package hostchain

import (
	"context"
	"errors"

	"github.com/tornadopool/core/pkg/types"
)

// ErrAccountExists is returned by AccountCreator.CreateAccount when the
// target address is already occupied — the generic host-runtime
// primitive that internal/pool's nullifier directory (C9) builds its
// uniqueness guarantee on top of.
var ErrAccountExists = errors.New("hostchain: account already exists at this address")

// PoolAccountStore persists the singleton PoolState and the VaultState on
// behalf of the core (spec.md §3's "Pool state", "Vault").
type PoolAccountStore interface {
	// CreatePool writes a brand-new PoolState, failing with
	// types.ErrPoolAlreadyExists if one is already present.
	CreatePool(ctx context.Context, state *types.PoolState) error

	// LoadPool returns the current PoolState, or types.ErrPoolNotFound.
	LoadPool(ctx context.Context) (*types.PoolState, error)

	// SavePool persists a mutated PoolState (after a deposit).
	SavePool(ctx context.Context, state *types.PoolState) error

	// CreateVault writes the vault account, seeded at exactly its
	// rent-exempt minimum (spec.md §4.8's initialize).
	CreateVault(ctx context.Context, vault *types.VaultState) error

	// LoadVault returns the current VaultState.
	LoadVault(ctx context.Context) (*types.VaultState, error)

	// SaveVault persists a mutated VaultState.
	SaveVault(ctx context.Context, vault *types.VaultState) error
}

// AccountCreator is the generic host-runtime primitive C9 is built on: an
// atomic, collision-failing account creation at a deterministic address.
// spec.md §4.9: "The host runtime's account-creation instruction
// atomically fails if the address is already occupied — this IS the
// uniqueness check, requiring no read-before-write."
type AccountCreator interface {
	// CreateAccount creates an account at addr, paid for by payer,
	// returning ErrAccountExists if one is already there.
	CreateAccount(ctx context.Context, addr types.Address, payer types.Address) error

	// AccountExists reports whether an account has been created at addr,
	// for read-only existence checks that don't need the create attempt.
	AccountExists(ctx context.Context, addr types.Address) (bool, error)
}

// NativeTransfer moves native-token balance between accounts the way the
// host's own transfer instruction would (spec.md §4.10: "no direct
// balance mutation; all movement goes through the host's transfer
// primitive"). Implementations are expected to be atomic with the rest of
// the transaction the caller is assembling.
type NativeTransfer interface {
	// Transfer moves amount units from `from` to `to`, failing if `from`
	// would drop below zero.
	Transfer(ctx context.Context, from, to types.Address, amount uint64) error

	// BalanceOf returns an account's current native-token balance.
	BalanceOf(ctx context.Context, account types.Address) (uint64, error)

	// IsExecutable reports whether an account is a program/executable
	// account, used to reject withdrawals to non-wallet recipients
	// (spec.md §4.8 step 8, *BadRecipient*).
	IsExecutable(ctx context.Context, account types.Address) (bool, error)

	// OwnerOf returns the program that owns account, for validate_vault_pda's
	// owner check (spec.md §4.10).
	OwnerOf(ctx context.Context, account types.Address) (types.Address, error)
}

// AddressBook derives the pool's well-known account addresses from their
// fixed namespace seeds (spec.md §6's "Derived addresses"). The core
// never re-derives these itself; it only asks the host to validate that a
// supplied account matches the expected derivation (spec.md §4.10).
type AddressBook interface {
	// PoolStateAddress returns the deterministic address for the
	// singleton pool-state account (namespace "tornado").
	PoolStateAddress(ctx context.Context) (types.Address, error)

	// VaultAddress returns the deterministic address for the vault
	// account derived from the pool-state address (namespace "vault").
	VaultAddress(ctx context.Context, poolState types.Address) (types.Address, uint8, error)

	// NullifierAddress returns the deterministic address a nullifier
	// record would occupy (namespace "nullifier" + nullifier_hash).
	NullifierAddress(ctx context.Context, nullifierHash types.Hash) (types.Address, error)

	// NativeTransferProgram returns the address of the host's native-transfer
	// program, the expected owner of the vault account (spec.md §4.10's
	// validate_vault_pda check (b)).
	NativeTransferProgram(ctx context.Context) (types.Address, error)
}
