// Package pool implements the C8 pool state machine, built directly on
// C2/C3 (internal/merkletree), C4-C7 (internal/groth16verifier), C9's
// nullifier-claim contract and C10's vault discipline (both realized
// through internal/hostchain). Grounded on the teacher's
// internal/zkp/transaction.go ShieldedPool.ProcessTransaction for the
// overall anchor-check/nullifier-check/verify/settle control flow, and on
// original_source/.../lib.rs's withdraw instruction for the exact ordered
// checks.
package pool

import (
	"context"
	"time"

	"github.com/tornadopool/core/internal/groth16verifier"
	"github.com/tornadopool/core/internal/hostchain"
	"github.com/tornadopool/core/internal/merkletree"
	"github.com/tornadopool/core/pkg/types"
)

// Pool drives the three callable operations spec.md §6 names
// (initialize/deposit/withdraw) plus migrate_to_vault, against the
// hostchain collaborator interfaces.
type Pool struct {
	store      hostchain.PoolAccountStore
	transfer   hostchain.NativeTransfer
	addresses  hostchain.AddressBook
	nullifiers *NullifierDirectory
}

// New builds a Pool over the given host collaborators.
func New(store hostchain.PoolAccountStore, transfer hostchain.NativeTransfer, addresses hostchain.AddressBook, accounts hostchain.AccountCreator) *Pool {
	return &Pool{
		store:      store,
		transfer:   transfer,
		addresses:  addresses,
		nullifiers: NewNullifierDirectory(addresses, accounts),
	}
}

// Initialize creates the pool state and vault accounts (spec.md §4.8).
// The vault is seeded with exactly its rent-exempt minimum; the pool
// state starts with a fresh, empty Merkle tree and root history.
func (p *Pool) Initialize(ctx context.Context, authority types.Address, denomination uint64, vkBlob []byte, rentExemptMinimum uint64) error {
	if _, err := groth16verifier.ParseVerifyingKey(vkBlob); err != nil {
		return err
	}

	tree, err := merkletree.New(types.TreeDepth)
	if err != nil {
		return err
	}
	roots := merkletree.NewRootHistory(tree.Root())

	poolAddr, err := p.addresses.PoolStateAddress(ctx)
	if err != nil {
		return err
	}
	_, bump, err := p.addresses.VaultAddress(ctx, poolAddr)
	if err != nil {
		return err
	}

	state := &types.PoolState{
		Authority:        authority,
		Denomination:     denomination,
		Depth:            types.TreeDepth,
		FilledSubtrees:   tree.FilledSubtrees(),
		Zeros:            tree.Zeros(),
		CurrentRoot:      tree.Root(),
		NextIndex:        0,
		Roots:            roots.Roots(),
		CurrentRootIndex: roots.CurrentIndex(),
		VerifyingKeyBlob: vkBlob,
	}
	if err := p.store.CreatePool(ctx, state); err != nil {
		return err
	}

	vault := &types.VaultState{
		Balance:           rentExemptMinimum,
		RentExemptMinimum: rentExemptMinimum,
		Bump:              bump,
	}
	return p.store.CreateVault(ctx, vault)
}

// Deposit moves denomination units from the depositor into the vault,
// inserts the commitment into the Merkle tree, and advances the root
// history (spec.md §4.8's deposit).
func (p *Pool) Deposit(ctx context.Context, depositor types.Address, commitment types.Hash) (*types.DepositEvent, error) {
	state, err := p.store.LoadPool(ctx)
	if err != nil {
		return nil, err
	}

	vaultAddr, err := p.vaultAddress(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.transfer.Transfer(ctx, depositor, vaultAddr, state.Denomination); err != nil {
		return nil, err
	}

	tree := merkletree.Restore(state.Depth, state.FilledSubtrees, state.Zeros, state.CurrentRoot, state.NextIndex)
	leafIndex, err := tree.Insert(commitment)
	if err != nil {
		// Tree full: roll back the transfer we just made.
		_ = p.transfer.Transfer(ctx, vaultAddr, depositor, state.Denomination)
		return nil, err
	}

	roots := merkletree.RestoreRootHistory(state.Roots, state.CurrentRootIndex)
	roots.Push(tree.Root())

	state.FilledSubtrees = tree.FilledSubtrees()
	state.CurrentRoot = tree.Root()
	state.NextIndex = tree.NextIndex()
	state.Roots = roots.Roots()
	state.CurrentRootIndex = roots.CurrentIndex()

	if err := p.store.SavePool(ctx, state); err != nil {
		return nil, err
	}

	// LoadVault reads the host balance, which the transfer above has
	// already credited with the denomination.
	vault, err := p.store.LoadVault(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.store.SaveVault(ctx, vault); err != nil {
		return nil, err
	}

	return &types.DepositEvent{
		Commitment: commitment,
		LeafIndex:  uint32(leafIndex),
		Timestamp:  time.Now().Unix(),
	}, nil
}

// Withdraw runs the 12-step ordered check sequence spec.md §4.8
// specifies, failing fast on the first violated invariant.
func (p *Pool) Withdraw(ctx context.Context, submitter types.Address, args *types.WithdrawArgs) (*types.WithdrawalEvent, error) {
	state, err := p.store.LoadPool(ctx)
	if err != nil {
		return nil, err
	}

	// 1. fee <= denomination
	if args.Fee > state.Denomination {
		return nil, types.ErrFeeExceedsDenomination
	}

	// 2. atomically claim the nullifier before any proof work (C9).
	if err := p.nullifiers.Claim(ctx, args.NullifierHash, submitter); err != nil {
		return nil, err
	}

	// 3. root must be in the history window.
	roots := merkletree.RestoreRootHistory(state.Roots, state.CurrentRootIndex)
	if !roots.IsKnown(args.Root) {
		return nil, types.ErrUnknownRoot
	}

	// 4. decode the stored VK (C6).
	vk, err := groth16verifier.ParseVerifyingKey(state.VerifyingKeyBlob)
	if err != nil {
		return nil, err
	}

	// 5-6. encode public inputs, normalize and verify the proof (C4/C5/C7).
	relayer := types.EmptyAddress
	if args.HasRelayer() {
		relayer = *args.Relayer
	}
	if err := groth16verifier.Verify(vk, groth16verifier.WithdrawalProofInput{
		RawProof:      args.Proof,
		Root:          args.Root,
		NullifierHash: args.NullifierHash,
		Recipient:     args.Recipient,
		Relayer:       relayer,
		Fee:           args.Fee,
		Refund:        args.Refund,
	}); err != nil {
		return nil, err
	}

	// 7. validate the vault address derivation (C10).
	vault, err := p.store.LoadVault(ctx)
	if err != nil {
		return nil, err
	}
	vaultAddr, err := p.validateVaultPDA(ctx, args.VaultAccount, vault.Bump)
	if err != nil {
		return nil, err
	}

	// 8. recipient must not be an executable/program account.
	executable, err := p.transfer.IsExecutable(ctx, args.Recipient)
	if err != nil {
		return nil, err
	}
	if executable {
		return nil, types.ErrBadRecipient
	}

	// 9. rent-floor check before moving anything.
	amount := state.Denomination - args.Fee
	if vault.Balance < args.Fee+amount || vault.Balance-(amount+args.Fee) < vault.RentExemptMinimum {
		return nil, types.ErrVaultBelowRent
	}

	// 10. pay the recipient.
	if amount > 0 {
		if err := p.transfer.Transfer(ctx, vaultAddr, args.Recipient, amount); err != nil {
			return nil, err
		}
	}

	// 11. pay the relayer, if named and a fee is owed.
	var eventRelayer *types.Address
	if args.HasRelayer() && args.Fee > 0 {
		if args.Recipient == *args.Relayer {
			return nil, types.ErrRecipientCannotBeRelayer
		}
		if args.RelayerAccount == nil {
			return nil, types.ErrRelayerAccountMissing
		}
		if *args.RelayerAccount != *args.Relayer {
			return nil, types.ErrRelayerMismatch
		}
		if err := p.transfer.Transfer(ctx, vaultAddr, *args.Relayer, args.Fee); err != nil {
			return nil, err
		}
		eventRelayer = args.Relayer
	}

	vault.Balance -= amount
	if eventRelayer != nil {
		vault.Balance -= args.Fee
	}
	if err := p.store.SaveVault(ctx, vault); err != nil {
		return nil, err
	}

	return &types.WithdrawalEvent{
		Recipient:     args.Recipient,
		NullifierHash: args.NullifierHash,
		Relayer:       eventRelayer,
		Fee:           args.Fee,
	}, nil
}

// MigrateToVault is the one-shot, authority-gated operation that sweeps
// any surplus held by the pool-state account (a legacy-layout artifact)
// down into the vault, preserving the state account's own rent-exempt
// minimum (spec.md §4.8).
func (p *Pool) MigrateToVault(ctx context.Context, caller types.Address, stateAccountBalance, stateRentExemptMinimum uint64) (*types.MigrationEvent, error) {
	state, err := p.store.LoadPool(ctx)
	if err != nil {
		return nil, err
	}
	if caller != state.Authority {
		return nil, types.ErrUnauthorized
	}
	if stateAccountBalance <= stateRentExemptMinimum {
		return nil, types.ErrNothingToMigrate
	}

	surplus := stateAccountBalance - stateRentExemptMinimum

	poolAddr, err := p.addresses.PoolStateAddress(ctx)
	if err != nil {
		return nil, err
	}
	vaultAddr, err := p.vaultAddress(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.transfer.Transfer(ctx, poolAddr, vaultAddr, surplus); err != nil {
		return nil, err
	}

	// LoadVault reads the host balance, which the transfer above has
	// already credited with the surplus.
	vault, err := p.store.LoadVault(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.store.SaveVault(ctx, vault); err != nil {
		return nil, err
	}

	return &types.MigrationEvent{
		AmountMigrated: surplus,
		Timestamp:      time.Now().Unix(),
	}, nil
}

func (p *Pool) vaultAddress(ctx context.Context) (types.Address, error) {
	poolAddr, err := p.addresses.PoolStateAddress(ctx)
	if err != nil {
		return types.Address{}, err
	}
	addr, _, err := p.addresses.VaultAddress(ctx, poolAddr)
	return addr, err
}

// validateVaultPDA is spec.md §4.10's validate_vault_pda: it recomputes the
// vault's derivation and checks (a) the supplied account matches, (b) its
// owner is the host's native-transfer program, (c) its stored bump matches.
// Returns the validated address for the caller to transfer against.
func (p *Pool) validateVaultPDA(ctx context.Context, supplied types.Address, storedBump uint8) (types.Address, error) {
	poolAddr, err := p.addresses.PoolStateAddress(ctx)
	if err != nil {
		return types.Address{}, err
	}
	derived, bump, err := p.addresses.VaultAddress(ctx, poolAddr)
	if err != nil {
		return types.Address{}, err
	}
	if supplied != derived || bump != storedBump {
		return types.Address{}, types.ErrVaultMismatch
	}

	owner, err := p.transfer.OwnerOf(ctx, supplied)
	if err != nil {
		return types.Address{}, err
	}
	nativeTransferProgram, err := p.addresses.NativeTransferProgram(ctx)
	if err != nil {
		return types.Address{}, err
	}
	if owner != nativeTransferProgram {
		return types.Address{}, types.ErrVaultNotSystemOwned
	}

	return derived, nil
}
