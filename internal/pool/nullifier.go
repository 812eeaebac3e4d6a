package pool

import (
	"context"
	"errors"

	"github.com/tornadopool/core/internal/hostchain"
	"github.com/tornadopool/core/pkg/types"
)

// NullifierDirectory implements C9: one existence record per spent
// nullifier, addressed deterministically, giving O(1) double-spend
// prevention without ever scanning history. Grounded on the teacher's
// internal/zkp/nullifier.go NullifierSet/NullifierStore split, generalized
// from an explicit has/add pair to the collision-as-uniqueness-check
// pattern spec.md §4.9 specifies (the host's account-creation instruction
// does the atomic check, not a read-then-write race in this package).
type NullifierDirectory struct {
	addresses hostchain.AddressBook
	accounts  hostchain.AccountCreator
}

// NewNullifierDirectory builds a directory over the given host collaborators.
func NewNullifierDirectory(addresses hostchain.AddressBook, accounts hostchain.AccountCreator) *NullifierDirectory {
	return &NullifierDirectory{addresses: addresses, accounts: accounts}
}

// Claim atomically marks a nullifier hash as spent, charged to payer for
// the record's storage rent (spec.md §4.9: "the payer of the record's
// storage rent is the transaction submitter"). Returns
// types.ErrNoteAlreadySpent if this nullifier was already claimed (P4).
func (d *NullifierDirectory) Claim(ctx context.Context, nullifierHash types.Hash, payer types.Address) error {
	addr, err := d.addresses.NullifierAddress(ctx, nullifierHash)
	if err != nil {
		return err
	}

	if err := d.accounts.CreateAccount(ctx, addr, payer); err != nil {
		if errors.Is(err, hostchain.ErrAccountExists) {
			return types.ErrNoteAlreadySpent
		}
		return err
	}
	return nil
}

// IsSpent reports whether a nullifier hash has already been claimed,
// without attempting a claim.
func (d *NullifierDirectory) IsSpent(ctx context.Context, nullifierHash types.Hash) (bool, error) {
	addr, err := d.addresses.NullifierAddress(ctx, nullifierHash)
	if err != nil {
		return false, err
	}
	return d.accounts.AccountExists(ctx, addr)
}
