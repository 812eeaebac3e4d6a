// Package hostsim provides stand-ins for the host runtime internal/pool
// depends on through internal/hostchain: an in-memory implementation for
// unit tests, and a bbolt-backed implementation for the demo CLI's
// persistent single-process "chain". Grounded on the teacher's
// internal/zkp/nullifier.go InMemoryNullifierStore and internal/zkp/merkle.go
// InMemoryTreeStore (sync.RWMutex-guarded maps), generalized from those
// narrow stores to the full hostchain.PoolAccountStore / NativeTransfer /
// AddressBook / AccountCreator surface.
package hostsim

import (
	"context"
	"sync"

	"github.com/tornadopool/core/internal/hostchain"
	"github.com/tornadopool/core/pkg/types"
)

// Memory is a single-process, in-memory stand-in for the host chain. It
// implements every hostchain interface internal/pool needs, making it
// suitable for unit tests; the demo CLI uses BoltStore instead.
type Memory struct {
	mu sync.RWMutex

	pool       *types.PoolState
	vault      *types.VaultState
	exists     map[types.Address]bool
	owner      map[types.Address]types.Address
	balance    map[types.Address]uint64
	executable map[types.Address]bool

	poolStateAddr         types.Address
	vaultAddr             types.Address
	nativeTransferProgram types.Address
}

// NewMemory builds an empty in-memory host, with the pool-state account
// addressed at a fixed, test-stable sentinel address.
func NewMemory() *Memory {
	m := &Memory{
		exists:     make(map[types.Address]bool),
		owner:      make(map[types.Address]types.Address),
		balance:    make(map[types.Address]uint64),
		executable: make(map[types.Address]bool),
	}
	m.poolStateAddr = addressFromSeed("tornado")
	m.vaultAddr = addressFromSeed2("vault", m.poolStateAddr)
	m.nativeTransferProgram = addressFromSeed("native-transfer")
	return m
}

// SetBalance seeds an account's balance directly, for test setup (e.g.
// crediting a depositor before exercising Deposit).
func (m *Memory) SetBalance(addr types.Address, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance[addr] = amount
}

// MarkExecutable flags an address as a program/executable account, for
// exercising the BadRecipient rejection path.
func (m *Memory) MarkExecutable(addr types.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executable[addr] = true
}

// SetOwner overrides an account's recorded owner, for exercising
// validate_vault_pda's owner-mismatch rejection path.
func (m *Memory) SetOwner(addr, owner types.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner[addr] = owner
}

// --- hostchain.PoolAccountStore ---

func (m *Memory) CreatePool(ctx context.Context, state *types.PoolState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		return types.ErrPoolAlreadyExists
	}
	cp := *state
	m.pool = &cp
	return nil
}

func (m *Memory) LoadPool(ctx context.Context) (*types.PoolState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pool == nil {
		return nil, types.ErrPoolNotFound
	}
	cp := *m.pool
	return &cp, nil
}

func (m *Memory) SavePool(ctx context.Context, state *types.PoolState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool == nil {
		return types.ErrPoolNotFound
	}
	cp := *state
	m.pool = &cp
	return nil
}

func (m *Memory) CreateVault(ctx context.Context, vault *types.VaultState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *vault
	m.vault = &cp
	m.balance[m.vaultAddr] = vault.Balance
	m.owner[m.vaultAddr] = m.nativeTransferProgram
	return nil
}

func (m *Memory) LoadVault(ctx context.Context) (*types.VaultState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.vault == nil {
		return nil, types.ErrPoolNotFound
	}
	cp := *m.vault
	cp.Balance = m.balance[m.vaultAddr]
	return &cp, nil
}

func (m *Memory) SaveVault(ctx context.Context, vault *types.VaultState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *vault
	m.vault = &cp
	m.balance[m.vaultAddr] = vault.Balance
	return nil
}

// --- hostchain.NativeTransfer ---

func (m *Memory) Transfer(ctx context.Context, from, to types.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balance[from] < amount {
		return types.ErrVaultBelowRent
	}
	m.balance[from] -= amount
	m.balance[to] += amount
	return nil
}

func (m *Memory) BalanceOf(ctx context.Context, account types.Address) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance[account], nil
}

func (m *Memory) IsExecutable(ctx context.Context, account types.Address) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.executable[account], nil
}

func (m *Memory) OwnerOf(ctx context.Context, account types.Address) (types.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.owner[account], nil
}

// --- hostchain.AddressBook ---

func (m *Memory) PoolStateAddress(ctx context.Context) (types.Address, error) {
	return m.poolStateAddr, nil
}

func (m *Memory) VaultAddress(ctx context.Context, poolState types.Address) (types.Address, uint8, error) {
	return addressFromSeed2("vault", poolState), 255, nil
}

func (m *Memory) NullifierAddress(ctx context.Context, nullifierHash types.Hash) (types.Address, error) {
	return addressFromSeed2("nullifier", types.Address(nullifierHash)), nil
}

func (m *Memory) NativeTransferProgram(ctx context.Context) (types.Address, error) {
	return m.nativeTransferProgram, nil
}

// --- hostchain.AccountCreator ---

func (m *Memory) CreateAccount(ctx context.Context, addr types.Address, payer types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exists[addr] {
		return hostchain.ErrAccountExists
	}
	m.exists[addr] = true
	return nil
}

func (m *Memory) AccountExists(ctx context.Context, addr types.Address) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exists[addr], nil
}

var _ hostchain.PoolAccountStore = (*Memory)(nil)
var _ hostchain.NativeTransfer = (*Memory)(nil)
var _ hostchain.AddressBook = (*Memory)(nil)
var _ hostchain.AccountCreator = (*Memory)(nil)
