package hostsim

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/tornadopool/core/internal/hostchain"
	"github.com/tornadopool/core/pkg/types"
)

const (
	defaultDBFile    = "pool.db"
	poolBucket       = "pool"
	vaultBucket      = "vault"
	accountsBucket   = "accounts"
	balancesBucket   = "balances"
	executableBucket = "executable"
	ownerBucket      = "owner"
)

var poolStateKey = []byte("state")
var vaultStateKey = []byte("state")

// BoltStore is the durable, single-process host stand-in the demo CLI
// runs against: one bucket per account family, grounded on the teacher's
// database/storage.go bucket-per-concern bbolt layout, generalized from a
// single blocks bucket to the pool/vault/accounts/balances/executable
// families this pool's hostchain interfaces need.
type BoltStore struct {
	db                    *bbolt.DB
	poolStateAddr         types.Address
	vaultAddr             types.Address
	nativeTransferProgram types.Address
}

// OpenBoltStore opens (creating if necessary) a bbolt-backed host at the
// given data directory, ensuring all buckets exist.
func OpenBoltStore(dataDir string) (*BoltStore, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbFile := filepath.Join(dataDir, defaultDBFile)
	db, err := bbolt.Open(dbFile, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{poolBucket, vaultBucket, accountsBucket, balancesBucket, executableBucket, ownerBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db}
	s.poolStateAddr = addressFromSeed("tornado")
	s.vaultAddr = addressFromSeed2("vault", s.poolStateAddr)
	s.nativeTransferProgram = addressFromSeed("native-transfer")
	return s, nil
}

// Close releases the underlying bbolt database handle.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// --- hostchain.PoolAccountStore ---

func (s *BoltStore) CreatePool(ctx context.Context, state *types.PoolState) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(poolBucket))
		if b.Get(poolStateKey) != nil {
			return types.ErrPoolAlreadyExists
		}
		return putGob(b, poolStateKey, state)
	})
}

func (s *BoltStore) LoadPool(ctx context.Context) (*types.PoolState, error) {
	var state types.PoolState
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(poolBucket))
		data := b.Get(poolStateKey)
		if data == nil {
			return types.ErrPoolNotFound
		}
		return gob.NewDecoder(bytes.NewReader(data)).Decode(&state)
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *BoltStore) SavePool(ctx context.Context, state *types.PoolState) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(poolBucket))
		if b.Get(poolStateKey) == nil {
			return types.ErrPoolNotFound
		}
		return putGob(b, poolStateKey, state)
	})
}

func (s *BoltStore) CreateVault(ctx context.Context, vault *types.VaultState) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(vaultBucket))
		if err := putGob(b, vaultStateKey, vault); err != nil {
			return err
		}
		ob := tx.Bucket([]byte(ownerBucket))
		return ob.Put(s.vaultAddr[:], s.nativeTransferProgram[:])
	})
	if err != nil {
		return err
	}
	return s.setBalance(s.vaultAddr, vault.Balance)
}

func (s *BoltStore) LoadVault(ctx context.Context) (*types.VaultState, error) {
	var vault types.VaultState
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(vaultBucket))
		data := b.Get(vaultStateKey)
		if data == nil {
			return types.ErrPoolNotFound
		}
		return gob.NewDecoder(bytes.NewReader(data)).Decode(&vault)
	})
	if err != nil {
		return nil, err
	}
	bal, err := s.BalanceOf(ctx, s.vaultAddr)
	if err != nil {
		return nil, err
	}
	vault.Balance = bal
	return &vault, nil
}

func (s *BoltStore) SaveVault(ctx context.Context, vault *types.VaultState) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(vaultBucket))
		return putGob(b, vaultStateKey, vault)
	})
	if err != nil {
		return err
	}
	return s.setBalance(s.vaultAddr, vault.Balance)
}

// --- hostchain.NativeTransfer ---

func (s *BoltStore) Transfer(ctx context.Context, from, to types.Address, amount uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(balancesBucket))

		fromBal := getUint64(b, from[:])
		if fromBal < amount {
			return types.ErrVaultBelowRent
		}
		toBal := getUint64(b, to[:])

		if err := putUint64(b, from[:], fromBal-amount); err != nil {
			return err
		}
		return putUint64(b, to[:], toBal+amount)
	})
}

func (s *BoltStore) BalanceOf(ctx context.Context, account types.Address) (uint64, error) {
	var bal uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(balancesBucket))
		bal = getUint64(b, account[:])
		return nil
	})
	return bal, err
}

func (s *BoltStore) setBalance(account types.Address, amount uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(balancesBucket))
		return putUint64(b, account[:], amount)
	})
}

// SetBalance seeds an account's balance directly, for CLI commands that
// fund a depositor before issuing a deposit.
func (s *BoltStore) SetBalance(account types.Address, amount uint64) error {
	return s.setBalance(account, amount)
}

func (s *BoltStore) IsExecutable(ctx context.Context, account types.Address) (bool, error) {
	var flagged bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(executableBucket))
		flagged = b.Get(account[:]) != nil
		return nil
	})
	return flagged, err
}

func (s *BoltStore) OwnerOf(ctx context.Context, account types.Address) (types.Address, error) {
	var owner types.Address
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(ownerBucket))
		copy(owner[:], b.Get(account[:]))
		return nil
	})
	return owner, err
}

// --- hostchain.AddressBook ---

func (s *BoltStore) PoolStateAddress(ctx context.Context) (types.Address, error) {
	return s.poolStateAddr, nil
}

func (s *BoltStore) VaultAddress(ctx context.Context, poolState types.Address) (types.Address, uint8, error) {
	return addressFromSeed2("vault", poolState), 255, nil
}

func (s *BoltStore) NullifierAddress(ctx context.Context, nullifierHash types.Hash) (types.Address, error) {
	return addressFromSeed2("nullifier", types.Address(nullifierHash)), nil
}

func (s *BoltStore) NativeTransferProgram(ctx context.Context) (types.Address, error) {
	return s.nativeTransferProgram, nil
}

// --- hostchain.AccountCreator ---

func (s *BoltStore) CreateAccount(ctx context.Context, addr types.Address, payer types.Address) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(accountsBucket))
		if b.Get(addr[:]) != nil {
			return hostchain.ErrAccountExists
		}
		return b.Put(addr[:], payer[:])
	})
}

func (s *BoltStore) AccountExists(ctx context.Context, addr types.Address) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(accountsBucket))
		exists = b.Get(addr[:]) != nil
		return nil
	})
	return exists, err
}

func putGob(b *bbolt.Bucket, key []byte, v interface{}) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	return b.Put(key, buf.Bytes())
}

func getUint64(b *bbolt.Bucket, key []byte) uint64 {
	data := b.Get(key)
	if data == nil {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func putUint64(b *bbolt.Bucket, key []byte, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return b.Put(key, buf[:])
}

var _ hostchain.PoolAccountStore = (*BoltStore)(nil)
var _ hostchain.NativeTransfer = (*BoltStore)(nil)
var _ hostchain.AddressBook = (*BoltStore)(nil)
var _ hostchain.AccountCreator = (*BoltStore)(nil)
