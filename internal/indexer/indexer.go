// Package indexer mirrors pool events into PostgreSQL for off-chain
// querying (note-scanning clients, relayer UIs, compliance exports) —
// the side channel spec.md §6 describes sitting outside the pool's own
// state, since the host chain is the source of truth and this store is
// a disposable, rebuildable projection. Grounded on the teacher's
// internal/storage/postgres.go (pgxpool.New/Config/DefaultConfig,
// ErrNotFound/pgx.ErrNoRows translation, fmt.Errorf("%w: %v", ...)
// wrapping), generalized from block/transaction rows to deposit/
// withdrawal/migration event rows.
package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tornadopool/core/pkg/types"
)

// Common errors.
var (
	ErrNotFound     = errors.New("indexer: not found")
	ErrDBConnection = errors.New("indexer: database connection error")
)

// Config holds the indexer's database connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns the indexer's default connection settings, for
// a locally run development database.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "tornadopool",
		Password: "",
		Database: "tornadopool",
		SSLMode:  "disable",
		MaxConns: 10,
	}
}

// Store is the pgx-backed event mirror.
type Store struct {
	pool *pgxpool.Pool
}

// New opens a connection pool against cfg and verifies it with a ping.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the event tables if they do not already exist, so a
// freshly provisioned database is ready to index against.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS deposits (
			leaf_index  BIGINT PRIMARY KEY,
			commitment  BYTEA NOT NULL UNIQUE,
			block_time  BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS withdrawals (
			nullifier_hash BYTEA PRIMARY KEY,
			recipient      BYTEA NOT NULL,
			relayer        BYTEA,
			fee            BIGINT NOT NULL,
			block_time     BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS migrations (
			id              BIGSERIAL PRIMARY KEY,
			amount_migrated BIGINT NOT NULL,
			block_time      BIGINT NOT NULL
		);
	`)
	return err
}

// RecordDeposit inserts a deposit event, keyed by its leaf index so a
// replayed event stream stays idempotent.
func (s *Store) RecordDeposit(ctx context.Context, ev *types.DepositEvent) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deposits (leaf_index, commitment, block_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (leaf_index) DO NOTHING
	`, ev.LeafIndex, ev.Commitment[:], ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record deposit: %w", err)
	}
	return nil
}

// RecordWithdrawal inserts a withdrawal event, keyed by its nullifier
// hash — the same uniqueness the pool itself enforces on-chain (C9).
func (s *Store) RecordWithdrawal(ctx context.Context, ev *types.WithdrawalEvent, blockTime int64) error {
	var relayer []byte
	if ev.Relayer != nil {
		relayer = ev.Relayer[:]
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO withdrawals (nullifier_hash, recipient, relayer, fee, block_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (nullifier_hash) DO NOTHING
	`, ev.NullifierHash[:], ev.Recipient[:], relayer, ev.Fee, blockTime)
	if err != nil {
		return fmt.Errorf("failed to record withdrawal: %w", err)
	}
	return nil
}

// RecordMigration inserts a migrate-to-vault event.
func (s *Store) RecordMigration(ctx context.Context, ev *types.MigrationEvent) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO migrations (amount_migrated, block_time)
		VALUES ($1, $2)
	`, ev.AmountMigrated, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// DepositByCommitment looks up a deposit by its commitment, the lookup
// a note-scanning client performs to find its own leaf index.
func (s *Store) DepositByCommitment(ctx context.Context, commitment types.Hash) (*types.DepositEvent, error) {
	var ev types.DepositEvent
	var leafIndex int64
	var commitmentBytes []byte
	err := s.pool.QueryRow(ctx, `
		SELECT leaf_index, commitment, block_time FROM deposits WHERE commitment = $1
	`, commitment[:]).Scan(&leafIndex, &commitmentBytes, &ev.Timestamp)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query deposit: %w", err)
	}
	ev.LeafIndex = uint32(leafIndex)
	copy(ev.Commitment[:], commitmentBytes)
	return &ev, nil
}

// IsNullifierSpent reports whether a withdrawal has already been
// recorded against this nullifier hash, letting a relayer fail fast
// before submitting a doomed withdrawal.
func (s *Store) IsNullifierSpent(ctx context.Context, nullifierHash types.Hash) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM withdrawals WHERE nullifier_hash = $1)
	`, nullifierHash[:]).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query nullifier: %w", err)
	}
	return exists, nil
}

// RecentDeposits returns the most recently indexed deposits, newest first.
func (s *Store) RecentDeposits(ctx context.Context, limit int) ([]*types.DepositEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT leaf_index, commitment, block_time FROM deposits
		ORDER BY leaf_index DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var out []*types.DepositEvent
	for rows.Next() {
		var ev types.DepositEvent
		var leafIndex int64
		var commitment []byte
		if err := rows.Scan(&leafIndex, &commitment, &ev.Timestamp); err != nil {
			return nil, err
		}
		ev.LeafIndex = uint32(leafIndex)
		copy(ev.Commitment[:], commitment)
		out = append(out, &ev)
	}
	return out, rows.Err()
}
