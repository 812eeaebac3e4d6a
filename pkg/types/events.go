package types

// DepositEvent is emitted on every successful deposit.
type DepositEvent struct {
	Commitment Hash
	LeafIndex  uint32
	Timestamp  int64
}

// WithdrawalEvent is emitted on every successful withdrawal.
type WithdrawalEvent struct {
	Recipient     Address
	NullifierHash Hash
	Relayer       *Address
	Fee           uint64
}

// MigrationEvent is emitted by a successful migrate_to_vault.
type MigrationEvent struct {
	AmountMigrated uint64
	Timestamp      int64
}
