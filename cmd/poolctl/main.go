// poolctl is a demo/operator CLI for the shielded pool, driving
// internal/pool against a local bbolt-backed host simulation
// (internal/hostsim). It exists to exercise the pool end to end from a
// terminal, not to talk to a real host chain — grounded on the
// teacher's cmd/ccoin-cli/main.go subcommand-switch shape and
// cmd/ccoind/main.go's flag/Config/run(ctx, cfg) structure.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tornadopool/core/internal/groth16verifier"
	"github.com/tornadopool/core/internal/hostsim"
	"github.com/tornadopool/core/internal/pool"
	"github.com/tornadopool/core/pkg/note"
	"github.com/tornadopool/core/pkg/types"
)

const (
	version = "0.1.0"
	banner  = `
  ___                      _     ____             _
 |_ _|_ __  _ __   ___ _ __| |   |  _ \ ___   ___ | |
  | || '_ \| '_ \ / _ \ '__| |   | |_) / _ \ / _ \| |
  | || | | | | | |  __/ |  | |___|  __/ (_) | (_) | |
 |___|_| |_|_| |_|\___|_|  |_____|_|   \___/ \___/|_|

  poolctl v%s — shielded pool demo CLI
`
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version":
		fmt.Printf(banner, version)
		return
	case "help":
		printUsage()
		return
	case "note":
		err = cmdNote(args)
	case "init":
		err = cmdInit(ctx, args)
	case "deposit":
		err = cmdDeposit(ctx, args)
	case "withdraw":
		err = cmdWithdraw(ctx, args)
	case "migrate":
		err = cmdMigrate(ctx, args)
	case "status":
		err = cmdStatus(ctx, args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("poolctl - shielded pool demo CLI")
	fmt.Println()
	fmt.Println("Usage: poolctl <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version              Show version information")
	fmt.Println("  help                 Show this help message")
	fmt.Println("  note                 Generate a new deposit note")
	fmt.Println("  init --data-dir D    Initialize a pool in the given data directory")
	fmt.Println("  deposit --data-dir D --note MNEMONIC --payer ADDR")
	fmt.Println("  withdraw --data-dir D --note MNEMONIC --recipient ADDR [--fee N]")
	fmt.Println("  migrate --data-dir D --caller ADDR --state-balance N --state-rent N")
	fmt.Println("  status --data-dir D  Show pool and vault state")
}

func cmdNote(args []string) error {
	n, mnemonic, err := note.Generate()
	if err != nil {
		return err
	}
	commitment, err := n.Commitment()
	if err != nil {
		return err
	}
	fmt.Println("Save this mnemonic; it is the only way to later withdraw this deposit:")
	fmt.Println()
	fmt.Println(" ", mnemonic)
	fmt.Println()
	fmt.Println("Commitment:", commitment.String())
	return nil
}

func openStore(dataDir string) (*hostsim.BoltStore, error) {
	return hostsim.OpenBoltStore(dataDir)
}

func cmdInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "data directory")
	denomination := fs.Uint64("denomination", 1_000_000_000, "fixed deposit/withdrawal amount")
	rentExempt := fs.Uint64("rent-exempt", 1_000_000, "vault rent-exempt minimum")
	authorityHex := fs.String("authority", "", "64-char hex authority address (0x01 followed by zero bytes if empty)")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var authority types.Address
	if *authorityHex != "" {
		b, err := decodeHexAddress(*authorityHex)
		if err != nil {
			return err
		}
		authority = b
	} else {
		authority[0] = 0x01
	}

	p := pool.New(store, store, store, store)
	if err := p.Initialize(ctx, authority, *denomination, demoVerifyingKeyBlob(), *rentExempt); err != nil {
		return err
	}

	fmt.Println("Pool initialized.")
	fmt.Println("  authority:  ", authority.String())
	fmt.Println("  denomination:", *denomination)
	return nil
}

func cmdDeposit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "data directory")
	mnemonic := fs.String("note", "", "deposit note mnemonic (generated fresh if empty)")
	payerHex := fs.String("payer", "", "64-char hex payer address")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var n *note.Note
	if *mnemonic == "" {
		var words string
		n, words, err = note.Generate()
		if err != nil {
			return err
		}
		fmt.Println("Generated note mnemonic:", words)
	} else {
		n, err = note.FromMnemonic(*mnemonic)
		if err != nil {
			return err
		}
	}

	payer, err := decodeHexAddress(*payerHex)
	if err != nil {
		return err
	}
	store.SetBalance(payer, 10_000_000_000) // fund the demo payer generously

	commitment, err := n.Commitment()
	if err != nil {
		return err
	}

	p := pool.New(store, store, store, store)
	ev, err := p.Deposit(ctx, payer, commitment)
	if err != nil {
		return err
	}

	fmt.Println("Deposit accepted.")
	fmt.Println("  leaf index:", ev.LeafIndex)
	fmt.Println("  commitment:", ev.Commitment.String())
	return nil
}

func cmdWithdraw(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "data directory")
	mnemonic := fs.String("note", "", "deposit note mnemonic")
	recipientHex := fs.String("recipient", "", "64-char hex recipient address")
	fee := fs.Uint64("fee", 0, "relayer fee")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := note.FromMnemonic(*mnemonic)
	if err != nil {
		return err
	}
	nullifierHash, err := n.NullifierHash()
	if err != nil {
		return err
	}

	recipient, err := decodeHexAddress(*recipientHex)
	if err != nil {
		return err
	}

	p := pool.New(store, store, store, store)
	state, err := store.LoadPool(ctx)
	if err != nil {
		return err
	}

	fmt.Println("note: withdraw in this demo CLI cannot produce a real Groth16 proof")
	fmt.Println("(no trusted-setup circuit is wired into poolctl); this command")
	fmt.Println("only demonstrates argument assembly and will fail proof verification.")

	poolAddr, err := store.PoolStateAddress(ctx)
	if err != nil {
		return err
	}
	vaultAddr, _, err := store.VaultAddress(ctx, poolAddr)
	if err != nil {
		return err
	}

	_, err = p.Withdraw(ctx, recipient, &types.WithdrawArgs{
		Root:          state.CurrentRoot,
		NullifierHash: nullifierHash,
		Recipient:     recipient,
		VaultAccount:  vaultAddr,
		Fee:           *fee,
	})
	return err
}

func cmdMigrate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "data directory")
	callerHex := fs.String("caller", "", "64-char hex authority address")
	stateBalance := fs.Uint64("state-balance", 0, "legacy pool-state account balance")
	stateRent := fs.Uint64("state-rent", 0, "legacy pool-state account rent-exempt minimum")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	caller, err := decodeHexAddress(*callerHex)
	if err != nil {
		return err
	}

	p := pool.New(store, store, store, store)
	ev, err := p.MigrateToVault(ctx, caller, *stateBalance, *stateRent)
	if err != nil {
		return err
	}

	fmt.Println("Migration complete. Amount migrated:", ev.AmountMigrated)
	return nil
}

func cmdStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "data directory")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := store.LoadPool(ctx)
	if err != nil {
		return err
	}
	vault, err := store.LoadVault(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Pool:")
	fmt.Println("  authority:   ", state.Authority.String())
	fmt.Println("  denomination:", state.Denomination)
	fmt.Println("  next index:  ", state.NextIndex)
	fmt.Println("  current root:", state.CurrentRoot.String())
	fmt.Println("Vault:")
	fmt.Println("  balance:            ", vault.Balance)
	fmt.Println("  rent-exempt minimum:", vault.RentExemptMinimum)
	return nil
}

func decodeHexAddress(s string) (types.Address, error) {
	if s == "" {
		var fallback types.Address
		fallback[0] = 0x42
		return fallback, nil
	}
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return types.Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	addr, ok := types.AddressFromBytes(b)
	if !ok {
		return types.Address{}, fmt.Errorf("invalid address %q: want %d bytes, got %d", s, types.AddressSize, len(b))
	}
	return addr, nil
}

// demoVerifyingKeyBlob builds a structurally valid but non-cryptographic
// verifying key, for exercising initialize/deposit without a real trusted
// setup. withdraw against a pool initialized with this key will always
// fail proof verification, by design.
func demoVerifyingKeyBlob() []byte {
	vk := &groth16verifier.VerifyingKey{
		NrPublicInputs: types.PublicInputCount,
		IC:             make([][64]byte, types.PublicInputCount+1),
	}
	for i := range vk.AlphaG1 {
		vk.AlphaG1[i] = 1
	}
	for i := range vk.BetaG2 {
		vk.BetaG2[i] = 2
	}
	for i := range vk.GammaG2 {
		vk.GammaG2[i] = 3
	}
	for i := range vk.DeltaG2 {
		vk.DeltaG2[i] = 4
	}
	for i := range vk.IC {
		for j := range vk.IC[i] {
			vk.IC[i][j] = byte(i + 1)
		}
	}
	return vk.Bytes()
}
