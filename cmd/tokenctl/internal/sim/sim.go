// Package sim wires the token engine to a memhost world and narrates the
// resulting state for tokenctl's demo command.
package sim

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"
	pkgerrors "github.com/pkg/errors"
	"github.com/ryanuber/columnize"
	"go.uber.org/zap"

	"github.com/tokenforge/spl-token-engine/memhost"
	"github.com/tokenforge/spl-token-engine/pubkey"
	"github.com/tokenforge/spl-token-engine/token"
)

var logger *zap.SugaredLogger

// SetLogger installs the logger used for per-instruction trace lines,
// called once from tokenctl's root command setup.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

// World bundles a Processor and program id for a scripted demo run.
type World struct {
	ProgramID pubkey.PublicKey
	Processor *token.Processor
}

// NewWorld builds a World with a deterministic program id and the
// default policy.
func NewWorld() *World {
	return &World{
		ProgramID: mustProgramID(),
		Processor: &token.Processor{Policy: token.PolicyDefault, Logger: logger},
	}
}

func mustProgramID() pubkey.PublicKey {
	var seed [32]byte
	copy(seed[:], []byte("tokenctl/program-id"))
	pk, err := pubkey.DeriveFromSeed(seed)
	if err != nil {
		panic(err)
	}
	return pk
}

// RunBasicDemo initializes a mint, two accounts, mints supply to one,
// and transfers part of it to the other, printing a narrated, colored
// trace of every step. Each instruction gets a correlation id so
// multi-instruction runs can be told apart in log output.
func RunBasicDemo() error {
	w := NewWorld()

	mintAuthority, err := memhost.NewKeypair("tokenctl-mint-authority")
	if err != nil {
		return err
	}
	freezeAuthority, err := memhost.NewKeypair("tokenctl-freeze-authority")
	if err != nil {
		return err
	}
	alice, err := memhost.NewKeypair("tokenctl-alice")
	if err != nil {
		return err
	}
	bob, err := memhost.NewKeypair("tokenctl-bob")
	if err != nil {
		return err
	}

	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)

	mintKey, err := memhost.NewKeypair("tokenctl-mint-address")
	if err != nil {
		return err
	}
	mintRef := fundedRecord(w.ProgramID, mintKey.PublicKey, token.MintSize)
	if err := w.run("InitializeMint", token.NewInitializeMintInstruction(6, mintAuthority.PublicKey, &freezeAuthority.PublicKey),
		[]token.RecordRef{mintRef, oracle}); err != nil {
		return err
	}

	aliceAddr, err := memhost.NewKeypair("tokenctl-alice-account")
	if err != nil {
		return err
	}
	aliceRef := fundedRecord(w.ProgramID, aliceAddr.PublicKey, token.AccountSize)
	ownerA := memhost.NewRecord(alice.PublicKey, pubkey.PublicKey{}, nil)
	if err := w.run("InitializeAccount(alice)", token.NewInitializeAccountInstruction(),
		[]token.RecordRef{aliceRef, mintRef, ownerA, oracle}); err != nil {
		return err
	}

	bobAddr, err := memhost.NewKeypair("tokenctl-bob-account")
	if err != nil {
		return err
	}
	bobRef := fundedRecord(w.ProgramID, bobAddr.PublicKey, token.AccountSize)
	ownerB := memhost.NewRecord(bob.PublicKey, pubkey.PublicKey{}, nil)
	if err := w.run("InitializeAccount(bob)", token.NewInitializeAccountInstruction(),
		[]token.RecordRef{bobRef, mintRef, ownerB, oracle}); err != nil {
		return err
	}

	if err := w.run("MintTo(alice, 1_000_000)", token.NewMintToInstruction(1_000_000),
		[]token.RecordRef{mintRef, aliceRef, mintAuthority.SignerRecord()}); err != nil {
		return err
	}

	if err := w.run("Transfer(alice -> bob, 250_000)", token.NewTransferInstruction(250_000),
		[]token.RecordRef{aliceRef, bobRef, alice.SignerRecord()}); err != nil {
		return err
	}

	printSummary(mintRef, aliceRef, bobRef)
	return nil
}

func fundedRecord(owner, key pubkey.PublicKey, size int) *memhost.Record {
	r := memhost.NewRecord(key, owner, make([]byte, size)).WithWritable(true)
	r.WithLamports(memhost.DefaultRentOracle.MinimumBalance(size))
	return r
}

func (w *World) run(label string, inst *token.Instruction, records []token.RecordRef) error {
	corrID := uuid.NewString()
	data, err := inst.Data()
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Infow("dispatch", "correlation_id", corrID, "instruction", label)
	}
	if err := w.Processor.Process(w.ProgramID, records, data); err != nil {
		wrapped := err
		if kind, ok := token.KindOf(err); ok {
			wrapped = token.NewError(kind).WithCause(pkgerrors.Wrap(err, label))
		}
		if logger != nil {
			logger.Errorw("dispatch failed", "correlation_id", corrID, "instruction", label, "error", fmt.Sprintf("%+v", wrapped))
		}
		fmt.Println(color.RedString("FAIL"), label, "-", err)
		return wrapped
	}
	fmt.Println(color.GreenString("OK"), label)
	return nil
}

func printSummary(mintRef, aliceRef, bobRef *memhost.Record) {
	mint, err := token.UnpackMint(mintRef.Data())
	if err != nil {
		return
	}
	alice, err := token.UnpackAccount(aliceRef.Data())
	if err != nil {
		return
	}
	bob, err := token.UnpackAccount(bobRef.Data())
	if err != nil {
		return
	}

	fmt.Println(aurora.Bold("\nFinal state"))
	rows := []string{
		"Record | Amount",
		fmt.Sprintf("Mint supply | %d", mint.Supply),
		fmt.Sprintf("alice | %d", alice.Amount),
		fmt.Sprintf("bob | %d", bob.Amount),
	}
	fmt.Println(columnize.SimpleFormat(rows))
}
