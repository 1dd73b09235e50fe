package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenforge/spl-token-engine/memhost"
	"github.com/tokenforge/spl-token-engine/pubkey"
	"github.com/tokenforge/spl-token-engine/token"
)

func newFundedRecord(t *testing.T, key, owner pubkey.PublicKey, size int) *memhost.Record {
	t.Helper()
	r := memhost.NewRecord(key, owner, make([]byte, size)).WithWritable(true)
	r.WithLamports(memhost.DefaultRentOracle.MinimumBalance(size))
	return r
}

func setupMint(t *testing.T, programID pubkey.PublicKey, p *token.Processor, mintAuthority, freezeAuthority pubkey.PublicKey) *memhost.Record {
	t.Helper()
	mintKey := mustSeedKey(t, 111)
	mintRef := newFundedRecord(t, mintKey, programID, token.MintSize)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)

	inst := token.NewInitializeMintInstruction(6, mintAuthority, &freezeAuthority)
	data, err := inst.Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{mintRef, oracle}, data)
	require.NoError(t, err)
	return mintRef
}

func setupAccount(t *testing.T, programID pubkey.PublicKey, p *token.Processor, mintRef *memhost.Record, owner pubkey.PublicKey, seed byte) *memhost.Record {
	t.Helper()
	accountKey := mustSeedKey(t, seed)
	accountRef := newFundedRecord(t, accountKey, programID, token.AccountSize)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)
	ownerRef := memhost.NewRecord(owner, pubkey.PublicKey{}, nil)

	inst := token.NewInitializeAccountInstruction()
	data, err := inst.Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{accountRef, mintRef, ownerRef, oracle}, data)
	require.NoError(t, err)
	return accountRef
}

func TestProcessor_InitializeMintThenMintToThenTransfer(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()

	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	bob := mustKeypair(t, "bob")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 50)
	bobAccount := setupAccount(t, programID, p, mintRef, bob.PublicKey, 51)

	mintToInst, err := token.NewMintToInstruction(1000).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{mintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst)
	require.NoError(t, err)

	mint, err := token.UnpackMint(mintRef.Data())
	require.NoError(t, err)
	require.Equal(t, uint64(1000), mint.Supply)

	transferInst, err := token.NewTransferInstruction(400).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, alice.SignerRecord()}, transferInst)
	require.NoError(t, err)

	aliceState, err := token.UnpackAccount(aliceAccount.Data())
	require.NoError(t, err)
	require.Equal(t, uint64(600), aliceState.Amount)

	bobState, err := token.UnpackAccount(bobAccount.Data())
	require.NoError(t, err)
	require.Equal(t, uint64(400), bobState.Amount)
}

func TestProcessor_Transfer_InsufficientFunds(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	bob := mustKeypair(t, "bob")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 60)
	bobAccount := setupAccount(t, programID, p, mintRef, bob.PublicKey, 61)

	transferInst, err := token.NewTransferInstruction(1).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, alice.SignerRecord()}, transferInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InsufficientFunds, kind)
}

func TestProcessor_Transfer_SelfTransferRejected(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 70)

	transferInst, err := token.NewTransferInstruction(1).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, aliceAccount, alice.SignerRecord()}, transferInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.SelfTransfer, kind)
}

func TestProcessor_FreezeThenTransferRejected(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	bob := mustKeypair(t, "bob")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 80)
	bobAccount := setupAccount(t, programID, p, mintRef, bob.PublicKey, 81)

	mintToInst, err := token.NewMintToInstruction(500).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst))

	freezeInst, err := token.NewFreezeAccountInstruction().Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, mintRef, freezeAuthority.SignerRecord()}, freezeInst)
	require.NoError(t, err)

	transferInst, err := token.NewTransferInstruction(1).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, alice.SignerRecord()}, transferInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.AccountFrozen, kind)

	thawInst, err := token.NewThawAccountInstruction().Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, mintRef, freezeAuthority.SignerRecord()}, thawInst))

	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, alice.SignerRecord()}, transferInst))
}

func TestProcessor_ApproveThenTransferByDelegate(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	bob := mustKeypair(t, "bob")
	carol := mustKeypair(t, "carol")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 90)
	bobAccount := setupAccount(t, programID, p, mintRef, bob.PublicKey, 91)

	mintToInst, err := token.NewMintToInstruction(1000).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst))

	approveInst, err := token.NewApproveInstruction(200).Data()
	require.NoError(t, err)
	carolDelegateRef := memhost.NewRecord(carol.PublicKey, pubkey.PublicKey{}, nil)
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, carolDelegateRef, alice.SignerRecord()}, approveInst)
	require.NoError(t, err)

	transferInst, err := token.NewTransferInstruction(150).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, carol.SignerRecord()}, transferInst)
	require.NoError(t, err)

	aliceState, err := token.UnpackAccount(aliceAccount.Data())
	require.NoError(t, err)
	require.Equal(t, uint64(50), aliceState.DelegatedAmount)
	require.NotNil(t, aliceState.Delegate)

	overInst, err := token.NewTransferInstruction(51).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{aliceAccount, bobAccount, carol.SignerRecord()}, overInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InsufficientDelegatedAmount, kind)
}

func TestProcessor_CloseAccount_RequiresZeroBalance(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	dest := mustKeypair(t, "dest")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 95)

	mintToInst, err := token.NewMintToInstruction(5).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst))

	destRef := memhost.NewRecord(dest.PublicKey, pubkey.PublicKey{}, nil).WithWritable(true)
	closeInst, err := token.NewCloseAccountInstruction().Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{aliceAccount, destRef, alice.SignerRecord()}, closeInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.NonZeroBalance, kind)

	burnInst, err := token.NewBurnInstruction(5).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, mintRef, alice.SignerRecord()}, burnInst))

	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, destRef, alice.SignerRecord()}, closeInst))
	require.Equal(t, uint64(0), aliceAccount.Lamports())
	require.Greater(t, destRef.Lamports(), uint64(0))
}

func TestProcessor_MultisigMint(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()

	signerA := mustKeypair(t, "ms-a")
	signerB := mustKeypair(t, "ms-b")
	signerC := mustKeypair(t, "ms-c")

	multisigKey := mustSeedKey(t, 150)
	multisigRef := newFundedRecord(t, multisigKey, programID, token.MultisigSize)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)

	initMsInst, err := token.NewInitializeMultisigInstruction(2).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{
		multisigRef, oracle,
		signerA.SignerRecord(), signerB.SignerRecord(), signerC.SignerRecord(),
	}, initMsInst)
	require.NoError(t, err)

	freezeAuthority := mustKeypair(t, "freeze-authority")
	mintRef := setupMint(t, programID, p, multisigRef.Key(), freezeAuthority.PublicKey)
	bob := mustKeypair(t, "bob")
	bobAccount := setupAccount(t, programID, p, mintRef, bob.PublicKey, 160)

	mintToInst, err := token.NewMintToInstruction(777).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{mintRef, bobAccount, multisigRef},
		append([]byte(nil), mintToInst...))
	require.Error(t, err, "no cosigners present should fail")

	err = p.Process(programID, []token.RecordRef{
		mintRef, bobAccount, multisigRef,
		signerA.SignerRecord(), signerB.SignerRecord(),
	}, mintToInst)
	require.NoError(t, err)

	mint, err := token.UnpackMint(mintRef.Data())
	require.NoError(t, err)
	require.Equal(t, uint64(777), mint.Supply)
}

func TestProcessor_InitializeMint_AlreadyInitialized(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)

	inst, err := token.NewInitializeMintInstruction(6, mintAuthority.PublicKey, &freezeAuthority.PublicKey).Data()
	require.NoError(t, err)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)
	err = p.Process(programID, []token.RecordRef{mintRef, oracle}, inst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.AlreadyInitialized, kind)
}

func TestProcessor_SetAuthority_MintTokens(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	newAuthority := mustKeypair(t, "new-mint-authority")
	stranger := mustKeypair(t, "stranger")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)

	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeMintTokens, &newAuthority.PublicKey).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{mintRef, stranger.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)

	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, mintAuthority.SignerRecord()}, setInst))

	mint, err := token.UnpackMint(mintRef.Data())
	require.NoError(t, err)
	require.Equal(t, newAuthority.PublicKey, *mint.MintAuthority)
}

func TestProcessor_SetAuthority_FreezeAccount(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	newFreezeAuthority := mustKeypair(t, "new-freeze-authority")
	stranger := mustKeypair(t, "stranger")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)

	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeFreezeAccount, &newFreezeAuthority.PublicKey).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{mintRef, stranger.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)

	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, freezeAuthority.SignerRecord()}, setInst))

	mint, err := token.UnpackMint(mintRef.Data())
	require.NoError(t, err)
	require.Equal(t, newFreezeAuthority.PublicKey, *mint.FreezeAuthority)
}

func TestProcessor_SetAuthority_FreezeAccount_RequiresExistingAuthority(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")

	mintKey := mustSeedKey(t, 220)
	mintRef := newFundedRecord(t, mintKey, programID, token.MintSize)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)
	initInst, err := token.NewInitializeMintInstruction(6, mintAuthority.PublicKey, nil).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, oracle}, initInst))

	newFreezeAuthority := mustKeypair(t, "new-freeze-authority")
	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeFreezeAccount, &newFreezeAuthority.PublicKey).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{mintRef, mintAuthority.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.FreezeAuthorityRequired, kind)
}

func TestProcessor_SetAuthority_AccountOwner(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	bob := mustKeypair(t, "bob")
	stranger := mustKeypair(t, "stranger")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 230)

	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeAccountOwner, &bob.PublicKey).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{aliceAccount, stranger.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)

	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, alice.SignerRecord()}, setInst))

	account, err := token.UnpackAccount(aliceAccount.Data())
	require.NoError(t, err)
	require.Equal(t, bob.PublicKey, account.Owner)
}

func TestProcessor_SetAuthority_AccountOwner_RejectsNilNewAuthority(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 231)

	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeAccountOwner, nil).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{aliceAccount, alice.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)
}

func TestProcessor_SetAuthority_CloseAccount(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")
	closer := mustKeypair(t, "closer")
	stranger := mustKeypair(t, "stranger")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 240)

	setInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeCloseAccount, &closer.PublicKey).Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{aliceAccount, stranger.SignerRecord()}, setInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)

	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, alice.SignerRecord()}, setInst))

	account, err := token.UnpackAccount(aliceAccount.Data())
	require.NoError(t, err)
	require.Equal(t, closer.PublicKey, *account.CloseAuthority)

	destRef := memhost.NewRecord(mustKeypair(t, "dest").PublicKey, pubkey.PublicKey{}, nil).WithWritable(true)
	closeInst, err := token.NewCloseAccountInstruction().Data()
	require.NoError(t, err)

	err = p.Process(programID, []token.RecordRef{aliceAccount, destRef, alice.SignerRecord()}, closeInst)
	require.Error(t, err, "owner no longer authorized to close once a separate close authority is set")
	kind, _ = token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)

	require.NoError(t, p.Process(programID, []token.RecordRef{aliceAccount, destRef, closer.SignerRecord()}, closeInst))
}

// TestProcessor_SetAuthority_FixedSupplyTerminal implements the
// fixed-supply scenario: removing a mint's MintTokens authority is
// terminal, and a subsequent MintTo must fail MintAuthorityRequired.
func TestProcessor_SetAuthority_FixedSupplyTerminal(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 250)

	revokeInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeMintTokens, nil).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{mintRef, mintAuthority.SignerRecord()}, revokeInst))

	mint, err := token.UnpackMint(mintRef.Data())
	require.NoError(t, err)
	require.Nil(t, mint.MintAuthority)

	mintToInst, err := token.NewMintToInstruction(1).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{mintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.MintAuthorityRequired, kind)

	// Trying to reinstate an authority once it's gone is rejected too.
	reinstateInst, err := token.NewSetAuthorityInstruction(token.AuthorityTypeMintTokens, &mintAuthority.PublicKey).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{mintRef, mintAuthority.SignerRecord()}, reinstateInst)
	require.Error(t, err)
	kind, _ = token.KindOf(err)
	require.Equal(t, token.InvalidAuthority, kind)
}

func TestProcessor_MintTo_WrongMintRejected(t *testing.T) {
	programID := mustSeedKey(t, 1)
	p := token.NewProcessor()
	mintAuthority := mustKeypair(t, "mint-authority")
	freezeAuthority := mustKeypair(t, "freeze-authority")
	alice := mustKeypair(t, "alice")

	mintRef := setupMint(t, programID, p, mintAuthority.PublicKey, freezeAuthority.PublicKey)
	aliceAccount := setupAccount(t, programID, p, mintRef, alice.PublicKey, 170)

	otherMintKey := mustSeedKey(t, 171)
	otherMintRef := newFundedRecord(t, otherMintKey, programID, token.MintSize)
	oracle := memhost.NewRentOracleRecord(memhost.DefaultRentOracle)
	initOtherInst, err := token.NewInitializeMintInstruction(2, mintAuthority.PublicKey, nil).Data()
	require.NoError(t, err)
	require.NoError(t, p.Process(programID, []token.RecordRef{otherMintRef, oracle}, initOtherInst))

	mintToInst, err := token.NewMintToInstruction(10).Data()
	require.NoError(t, err)
	err = p.Process(programID, []token.RecordRef{otherMintRef, aliceAccount, mintAuthority.SignerRecord()}, mintToInst)
	require.Error(t, err)
	kind, _ := token.KindOf(err)
	require.Equal(t, token.MintMismatch, kind)
}
