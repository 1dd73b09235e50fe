// Copyright 2021 github.com/gagliardetto
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	ag_binary "github.com/gagliardetto/binary"
	"go.uber.org/zap"

	"github.com/tokenforge/spl-token-engine/pubkey"
)

// Processor routes decoded instructions to their handlers (spec.md §2,
// §4.6), mirroring the original source's `pub struct Processor;` shape
// (processor/mod.rs) so a host can hold one value carrying an optional
// logger and policy rather than threading them through every call.
type Processor struct {
	// Policy pins the open-question decisions (spec.md §9). Zero value
	// is NOT PolicyDefault; use NewProcessor to get sane defaults.
	Policy Policy

	// Logger receives a one-line debug tag per dispatched instruction,
	// the Go analogue of the original source's `msg!("Instruction: ...")`
	// trace. A nil Logger disables logging entirely — the engine remains
	// pure and allocation-light by default (spec.md §5, §7).
	Logger *zap.SugaredLogger
}

// NewProcessor builds a Processor with PolicyDefault and no logger.
func NewProcessor() *Processor {
	return &Processor{Policy: PolicyDefault}
}

func (p *Processor) log(name string) {
	if p.Logger != nil {
		p.Logger.Debugw("instruction", "name", name)
	}
}

// Process is the engine's single entry point (spec.md §2, §6):
// `(program_id, records[], instruction_bytes) -> Ok | Err(kind)`.
func (p *Processor) Process(programID pubkey.PublicKey, records []RecordRef, data []byte) error {
	inst, err := DecodeInstruction(data)
	if err != nil {
		return err
	}

	switch impl := inst.Impl.(type) {
	case InitializeMint:
		p.log("InitializeMint")
		return p.initializeMint(programID, records, impl)
	case *InitializeMint:
		p.log("InitializeMint")
		return p.initializeMint(programID, records, *impl)
	case InitializeAccount:
		p.log("InitializeAccount")
		return p.initializeAccount(programID, records)
	case *InitializeAccount:
		p.log("InitializeAccount")
		return p.initializeAccount(programID, records)
	case InitializeMultisig:
		p.log("InitializeMultisig")
		return p.initializeMultisig(programID, records, impl)
	case *InitializeMultisig:
		p.log("InitializeMultisig")
		return p.initializeMultisig(programID, records, *impl)
	case Transfer:
		p.log("Transfer")
		return p.transfer(programID, records, impl)
	case *Transfer:
		p.log("Transfer")
		return p.transfer(programID, records, *impl)
	case Approve:
		p.log("Approve")
		return p.approve(programID, records, impl)
	case *Approve:
		p.log("Approve")
		return p.approve(programID, records, *impl)
	case Revoke:
		p.log("Revoke")
		return p.revoke(programID, records)
	case *Revoke:
		p.log("Revoke")
		return p.revoke(programID, records)
	case SetAuthority:
		p.log("SetAuthority")
		return p.setAuthority(programID, records, impl)
	case *SetAuthority:
		p.log("SetAuthority")
		return p.setAuthority(programID, records, *impl)
	case MintTo:
		p.log("MintTo")
		return p.mintTo(programID, records, impl)
	case *MintTo:
		p.log("MintTo")
		return p.mintTo(programID, records, *impl)
	case Burn:
		p.log("Burn")
		return p.burn(programID, records, impl)
	case *Burn:
		p.log("Burn")
		return p.burn(programID, records, *impl)
	case CloseAccount:
		p.log("CloseAccount")
		return p.closeAccount(programID, records)
	case *CloseAccount:
		p.log("CloseAccount")
		return p.closeAccount(programID, records)
	case FreezeAccount:
		p.log("FreezeAccount")
		return p.setFrozen(programID, records, true)
	case *FreezeAccount:
		p.log("FreezeAccount")
		return p.setFrozen(programID, records, true)
	case ThawAccount:
		p.log("ThawAccount")
		return p.setFrozen(programID, records, false)
	case *ThawAccount:
		p.log("ThawAccount")
		return p.setFrozen(programID, records, false)
	default:
		return NewError(InvalidInstruction)
	}
}

func requireRecords(records []RecordRef, n int) error {
	if len(records) < n {
		return NewError(InvalidInstruction)
	}
	return nil
}

// ---------------------------------------------------------------------
// 4.6.1 InitializeMint
// ---------------------------------------------------------------------

func (p *Processor) initializeMint(programID pubkey.PublicKey, records []RecordRef, in InitializeMint) error {
	if err := requireRecords(records, 2); err != nil {
		return err
	}
	mintRef, rentOracleRef := records[0], records[1]

	if err := AssertOwnedBy(mintRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(mintRef); err != nil {
		return err
	}
	if err := AssertDataLength(mintRef, MintSize); err != nil {
		return err
	}
	oracle, err := rentOracleFromRef(rentOracleRef)
	if err != nil {
		return err
	}
	if err := AssertRentExempt(mintRef, oracle); err != nil {
		return err
	}

	mint, err := UnpackMint(mintRef.Data())
	if err != nil {
		return err
	}
	if mint.IsInitialized {
		return NewError(AlreadyInitialized)
	}

	authority := in.MintAuthority
	mint.MintAuthority = &authority
	mint.Supply = 0
	mint.Decimals = in.Decimals
	mint.IsInitialized = true
	mint.FreezeAuthority = in.FreezeAuthority

	return packInto(mintRef, mint)
}

// ---------------------------------------------------------------------
// 4.6.2 InitializeAccount
// ---------------------------------------------------------------------

func (p *Processor) initializeAccount(programID pubkey.PublicKey, records []RecordRef) error {
	if err := requireRecords(records, 4); err != nil {
		return err
	}
	accountRef, mintRef, ownerRef, rentOracleRef := records[0], records[1], records[2], records[3]

	if err := AssertOwnedBy(accountRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(accountRef); err != nil {
		return err
	}
	if err := AssertDataLength(accountRef, AccountSize); err != nil {
		return err
	}
	oracle, err := rentOracleFromRef(rentOracleRef)
	if err != nil {
		return err
	}
	if err := AssertRentExempt(accountRef, oracle); err != nil {
		return err
	}

	if err := AssertOwnedBy(mintRef, programID); err != nil {
		return err
	}
	if err := AssertDataLength(mintRef, MintSize); err != nil {
		return err
	}
	mint, err := UnpackMint(mintRef.Data())
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}

	account, err := UnpackAccount(accountRef.Data())
	if err != nil {
		return err
	}
	if account.IsInitialized() {
		return NewError(AlreadyInitialized)
	}

	account.Mint = mintRef.Key()
	account.Owner = ownerRef.Key()
	account.Amount = 0
	account.Delegate = nil
	account.State = AccountStateInitialized
	account.IsNative = nil
	account.DelegatedAmount = 0
	account.CloseAuthority = nil

	return packInto(accountRef, account)
}

// ---------------------------------------------------------------------
// 4.6.3 InitializeMultisig
// ---------------------------------------------------------------------

func (p *Processor) initializeMultisig(programID pubkey.PublicKey, records []RecordRef, in InitializeMultisig) error {
	if err := requireRecords(records, 2); err != nil {
		return err
	}
	multisigRef, rentOracleRef := records[0], records[1]
	signerRefs := records[2:]

	if err := AssertOwnedBy(multisigRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(multisigRef); err != nil {
		return err
	}
	if err := AssertDataLength(multisigRef, MultisigSize); err != nil {
		return err
	}
	oracle, err := rentOracleFromRef(rentOracleRef)
	if err != nil {
		return err
	}
	if err := AssertRentExempt(multisigRef, oracle); err != nil {
		return err
	}

	n := len(signerRefs)
	if n < 1 || n > MAX_SIGNERS {
		return NewError(InvalidMultisigConfig)
	}
	if in.M < 1 || int(in.M) > n {
		return NewError(InvalidMultisigConfig)
	}

	ms, err := unpackMultisigLoose(multisigRef.Data())
	if err != nil {
		return err
	}
	if ms.IsInitialized {
		return NewError(AlreadyInitialized)
	}

	ms.M = in.M
	ms.N = uint8(n)
	ms.IsInitialized = true
	for i := 0; i < MAX_SIGNERS; i++ {
		if i < n {
			ms.Signers[i] = signerRefs[i].Key()
		} else {
			ms.Signers[i] = pubkey.PublicKey{}
		}
	}

	return packInto(multisigRef, ms)
}

// ---------------------------------------------------------------------
// 4.6.4 Transfer
// ---------------------------------------------------------------------

func (p *Processor) transfer(programID pubkey.PublicKey, records []RecordRef, in Transfer) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	sourceRef, destRef, authorityRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(sourceRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(sourceRef); err != nil {
		return err
	}
	if err := AssertDataLength(sourceRef, AccountSize); err != nil {
		return err
	}
	if err := AssertOwnedBy(destRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(destRef); err != nil {
		return err
	}
	if err := AssertDataLength(destRef, AccountSize); err != nil {
		return err
	}

	if sourceRef.Key() == destRef.Key() {
		return NewError(SelfTransfer)
	}

	source, err := UnpackAccount(sourceRef.Data())
	if err != nil {
		return err
	}
	dest, err := UnpackAccount(destRef.Data())
	if err != nil {
		return err
	}

	if !source.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if !dest.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if source.IsFrozen() {
		return NewError(AccountFrozen)
	}
	if dest.IsFrozen() {
		return NewError(AccountFrozen)
	}
	if source.Mint != dest.Mint {
		return NewError(MintMismatch)
	}
	if source.Amount < in.Amount {
		return NewError(InsufficientFunds)
	}

	usedDelegate, err := ValidateOwnerOrDelegate(programID, source.Owner, source.Delegate, authorityRef, signerRefs)
	if err != nil {
		return err
	}
	if usedDelegate {
		if err := decrementDelegatedAmount(source, in.Amount); err != nil {
			return err
		}
	}

	source.Amount, err = CheckedSub(source.Amount, in.Amount)
	if err != nil {
		return err
	}
	dest.Amount, err = CheckedAdd(dest.Amount, in.Amount)
	if err != nil {
		return err
	}

	if err := packInto(sourceRef, source); err != nil {
		return err
	}
	return packInto(destRef, dest)
}

// ---------------------------------------------------------------------
// 4.6.5 Approve
// ---------------------------------------------------------------------

func (p *Processor) approve(programID pubkey.PublicKey, records []RecordRef, in Approve) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	sourceRef, delegateRef, ownerRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(sourceRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(sourceRef); err != nil {
		return err
	}
	if err := AssertDataLength(sourceRef, AccountSize); err != nil {
		return err
	}

	source, err := UnpackAccount(sourceRef.Data())
	if err != nil {
		return err
	}
	if !source.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if p.Policy.RejectApproveOnFrozen && source.IsFrozen() {
		return NewError(AccountFrozen)
	}

	if err := ValidateAuthority(programID, source.Owner, ownerRef, signerRefs); err != nil {
		return err
	}

	delegate := delegateRef.Key()
	source.Delegate = &delegate
	source.DelegatedAmount = in.Amount

	return packInto(sourceRef, source)
}

// ---------------------------------------------------------------------
// 4.6.6 Revoke
// ---------------------------------------------------------------------

func (p *Processor) revoke(programID pubkey.PublicKey, records []RecordRef) error {
	if err := requireRecords(records, 2); err != nil {
		return err
	}
	sourceRef, ownerRef := records[0], records[1]
	signerRefs := records[2:]

	if err := AssertOwnedBy(sourceRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(sourceRef); err != nil {
		return err
	}
	if err := AssertDataLength(sourceRef, AccountSize); err != nil {
		return err
	}

	source, err := UnpackAccount(sourceRef.Data())
	if err != nil {
		return err
	}
	if !source.IsInitialized() {
		return NewError(UninitializedAccount)
	}

	if err := ValidateAuthority(programID, source.Owner, ownerRef, signerRefs); err != nil {
		return err
	}

	source.Delegate = nil
	source.DelegatedAmount = 0

	return packInto(sourceRef, source)
}

// ---------------------------------------------------------------------
// 4.6.7 SetAuthority
// ---------------------------------------------------------------------

func (p *Processor) setAuthority(programID pubkey.PublicKey, records []RecordRef, in SetAuthority) error {
	if err := requireRecords(records, 2); err != nil {
		return err
	}
	targetRef, authorityRef := records[0], records[1]
	signerRefs := records[2:]

	if err := AssertOwnedBy(targetRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(targetRef); err != nil {
		return err
	}

	switch in.AuthorityType {
	case AuthorityTypeMintTokens:
		return p.setMintAuthority(programID, targetRef, authorityRef, signerRefs, in.NewAuthority)
	case AuthorityTypeFreezeAccount:
		return p.setFreezeAuthority(programID, targetRef, authorityRef, signerRefs, in.NewAuthority)
	case AuthorityTypeAccountOwner:
		return p.setAccountOwner(programID, targetRef, authorityRef, signerRefs, in.NewAuthority)
	case AuthorityTypeCloseAccount:
		return p.setCloseAuthority(programID, targetRef, authorityRef, signerRefs, in.NewAuthority)
	default:
		return NewError(InvalidInstruction)
	}
}

func (p *Processor) setMintAuthority(programID pubkey.PublicKey, targetRef, authorityRef RecordRef, signerRefs []RecordRef, newAuthority *pubkey.PublicKey) error {
	if err := AssertDataLength(targetRef, MintSize); err != nil {
		return err
	}
	mint, err := UnpackMint(targetRef.Data())
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}
	if mint.MintAuthority == nil {
		return NewError(InvalidAuthority)
	}
	if err := ValidateAuthority(programID, *mint.MintAuthority, authorityRef, signerRefs); err != nil {
		return err
	}
	mint.MintAuthority = newAuthority
	return packInto(targetRef, mint)
}

func (p *Processor) setFreezeAuthority(programID pubkey.PublicKey, targetRef, authorityRef RecordRef, signerRefs []RecordRef, newAuthority *pubkey.PublicKey) error {
	if err := AssertDataLength(targetRef, MintSize); err != nil {
		return err
	}
	mint, err := UnpackMint(targetRef.Data())
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}
	if mint.FreezeAuthority == nil {
		return NewError(FreezeAuthorityRequired)
	}
	if err := ValidateAuthority(programID, *mint.FreezeAuthority, authorityRef, signerRefs); err != nil {
		return err
	}
	mint.FreezeAuthority = newAuthority
	return packInto(targetRef, mint)
}

func (p *Processor) setAccountOwner(programID pubkey.PublicKey, targetRef, authorityRef RecordRef, signerRefs []RecordRef, newAuthority *pubkey.PublicKey) error {
	if err := AssertDataLength(targetRef, AccountSize); err != nil {
		return err
	}
	account, err := UnpackAccount(targetRef.Data())
	if err != nil {
		return err
	}
	if !account.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if err := ValidateAuthority(programID, account.Owner, authorityRef, signerRefs); err != nil {
		return err
	}
	if newAuthority == nil {
		return NewError(InvalidAuthority)
	}

	account.Owner = *newAuthority
	account.Delegate = nil
	account.DelegatedAmount = 0

	return packInto(targetRef, account)
}

func (p *Processor) setCloseAuthority(programID pubkey.PublicKey, targetRef, authorityRef RecordRef, signerRefs []RecordRef, newAuthority *pubkey.PublicKey) error {
	if err := AssertDataLength(targetRef, AccountSize); err != nil {
		return err
	}
	account, err := UnpackAccount(targetRef.Data())
	if err != nil {
		return err
	}
	if !account.IsInitialized() {
		return NewError(UninitializedAccount)
	}

	currentAuthority := account.Owner
	if account.CloseAuthority != nil {
		currentAuthority = *account.CloseAuthority
	}
	if err := ValidateAuthority(programID, currentAuthority, authorityRef, signerRefs); err != nil {
		return err
	}

	account.CloseAuthority = newAuthority
	return packInto(targetRef, account)
}

// ---------------------------------------------------------------------
// 4.6.8 MintTo
// ---------------------------------------------------------------------

func (p *Processor) mintTo(programID pubkey.PublicKey, records []RecordRef, in MintTo) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	mintRef, destRef, authorityRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(mintRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(mintRef); err != nil {
		return err
	}
	if err := AssertDataLength(mintRef, MintSize); err != nil {
		return err
	}
	if err := AssertOwnedBy(destRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(destRef); err != nil {
		return err
	}
	if err := AssertDataLength(destRef, AccountSize); err != nil {
		return err
	}

	mint, err := UnpackMint(mintRef.Data())
	if err != nil {
		return err
	}
	dest, err := UnpackAccount(destRef.Data())
	if err != nil {
		return err
	}

	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}
	if !dest.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if dest.IsFrozen() {
		return NewError(AccountFrozen)
	}
	if dest.Mint != mintRef.Key() {
		return NewError(MintMismatch)
	}
	if mint.MintAuthority == nil {
		return NewError(MintAuthorityRequired)
	}

	if err := ValidateAuthority(programID, *mint.MintAuthority, authorityRef, signerRefs); err != nil {
		return err
	}

	mint.Supply, err = CheckedAdd(mint.Supply, in.Amount)
	if err != nil {
		return err
	}
	dest.Amount, err = CheckedAdd(dest.Amount, in.Amount)
	if err != nil {
		return err
	}

	if err := packInto(mintRef, mint); err != nil {
		return err
	}
	return packInto(destRef, dest)
}

// ---------------------------------------------------------------------
// 4.6.9 Burn
// ---------------------------------------------------------------------

func (p *Processor) burn(programID pubkey.PublicKey, records []RecordRef, in Burn) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	accountRef, mintRef, authorityRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(accountRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(accountRef); err != nil {
		return err
	}
	if err := AssertDataLength(accountRef, AccountSize); err != nil {
		return err
	}
	if err := AssertOwnedBy(mintRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(mintRef); err != nil {
		return err
	}
	if err := AssertDataLength(mintRef, MintSize); err != nil {
		return err
	}

	account, err := UnpackAccount(accountRef.Data())
	if err != nil {
		return err
	}
	mint, err := UnpackMint(mintRef.Data())
	if err != nil {
		return err
	}

	if !account.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}
	if account.IsFrozen() {
		return NewError(AccountFrozen)
	}
	if account.Mint != mintRef.Key() {
		return NewError(MintMismatch)
	}
	if account.Amount < in.Amount {
		return NewError(InsufficientFunds)
	}

	usedDelegate, err := ValidateOwnerOrDelegate(programID, account.Owner, account.Delegate, authorityRef, signerRefs)
	if err != nil {
		return err
	}
	if usedDelegate {
		if err := decrementDelegatedAmount(account, in.Amount); err != nil {
			return err
		}
	}

	account.Amount, err = CheckedSub(account.Amount, in.Amount)
	if err != nil {
		return err
	}
	mint.Supply, err = CheckedSub(mint.Supply, in.Amount)
	if err != nil {
		return err
	}

	if err := packInto(accountRef, account); err != nil {
		return err
	}
	return packInto(mintRef, mint)
}

// ---------------------------------------------------------------------
// 4.6.10 CloseAccount
// ---------------------------------------------------------------------

func (p *Processor) closeAccount(programID pubkey.PublicKey, records []RecordRef) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	accountRef, destRef, authorityRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(accountRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(accountRef); err != nil {
		return err
	}
	if err := AssertDataLength(accountRef, AccountSize); err != nil {
		return err
	}
	if err := AssertWritable(destRef); err != nil {
		return err
	}

	if accountRef.Key() == destRef.Key() {
		return NewError(InvalidAuthority)
	}

	account, err := UnpackAccount(accountRef.Data())
	if err != nil {
		return err
	}
	if !account.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if account.Amount != 0 {
		return NewError(NonZeroBalance)
	}

	closeAuthority := account.Owner
	if account.CloseAuthority != nil {
		closeAuthority = *account.CloseAuthority
	}
	if err := ValidateAuthority(programID, closeAuthority, authorityRef, signerRefs); err != nil {
		return err
	}

	newDestLamports, err := CheckedAdd(destRef.Lamports(), accountRef.Lamports())
	if err != nil {
		return NewError(Overflow)
	}
	destRef.SetLamports(newDestLamports)
	accountRef.SetLamports(0)
	accountRef.SetData(make([]byte, len(accountRef.Data())))

	return nil
}

// ---------------------------------------------------------------------
// 4.6.11 FreezeAccount / ThawAccount
// ---------------------------------------------------------------------

func (p *Processor) setFrozen(programID pubkey.PublicKey, records []RecordRef, frozen bool) error {
	if err := requireRecords(records, 3); err != nil {
		return err
	}
	accountRef, mintRef, authorityRef := records[0], records[1], records[2]
	signerRefs := records[3:]

	if err := AssertOwnedBy(accountRef, programID); err != nil {
		return err
	}
	if err := AssertWritable(accountRef); err != nil {
		return err
	}
	if err := AssertDataLength(accountRef, AccountSize); err != nil {
		return err
	}
	if err := AssertOwnedBy(mintRef, programID); err != nil {
		return err
	}
	if err := AssertDataLength(mintRef, MintSize); err != nil {
		return err
	}

	account, err := UnpackAccount(accountRef.Data())
	if err != nil {
		return err
	}
	mint, err := UnpackMint(mintRef.Data())
	if err != nil {
		return err
	}

	if !account.IsInitialized() {
		return NewError(UninitializedAccount)
	}
	if !mint.IsInitialized {
		return NewError(UninitializedAccount)
	}
	if account.Mint != mintRef.Key() {
		return NewError(MintMismatch)
	}
	if mint.FreezeAuthority == nil {
		return NewError(FreezeAuthorityRequired)
	}

	if err := ValidateAuthority(programID, *mint.FreezeAuthority, authorityRef, signerRefs); err != nil {
		return err
	}

	// Neither Freeze nor Thaw checks the current state first (spec.md
	// §4.6.11, §9): freezing an already-frozen account, or thawing an
	// already-thawed one, succeeds as a no-op.
	if frozen {
		account.State = AccountStateFrozen
	} else {
		account.State = AccountStateInitialized
	}

	return packInto(accountRef, account)
}

// ---------------------------------------------------------------------
// shared helpers
// ---------------------------------------------------------------------

// decrementDelegatedAmount applies the delegate-allowance decrement
// shared by Transfer and Burn (spec.md §4.5): fails
// InsufficientDelegatedAmount on underflow, and clears the delegate once
// the remaining allowance reaches zero.
func decrementDelegatedAmount(account *Account, amount uint64) error {
	if account.DelegatedAmount < amount {
		return NewError(InsufficientDelegatedAmount)
	}
	remaining, err := CheckedSub(account.DelegatedAmount, amount)
	if err != nil {
		return NewError(InsufficientDelegatedAmount)
	}
	account.DelegatedAmount = remaining
	if account.DelegatedAmount == 0 {
		account.Delegate = nil
	}
	return nil
}

// packer is implemented by every record type's Pack method.
type packer interface {
	Pack() ([]byte, error)
}

func packInto(ref RecordRef, rec packer) error {
	b, err := rec.Pack()
	if err != nil {
		return err
	}
	ref.SetData(b)
	return nil
}

// unpackMultisigLoose decodes a Multisig without applying
// UnpackMultisig's initialized-config validation, since the zeroed,
// not-yet-initialized multisig record handed to InitializeMultisig does
// not satisfy those invariants yet.
func unpackMultisigLoose(data []byte) (*Multisig, error) {
	if len(data) != MultisigSize {
		return nil, NewError(InvalidAccountData)
	}
	ms := new(Multisig)
	dec := ag_binary.NewBinDecoder(data)
	if err := ms.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	return ms, nil
}

// rentOracleFromRef adapts a RecordRef that happens to carry a RentOracle
// (the common host pattern: a dedicated sysvar-like record exposing rent
// parameters) into the RentOracle interface. Hosts that pass a record
// which does not implement RentOracle get InvalidAccountData.
func rentOracleFromRef(ref RecordRef) (RentOracle, error) {
	if oracle, ok := ref.(RentOracle); ok {
		return oracle, nil
	}
	return nil, NewError(InvalidAccountData)
}
