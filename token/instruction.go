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
	"bytes"
	"encoding/binary"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	ag_treeout "github.com/gagliardetto/treeout"

	"github.com/tokenforge/spl-token-engine/pubkey"
)

// Instruction discriminants (spec.md §6). The wire layout is
// `[discriminant:1][payload:variable]`; pack(unpack(x)) == x for every
// legal x (spec.md §4.4, §8).
const (
	Instruction_InitializeMint uint8 = iota
	Instruction_InitializeAccount
	Instruction_InitializeMultisig
	Instruction_Transfer
	Instruction_Approve
	Instruction_Revoke
	Instruction_SetAuthority
	Instruction_MintTo
	Instruction_Burn
	Instruction_CloseAccount
	Instruction_FreezeAccount
	Instruction_ThawAccount
)

// AuthorityType selects which authority SetAuthority targets (spec.md
// §4.6.7).
type AuthorityType uint8

const (
	AuthorityTypeMintTokens AuthorityType = iota
	AuthorityTypeFreezeAccount
	AuthorityTypeAccountOwner
	AuthorityTypeCloseAccount
)

func (t AuthorityType) String() string {
	switch t {
	case AuthorityTypeMintTokens:
		return "MintTokens"
	case AuthorityTypeFreezeAccount:
		return "FreezeAccount"
	case AuthorityTypeAccountOwner:
		return "AccountOwner"
	case AuthorityTypeCloseAccount:
		return "CloseAccount"
	default:
		return "Unknown"
	}
}

// ---------------------------------------------------------------------
// Instruction sum type
// ---------------------------------------------------------------------

// Instruction is the Go sum type over the twelve wire instructions,
// following the teacher's `ag_binary.BaseVariant`-tagged-variant pattern
// (programs/associated-token-account/Create.go's `Instruction` wrapper)
// rather than a hand-rolled interface switch, so that a single registered
// variant table drives both encode and decode.
type Instruction struct {
	ag_binary.BaseVariant
}

// instructionVariantDef registers every payload type against its
// discriminant. Order matches Instruction_* above.
var instructionVariantDef = ag_binary.NewVariantDefinition(
	ag_binary.Uint8TypeIDEncoding,
	[]ag_binary.VariantType{
		{Name: "InitializeMint", Type: (*InitializeMint)(nil)},
		{Name: "InitializeAccount", Type: (*InitializeAccount)(nil)},
		{Name: "InitializeMultisig", Type: (*InitializeMultisig)(nil)},
		{Name: "Transfer", Type: (*Transfer)(nil)},
		{Name: "Approve", Type: (*Approve)(nil)},
		{Name: "Revoke", Type: (*Revoke)(nil)},
		{Name: "SetAuthority", Type: (*SetAuthority)(nil)},
		{Name: "MintTo", Type: (*MintTo)(nil)},
		{Name: "Burn", Type: (*Burn)(nil)},
		{Name: "CloseAccount", Type: (*CloseAccount)(nil)},
		{Name: "FreezeAccount", Type: (*FreezeAccount)(nil)},
		{Name: "ThawAccount", Type: (*ThawAccount)(nil)},
	},
)

// UnmarshalWithDecoder implements ag_binary.BinaryUnmarshaler.
func (inst *Instruction) UnmarshalWithDecoder(decoder *ag_binary.Decoder) error {
	return inst.BaseVariant.UnmarshalBinaryVariant(decoder, instructionVariantDef)
}

// MarshalWithEncoder implements ag_binary.BinaryMarshaler.
func (inst Instruction) MarshalWithEncoder(encoder *ag_binary.Encoder) error {
	if err := encoder.WriteUint8(inst.TypeID.Uint8); err != nil {
		return err
	}
	return encoder.Encode(inst.Impl)
}

// Data packs the Instruction to its canonical wire bytes.
func (inst Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := ag_binary.NewBinEncoder(buf)
	if err := inst.MarshalWithEncoder(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// instructionNames mirrors instructionVariantDef's order for debug
// display, indexed by discriminant.
var instructionNames = [...]string{
	"InitializeMint",
	"InitializeAccount",
	"InitializeMultisig",
	"Transfer",
	"Approve",
	"Revoke",
	"SetAuthority",
	"MintTo",
	"Burn",
	"CloseAccount",
	"FreezeAccount",
	"ThawAccount",
}

// Name returns the human-readable variant name for debug output.
func (inst Instruction) Name() string {
	id := inst.TypeID.Uint8
	if int(id) >= len(instructionNames) {
		return fmt.Sprintf("Unknown(%d)", id)
	}
	return instructionNames[id]
}

// EncodeToTree renders the instruction and its payload fields as a tree,
// following the teacher's `EncodeToTree(parent ag_treeout.Branches)`
// convention (programs/associated-token-account/Create.go) rather than a
// one-off String method, so a CLI can nest it under a wider transaction
// tree the same way the teacher's instruction builders do.
func (inst Instruction) EncodeToTree(parent ag_treeout.Branches) {
	// Built instructions hold value payloads while decoded ones hold
	// pointers; render through the decoded form so both show their fields.
	impl := inst.Impl
	if data, err := inst.Data(); err == nil {
		if decoded, err := DecodeInstruction(data); err == nil {
			impl = decoded.Impl
		}
	}
	parent.Child(fmt.Sprintf("Instruction: %s", inst.Name())).
		ParentFunc(func(branch ag_treeout.Branches) {
			switch payload := impl.(type) {
			case *InitializeMint:
				branch.Child(fmt.Sprintf("Decimals: %d", payload.Decimals))
				branch.Child(fmt.Sprintf("MintAuthority: %s", payload.MintAuthority))
				branch.Child(fmt.Sprintf("FreezeAuthority: %s", formatOptionalKey(payload.FreezeAuthority)))
			case *InitializeMultisig:
				branch.Child(fmt.Sprintf("M: %d", payload.M))
			case *Transfer:
				branch.Child(fmt.Sprintf("Amount: %d", payload.Amount))
			case *Approve:
				branch.Child(fmt.Sprintf("Amount: %d", payload.Amount))
			case *SetAuthority:
				branch.Child(fmt.Sprintf("AuthorityType: %s", payload.AuthorityType))
				branch.Child(fmt.Sprintf("NewAuthority: %s", formatOptionalKey(payload.NewAuthority)))
			case *MintTo:
				branch.Child(fmt.Sprintf("Amount: %d", payload.Amount))
			case *Burn:
				branch.Child(fmt.Sprintf("Amount: %d", payload.Amount))
			default:
				branch.Child("(no parameters)")
			}
		})
}

func formatOptionalKey(pk *pubkey.PublicKey) string {
	if pk == nil {
		return "<none>"
	}
	return pk.String()
}

// DecodeInstruction parses the `[discriminant:1][payload]` wire format
// into an Instruction, reporting InvalidInstruction on an unknown
// discriminant or a short/malformed payload (spec.md §4.4).
func DecodeInstruction(data []byte) (*Instruction, error) {
	if len(data) < 1 {
		return nil, NewError(InvalidInstruction)
	}
	dec := ag_binary.NewBinDecoder(data)
	inst := new(Instruction)
	if err := inst.UnmarshalWithDecoder(dec); err != nil {
		return nil, NewError(InvalidInstruction).WithCause(err)
	}
	return inst, nil
}

// ---------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------

// InitializeMint is instruction 0.
//
// Records expected (spec.md §4.6.1):
//
//	0. [WRITE] Mint to initialize.
//	1. []      Rent oracle.
type InitializeMint struct {
	Decimals        uint8
	MintAuthority   pubkey.PublicKey
	FreezeAuthority *pubkey.PublicKey
}

func (i *InitializeMint) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	if i.Decimals, err = dec.ReadUint8(); err != nil {
		return err
	}
	b, err := dec.ReadNBytes(pubkey.Size)
	if err != nil {
		return err
	}
	i.MintAuthority = pubkey.New(b)
	i.FreezeAuthority, err = decodeOptionalKeyPrefixed(dec)
	return err
}

func (i InitializeMint) MarshalWithEncoder(enc *ag_binary.Encoder) (err error) {
	if err = enc.WriteUint8(i.Decimals); err != nil {
		return err
	}
	if err = enc.WriteBytes(i.MintAuthority[:], false); err != nil {
		return err
	}
	return encodeOptionalKeyPrefixed(enc, i.FreezeAuthority)
}

// NewInitializeMintInstruction builds an InitializeMint instruction,
// mirroring the teacher's `NewXxxInstruction` free-function convention.
func NewInitializeMintInstruction(decimals uint8, mintAuthority pubkey.PublicKey, freezeAuthority *pubkey.PublicKey) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl: InitializeMint{
			Decimals:        decimals,
			MintAuthority:   mintAuthority,
			FreezeAuthority: freezeAuthority,
		},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_InitializeMint),
	}}
}

// InitializeAccount is instruction 1. No payload.
//
// Records expected (spec.md §4.6.2):
//
//	0. [WRITE] Account to initialize.
//	1. []      Mint.
//	2. []      Owner.
//	3. []      Rent oracle.
type InitializeAccount struct{}

func (i *InitializeAccount) UnmarshalWithDecoder(*ag_binary.Decoder) error { return nil }
func (i InitializeAccount) MarshalWithEncoder(*ag_binary.Encoder) error    { return nil }

// NewInitializeAccountInstruction builds an InitializeAccount instruction.
func NewInitializeAccountInstruction() *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   InitializeAccount{},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_InitializeAccount),
	}}
}

// InitializeMultisig is instruction 2.
//
// Records expected (spec.md §4.6.3):
//
//	0. [WRITE] Multisig to initialize.
//	1. []      Rent oracle.
//	2..2+N []  Signer accounts (N derived from the record count).
type InitializeMultisig struct {
	M uint8
}

func (i *InitializeMultisig) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	i.M, err = dec.ReadUint8()
	return err
}

func (i InitializeMultisig) MarshalWithEncoder(enc *ag_binary.Encoder) error {
	return enc.WriteUint8(i.M)
}

// NewInitializeMultisigInstruction builds an InitializeMultisig instruction.
func NewInitializeMultisigInstruction(m uint8) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   InitializeMultisig{M: m},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_InitializeMultisig),
	}}
}

// Transfer is instruction 3.
//
// Records expected (spec.md §4.6.4):
//
//	0. [WRITE] Source account.
//	1. [WRITE] Destination account.
//	2. []      Authority (owner or delegate).
//	3..3+M []  Multisig signers, if applicable.
type Transfer struct {
	Amount uint64
}

func (i *Transfer) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	i.Amount, err = dec.ReadUint64(binary.LittleEndian)
	return err
}

func (i Transfer) MarshalWithEncoder(enc *ag_binary.Encoder) error {
	return enc.WriteUint64(i.Amount, binary.LittleEndian)
}

// NewTransferInstruction builds a Transfer instruction.
func NewTransferInstruction(amount uint64) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   Transfer{Amount: amount},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_Transfer),
	}}
}

// Approve is instruction 4.
//
// Records expected (spec.md §4.6.5):
//
//	0. [WRITE] Source account.
//	1. []      Delegate.
//	2. []      Owner.
//	3..3+M []  Multisig signers, if applicable.
type Approve struct {
	Amount uint64
}

func (i *Approve) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	i.Amount, err = dec.ReadUint64(binary.LittleEndian)
	return err
}

func (i Approve) MarshalWithEncoder(enc *ag_binary.Encoder) error {
	return enc.WriteUint64(i.Amount, binary.LittleEndian)
}

// NewApproveInstruction builds an Approve instruction.
func NewApproveInstruction(amount uint64) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   Approve{Amount: amount},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_Approve),
	}}
}

// Revoke is instruction 5. No payload.
//
// Records expected (spec.md §4.6.6):
//
//	0. [WRITE] Source account.
//	1. []      Owner.
//	2..2+M []  Multisig signers, if applicable.
type Revoke struct{}

func (i *Revoke) UnmarshalWithDecoder(*ag_binary.Decoder) error { return nil }
func (i Revoke) MarshalWithEncoder(*ag_binary.Encoder) error    { return nil }

// NewRevokeInstruction builds a Revoke instruction.
func NewRevokeInstruction() *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   Revoke{},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_Revoke),
	}}
}

// SetAuthority is instruction 6.
//
// Records expected (spec.md §4.6.7):
//
//	0. [WRITE] Target Mint or Account.
//	1. []      Current authority.
//	2..2+M []  Multisig signers, if applicable.
type SetAuthority struct {
	AuthorityType AuthorityType
	NewAuthority  *pubkey.PublicKey
}

func (i *SetAuthority) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	t, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	i.AuthorityType = AuthorityType(t)
	i.NewAuthority, err = decodeOptionalKeyPrefixed(dec)
	return err
}

func (i SetAuthority) MarshalWithEncoder(enc *ag_binary.Encoder) (err error) {
	if err = enc.WriteUint8(uint8(i.AuthorityType)); err != nil {
		return err
	}
	return encodeOptionalKeyPrefixed(enc, i.NewAuthority)
}

// NewSetAuthorityInstruction builds a SetAuthority instruction.
func NewSetAuthorityInstruction(authorityType AuthorityType, newAuthority *pubkey.PublicKey) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   SetAuthority{AuthorityType: authorityType, NewAuthority: newAuthority},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_SetAuthority),
	}}
}

// MintTo is instruction 7.
//
// Records expected (spec.md §4.6.8):
//
//	0. [WRITE] Mint.
//	1. [WRITE] Destination account.
//	2. []      Mint authority.
//	3..3+M []  Multisig signers, if applicable.
type MintTo struct {
	Amount uint64
}

func (i *MintTo) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	i.Amount, err = dec.ReadUint64(binary.LittleEndian)
	return err
}

func (i MintTo) MarshalWithEncoder(enc *ag_binary.Encoder) error {
	return enc.WriteUint64(i.Amount, binary.LittleEndian)
}

// NewMintToInstruction builds a MintTo instruction.
func NewMintToInstruction(amount uint64) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   MintTo{Amount: amount},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_MintTo),
	}}
}

// Burn is instruction 8.
//
// Records expected (spec.md §4.6.9):
//
//	0. [WRITE] Account to burn from.
//	1. [WRITE] Mint.
//	2. []      Authority (owner or delegate).
//	3..3+M []  Multisig signers, if applicable.
type Burn struct {
	Amount uint64
}

func (i *Burn) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	i.Amount, err = dec.ReadUint64(binary.LittleEndian)
	return err
}

func (i Burn) MarshalWithEncoder(enc *ag_binary.Encoder) error {
	return enc.WriteUint64(i.Amount, binary.LittleEndian)
}

// NewBurnInstruction builds a Burn instruction.
func NewBurnInstruction(amount uint64) *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   Burn{Amount: amount},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_Burn),
	}}
}

// CloseAccount is instruction 9. No payload.
//
// Records expected (spec.md §4.6.10):
//
//	0. [WRITE] Account to close.
//	1. [WRITE] Destination for lamports.
//	2. []      Authority (close_authority or owner).
//	3..3+M []  Multisig signers, if applicable.
type CloseAccount struct{}

func (i *CloseAccount) UnmarshalWithDecoder(*ag_binary.Decoder) error { return nil }
func (i CloseAccount) MarshalWithEncoder(*ag_binary.Encoder) error    { return nil }

// NewCloseAccountInstruction builds a CloseAccount instruction.
func NewCloseAccountInstruction() *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   CloseAccount{},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_CloseAccount),
	}}
}

// FreezeAccount is instruction 10. No payload.
//
// Records expected (spec.md §4.6.11):
//
//	0. [WRITE] Account to freeze.
//	1. []      Mint.
//	2. []      Freeze authority.
//	3..3+M []  Multisig signers, if applicable.
type FreezeAccount struct{}

func (i *FreezeAccount) UnmarshalWithDecoder(*ag_binary.Decoder) error { return nil }
func (i FreezeAccount) MarshalWithEncoder(*ag_binary.Encoder) error    { return nil }

// NewFreezeAccountInstruction builds a FreezeAccount instruction.
func NewFreezeAccountInstruction() *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   FreezeAccount{},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_FreezeAccount),
	}}
}

// ThawAccount is instruction 11. No payload. Same record shape as
// FreezeAccount (spec.md §4.6.11).
type ThawAccount struct{}

func (i *ThawAccount) UnmarshalWithDecoder(*ag_binary.Decoder) error { return nil }
func (i ThawAccount) MarshalWithEncoder(*ag_binary.Encoder) error    { return nil }

// NewThawAccountInstruction builds a ThawAccount instruction.
func NewThawAccountInstruction() *Instruction {
	return &Instruction{BaseVariant: ag_binary.BaseVariant{
		Impl:   ThawAccount{},
		TypeID: ag_binary.TypeIDFromUint8(Instruction_ThawAccount),
	}}
}
