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

	ag_binary "github.com/gagliardetto/binary"

	"github.com/tokenforge/spl-token-engine/pubkey"
)

// MAX_SIGNERS is the maximum number of enrolled signers a Multisig may
// hold (spec.md §3.3).
const MAX_SIGNERS = 11

// Record sizes, byte-exact and forward-stable (spec.md §3).
const (
	MintSize     = 82
	AccountSize  = 165
	MultisigSize = 355
)

// AccountState is the Account.State variant (spec.md §3.2).
type AccountState uint8

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

func (s AccountState) String() string {
	switch s {
	case AccountStateUninitialized:
		return "Uninitialized"
	case AccountStateInitialized:
		return "Initialized"
	case AccountStateFrozen:
		return "Frozen"
	default:
		return "Unknown"
	}
}

// Mint represents a token type (spec.md §3.1). 82 bytes packed.
type Mint struct {
	// Optional authority used to mint new tokens. `nil` means supply is
	// frozen forever (terminal, spec.md §3.1).
	MintAuthority *pubkey.PublicKey

	// Current total units in existence across all Accounts of this Mint.
	Supply uint64

	// Display scaling exponent; purely informational.
	Decimals uint8

	// Guard flag; never clears once set.
	IsInitialized bool

	// Optional authority permitted to freeze/thaw Accounts of this Mint.
	// `nil` is terminal.
	FreezeAuthority *pubkey.PublicKey
}

// UnmarshalWithDecoder implements ag_binary.BinaryUnmarshaler, matching the
// field-by-field tagged-optional decode the teacher hand-writes in
// programs/token/accounts.go.
func (m *Mint) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	if m.MintAuthority, err = decodeOptionalKey(dec); err != nil {
		return err
	}
	if m.Supply, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if m.Decimals, err = dec.ReadUint8(); err != nil {
		return err
	}
	if m.IsInitialized, err = dec.ReadBool(); err != nil {
		return err
	}
	if m.FreezeAuthority, err = decodeOptionalKey(dec); err != nil {
		return err
	}
	return nil
}

// MarshalWithEncoder implements ag_binary.BinaryMarshaler.
func (m Mint) MarshalWithEncoder(enc *ag_binary.Encoder) (err error) {
	if err = encodeOptionalKey(enc, m.MintAuthority); err != nil {
		return err
	}
	if err = enc.WriteUint64(m.Supply, binary.LittleEndian); err != nil {
		return err
	}
	if err = enc.WriteUint8(m.Decimals); err != nil {
		return err
	}
	if err = enc.WriteBool(m.IsInitialized); err != nil {
		return err
	}
	if err = encodeOptionalKey(enc, m.FreezeAuthority); err != nil {
		return err
	}
	return nil
}

// Pack serializes the Mint to its canonical 82-byte representation.
func (m Mint) Pack() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := ag_binary.NewBinEncoder(buf)
	if err := m.MarshalWithEncoder(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnpackMint decodes a Mint from its canonical 82-byte representation,
// reporting InvalidAccountData on a wrong-length input (spec.md §4.3).
func UnpackMint(data []byte) (*Mint, error) {
	if len(data) != MintSize {
		return nil, NewError(InvalidAccountData)
	}
	dec := ag_binary.NewBinDecoder(data)
	m := new(Mint)
	if err := m.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	return m, nil
}

// Account represents a balance holder for one Mint (spec.md §3.2). 165
// bytes packed.
type Account struct {
	// The mint this Account is bound to; immutable after init.
	Mint pubkey.PublicKey

	// The key whose signature authorizes operations.
	Owner pubkey.PublicKey

	// Current balance in base units.
	Amount uint64

	// Optional approved spender.
	Delegate *pubkey.PublicKey

	// Uninitialized / Initialized / Frozen.
	State AccountState

	// Optional reserved marker, carried through pack/unpack only; this
	// engine never consults or sets it (spec.md §9).
	IsNative *uint64

	// Remaining allowance for Delegate.
	DelegatedAmount uint64

	// Optional alternate authority permitted to close the Account.
	CloseAuthority *pubkey.PublicKey
}

func (a *Account) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	mintBytes, err := dec.ReadNBytes(pubkey.Size)
	if err != nil {
		return err
	}
	a.Mint = pubkey.New(mintBytes)

	ownerBytes, err := dec.ReadNBytes(pubkey.Size)
	if err != nil {
		return err
	}
	a.Owner = pubkey.New(ownerBytes)

	if a.Amount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if a.Delegate, err = decodeOptionalKey(dec); err != nil {
		return err
	}
	stateByte, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	a.State = AccountState(stateByte)
	if a.IsNative, err = decodeOptionalU64(dec); err != nil {
		return err
	}
	if a.DelegatedAmount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if a.CloseAuthority, err = decodeOptionalKey(dec); err != nil {
		return err
	}
	return nil
}

func (a Account) MarshalWithEncoder(enc *ag_binary.Encoder) (err error) {
	if err = enc.WriteBytes(a.Mint[:], false); err != nil {
		return err
	}
	if err = enc.WriteBytes(a.Owner[:], false); err != nil {
		return err
	}
	if err = enc.WriteUint64(a.Amount, binary.LittleEndian); err != nil {
		return err
	}
	if err = encodeOptionalKey(enc, a.Delegate); err != nil {
		return err
	}
	if err = enc.WriteUint8(uint8(a.State)); err != nil {
		return err
	}
	if err = encodeOptionalU64(enc, a.IsNative); err != nil {
		return err
	}
	if err = enc.WriteUint64(a.DelegatedAmount, binary.LittleEndian); err != nil {
		return err
	}
	if err = encodeOptionalKey(enc, a.CloseAuthority); err != nil {
		return err
	}
	return nil
}

// Pack serializes the Account to its canonical 165-byte representation.
func (a Account) Pack() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := ag_binary.NewBinEncoder(buf)
	if err := a.MarshalWithEncoder(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnpackAccount decodes an Account from its canonical 165-byte
// representation.
func UnpackAccount(data []byte) (*Account, error) {
	if len(data) != AccountSize {
		return nil, NewError(InvalidAccountData)
	}
	dec := ag_binary.NewBinDecoder(data)
	a := new(Account)
	if err := a.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	return a, nil
}

// IsInitialized reports whether the Account has left the Uninitialized
// state (spec.md §3.2).
func (a *Account) IsInitialized() bool {
	return a.State != AccountStateUninitialized
}

// IsFrozen reports whether the Account forbids outgoing mutation.
func (a *Account) IsFrozen() bool {
	return a.State == AccountStateFrozen
}

// Multisig is an M-of-N authority (spec.md §3.3). 355 bytes packed.
type Multisig struct {
	// Required signatures.
	M uint8
	// Total enrolled signers.
	N uint8
	// Guard flag.
	IsInitialized bool
	// Enrolled signer keys; only the first N slots are meaningful.
	Signers [MAX_SIGNERS]pubkey.PublicKey
}

func (ms *Multisig) UnmarshalWithDecoder(dec *ag_binary.Decoder) (err error) {
	if ms.M, err = dec.ReadUint8(); err != nil {
		return err
	}
	if ms.N, err = dec.ReadUint8(); err != nil {
		return err
	}
	if ms.IsInitialized, err = dec.ReadBool(); err != nil {
		return err
	}
	for i := 0; i < MAX_SIGNERS; i++ {
		b, err := dec.ReadNBytes(pubkey.Size)
		if err != nil {
			return err
		}
		ms.Signers[i] = pubkey.New(b)
	}
	return nil
}

func (ms Multisig) MarshalWithEncoder(enc *ag_binary.Encoder) (err error) {
	if err = enc.WriteUint8(ms.M); err != nil {
		return err
	}
	if err = enc.WriteUint8(ms.N); err != nil {
		return err
	}
	if err = enc.WriteBool(ms.IsInitialized); err != nil {
		return err
	}
	for i := 0; i < MAX_SIGNERS; i++ {
		if err = enc.WriteBytes(ms.Signers[i][:], false); err != nil {
			return err
		}
	}
	return nil
}

// Pack serializes the Multisig to its canonical 355-byte representation.
func (ms Multisig) Pack() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := ag_binary.NewBinEncoder(buf)
	if err := ms.MarshalWithEncoder(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnpackMultisig decodes a Multisig from its canonical 355-byte
// representation, additionally validating N <= MAX_SIGNERS, M <= N, and
// (iff initialized) M >= 1, per spec.md §4.3.
func UnpackMultisig(data []byte) (*Multisig, error) {
	if len(data) != MultisigSize {
		return nil, NewError(InvalidAccountData)
	}
	dec := ag_binary.NewBinDecoder(data)
	ms := new(Multisig)
	if err := ms.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	if ms.N > MAX_SIGNERS {
		return nil, NewError(InvalidMultisigConfig)
	}
	if ms.M > ms.N {
		return nil, NewError(InvalidMultisigConfig)
	}
	if ms.IsInitialized && ms.M < 1 {
		return nil, NewError(InvalidMultisigConfig)
	}
	return ms, nil
}
