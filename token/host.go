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
	"github.com/tokenforge/spl-token-engine/pubkey"
)

// RecordRef is the host-provided handle to one persistent record (spec.md
// §6). The engine never allocates, resizes, or closes these; it only
// reads and, for writable records, mutates Data/Lamports through this
// interface for the lifetime of one Process call.
type RecordRef interface {
	Key() pubkey.PublicKey
	OwnerProgram() pubkey.PublicKey
	IsSigner() bool
	IsWritable() bool
	IsExecutable() bool
	Lamports() uint64
	SetLamports(uint64)
	Data() []byte
	SetData([]byte)
}

// RentOracle answers whether a (lamports, data length) pair is
// rent-exempt (spec.md §6). Rent/lamport accounting itself is owned by
// the host; the engine only consults this oracle during Initialize*.
type RentOracle interface {
	IsExempt(lamports uint64, dataLen int) bool
}

// AssertOwnedBy requires ref to be owned by programID (spec.md §4.6 common
// preamble).
func AssertOwnedBy(ref RecordRef, programID pubkey.PublicKey) error {
	if ref.OwnerProgram() != programID {
		return NewError(InvalidAccountOwner)
	}
	return nil
}

// AssertWritable requires ref to be marked writable by the host.
func AssertWritable(ref RecordRef) error {
	if !ref.IsWritable() {
		return NewError(InvalidAccountData)
	}
	return nil
}

// AssertDataLength requires ref's data to be exactly n bytes.
func AssertDataLength(ref RecordRef, n int) error {
	if len(ref.Data()) != n {
		return NewError(InvalidAccountDataLength)
	}
	return nil
}

// AssertRentExempt requires ref's (lamports, data length) pair to satisfy
// oracle, used by every Initialize* handler (spec.md §4.6 common
// preamble), named and reused rather than inlined per file, mirroring the
// original source's `utils/assertions.rs::assert_rent_exempt`.
func AssertRentExempt(ref RecordRef, oracle RentOracle) error {
	if !oracle.IsExempt(ref.Lamports(), len(ref.Data())) {
		return NewError(NotRentExempt)
	}
	return nil
}
