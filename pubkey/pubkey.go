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

// Package pubkey provides the 32-byte key type shared by every record and
// instruction in the token engine. It intentionally carries none of the
// transaction/RPC machinery of a full Solana SDK — only the pieces the
// engine's wire formats and the CLI's display layer need.
package pubkey

import (
	"crypto/sha512"
	"encoding/base64"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Size is the length in bytes of a public key.
const Size = 32

// PublicKey is a 32-byte ed25519 public key, the address type used for
// every Mint, Account, Multisig, owner, delegate and authority field.
type PublicKey [Size]byte

// New builds a PublicKey from a byte slice of exactly Size bytes.
func New(b []byte) PublicKey {
	var pk PublicKey
	copy(pk[:], b)
	return pk
}

// FromBase58 decodes a base58-encoded public key, as printed by String.
func FromBase58(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, err
	}
	if len(b) != Size {
		return PublicKey{}, ErrInvalidLength
	}
	return New(b), nil
}

// ErrInvalidLength is returned when decoding a key of the wrong size.
var ErrInvalidLength = errInvalidLength{}

type errInvalidLength struct{}

func (errInvalidLength) Error() string { return "pubkey: invalid length, expected 32 bytes" }

// IsZero reports whether the key is the all-zero default value, as used to
// mark unset Multisig signer slots.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Bytes returns the key as a plain byte slice.
func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

// ToPointer returns a pointer to a copy of pk, mirroring the teacher's
// `PublicKeyFromBytes(...).ToPointer()` idiom used for optional fields.
func (pk PublicKey) ToPointer() *PublicKey {
	cp := pk
	return &cp
}

// String renders the key as base58, the display form used throughout the
// Solana ecosystem.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Equals reports whether two keys hold the same bytes.
func (pk PublicKey) Equals(other PublicKey) bool {
	return pk == other
}

// base64 renders the key as standard base64. It is unexported and nothing
// in the module calls it; no wire path uses it.
func (pk PublicKey) base64() string {
	return base64.StdEncoding.EncodeToString(pk[:])
}

// DeriveFromSeed computes the ed25519 public key point for a 32-byte seed,
// performing the scalar-clamp-and-multiply step by hand with
// filippo.io/edwards25519 rather than going through crypto/ed25519's
// opaque key type. memhost uses this to mint deterministic simulated
// signer keys whose curve point is verifiably on the curve, the same way
// low-level multisig-aggregation code in the wider ecosystem manipulates
// ed25519 points directly instead of treating keys as opaque blobs.
func DeriveFromSeed(seed [32]byte) (PublicKey, error) {
	h := sha512.Sum512(seed[:])

	var clamped [32]byte
	copy(clamped[:], h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64

	s, err := edwards25519.NewScalar().SetBytesWithClamping(clamped[:])
	if err != nil {
		return PublicKey{}, err
	}

	point := edwards25519.NewIdentityPoint().ScalarBaseMult(s)
	return New(point.Bytes()), nil
}
