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
	"encoding/binary"

	ag_binary "github.com/gagliardetto/binary"

	"github.com/tokenforge/spl-token-engine/pubkey"
)

// Tagged-optional wire shape (L1, spec.md §4.1): a 4-byte little-endian
// discriminator (0 = none, 1 = some) followed by a fixed-width body. The
// body is always written, even for `none`, so every optional field has a
// constant on-wire size regardless of its value. This mirrors the exact
// byte layout the teacher's Mint/Account field encoders use inline
// (programs/token/accounts.go), pulled out here so every optional field of
// the L2 records shares one implementation instead of repeating the
// tag/body dance per field. L3 instruction payloads use the 1-byte-prefix
// shape further below instead.

// decodeOptionalKey reads a tagged-optional 32-byte public key.
func decodeOptionalKey(dec *ag_binary.Decoder) (*pubkey.PublicKey, error) {
	tag, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	body, err := dec.ReadNBytes(pubkey.Size)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		pk := pubkey.New(body)
		return &pk, nil
	default:
		return nil, NewError(InvalidInstruction)
	}
}

// encodeOptionalKey writes a tagged-optional 32-byte public key.
func encodeOptionalKey(enc *ag_binary.Encoder, pk *pubkey.PublicKey) error {
	if pk == nil {
		if err := enc.WriteUint32(0, binary.LittleEndian); err != nil {
			return err
		}
		var empty pubkey.PublicKey
		return enc.WriteBytes(empty[:], false)
	}
	if err := enc.WriteUint32(1, binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteBytes(pk[:], false)
}

// decodeOptionalU64 reads a tagged-optional 64-bit unsigned integer, used
// only by Account.IsNative (carried through for layout compatibility; the
// handlers in this engine never consult or set it, per spec.md §9).
func decodeOptionalU64(dec *ag_binary.Decoder) (*uint64, error) {
	tag, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	body, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v := body
		return &v, nil
	default:
		return nil, NewError(InvalidInstruction)
	}
}

// encodeOptionalU64 writes a tagged-optional 64-bit unsigned integer.
func encodeOptionalU64(enc *ag_binary.Encoder, v *uint64) error {
	if v == nil {
		if err := enc.WriteUint32(0, binary.LittleEndian); err != nil {
			return err
		}
		return enc.WriteUint64(0, binary.LittleEndian)
	}
	if err := enc.WriteUint32(1, binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteUint64(*v, binary.LittleEndian)
}

// decodeOptionalKeyPrefixed reads the 1-byte-prefix optional key shape used
// inside instruction payloads (spec.md §4.4/§6): a single 0/1 byte followed
// (only when 1) by 32 key bytes. This differs from the 4-byte-tag record
// shape above — the wire format intentionally uses a cheaper prefix for
// instruction data, matching the source's InitializeMint/SetAuthority
// payload encoding.
func decodeOptionalKeyPrefixed(dec *ag_binary.Decoder) (*pubkey.PublicKey, error) {
	prefix, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch prefix {
	case 0:
		return nil, nil
	case 1:
		body, err := dec.ReadNBytes(pubkey.Size)
		if err != nil {
			return nil, err
		}
		pk := pubkey.New(body)
		return &pk, nil
	default:
		return nil, NewError(InvalidInstruction)
	}
}

// encodeOptionalKeyPrefixed writes the 1-byte-prefix optional key shape.
func encodeOptionalKeyPrefixed(enc *ag_binary.Encoder, pk *pubkey.PublicKey) error {
	if pk == nil {
		return enc.WriteUint8(0)
	}
	if err := enc.WriteUint8(1); err != nil {
		return err
	}
	return enc.WriteBytes(pk[:], false)
}
