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

// isMultisigRecord reports whether authorityRef looks like a Multisig,
// detected structurally per spec.md §4.5: the record's data length equals
// Multisig's packed length and its owning program is programID. This
// mirrors the source's size+owner detection rather than an explicit
// instruction-level flag.
func isMultisigRecord(programID pubkey.PublicKey, authorityRef RecordRef) bool {
	return len(authorityRef.Data()) == MultisigSize && authorityRef.OwnerProgram() == programID
}

// ValidateAuthority validates authorityRef against expectedAuthority,
// dispatching to the single-signer or multisig path depending on the
// record's shape (spec.md §4.5).
func ValidateAuthority(programID pubkey.PublicKey, expectedAuthority pubkey.PublicKey, authorityRef RecordRef, signerRefs []RecordRef) error {
	if isMultisigRecord(programID, authorityRef) {
		return validateMultisigAuthority(programID, expectedAuthority, authorityRef, signerRefs)
	}
	return validateSingleSigner(expectedAuthority, authorityRef)
}

// validateSingleSigner implements spec.md §4.5's single-signer path.
func validateSingleSigner(expectedAuthority pubkey.PublicKey, authorityRef RecordRef) error {
	if authorityRef.Key() != expectedAuthority {
		return NewError(InvalidAuthority)
	}
	if !authorityRef.IsSigner() {
		return NewError(MissingRequiredSignature)
	}
	return nil
}

// validateMultisigAuthority implements spec.md §4.5's multisig path.
func validateMultisigAuthority(programID pubkey.PublicKey, expectedAuthority pubkey.PublicKey, authorityRef RecordRef, signerRefs []RecordRef) error {
	if authorityRef.Key() != expectedAuthority {
		return NewError(InvalidAuthority)
	}
	if authorityRef.OwnerProgram() != programID {
		return NewError(InvalidAccountOwner)
	}

	ms, err := UnpackMultisig(authorityRef.Data())
	if err != nil {
		return err
	}
	if !ms.IsInitialized {
		return NewError(UninitializedAccount)
	}

	// Count trailing records that are both signed and enrolled in the
	// first N slots. Duplicate signer records that each sign and match
	// the same enrolled slot each count independently — this mirrors the
	// source's behavior (spec.md §4.5, §9) rather than deduplicating.
	enrolled := ms.Signers[:ms.N]
	var count int
	for _, signer := range signerRefs {
		if !signer.IsSigner() {
			continue
		}
		for _, candidate := range enrolled {
			if signer.Key() == candidate {
				count++
				break
			}
		}
	}
	if count < int(ms.M) {
		return NewError(NotEnoughSigners)
	}
	return nil
}

// ValidateOwnerOrDelegate implements the owner-or-delegate chooser used by
// Transfer and Burn (spec.md §4.5): try owner first, then delegate (if
// present) on failure. Returns usedDelegate indicating which path
// succeeded; both failing yields InvalidAuthority.
func ValidateOwnerOrDelegate(programID pubkey.PublicKey, owner pubkey.PublicKey, delegate *pubkey.PublicKey, authorityRef RecordRef, signerRefs []RecordRef) (usedDelegate bool, err error) {
	if err := ValidateAuthority(programID, owner, authorityRef, signerRefs); err == nil {
		return false, nil
	}
	if delegate == nil {
		return false, NewError(InvalidAuthority)
	}
	if err := ValidateAuthority(programID, *delegate, authorityRef, signerRefs); err != nil {
		return false, NewError(InvalidAuthority)
	}
	return true, nil
}
