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

import "fmt"

// ErrorKind is the engine's single discriminated error type. The order
// below is a wire/compatibility requirement (spec.md §6): clients match on
// the numeric code, so new kinds are only ever appended.
type ErrorKind int

const (
	InvalidAccountOwner ErrorKind = iota
	InvalidAccountDataLength
	NotRentExempt
	AlreadyInitialized
	UninitializedAccount
	InvalidAuthority
	OwnerMismatch
	MintAuthorityRequired
	AccountFrozen
	FreezeAuthorityRequired
	InsufficientFunds
	Overflow
	MintMismatch
	NonZeroBalance
	InvalidInstruction
	NoDelegate
	InsufficientDelegatedAmount
	NotEnoughSigners
	InvalidMultisigConfig
	InvalidMultisigSigner
	CloseAuthorityMismatch
	NativeAccountHasBalance
	SelfTransfer

	// Host-level kinds, surfaced by this engine as distinct ErrorKind
	// values per spec.md §6 even though the host, not the engine,
	// usually detects them first (e.g. a buffer-borrow failure).
	MissingRequiredSignature
	InvalidAccountData
)

var errorKindNames = [...]string{
	"InvalidAccountOwner",
	"InvalidAccountDataLength",
	"NotRentExempt",
	"AlreadyInitialized",
	"UninitializedAccount",
	"InvalidAuthority",
	"OwnerMismatch",
	"MintAuthorityRequired",
	"AccountFrozen",
	"FreezeAuthorityRequired",
	"InsufficientFunds",
	"Overflow",
	"MintMismatch",
	"NonZeroBalance",
	"InvalidInstruction",
	"NoDelegate",
	"InsufficientDelegatedAmount",
	"NotEnoughSigners",
	"InvalidMultisigConfig",
	"InvalidMultisigSigner",
	"CloseAuthorityMismatch",
	"NativeAccountHasBalance",
	"SelfTransfer",
	"MissingRequiredSignature",
	"InvalidAccountData",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// Error is the value every failing engine operation returns. It carries no
// payload beyond its Kind (spec.md §7) plus an optional causal chain for
// debugging, populated at the CLI/simulation boundary and by
// DecodeInstruction (which attaches the decoder's own error) — the
// handlers in this package construct bare *Error values with NewError.
type Error struct {
	Kind  ErrorKind
	cause error
}

// NewError builds a bare *Error for the given kind.
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// WithCause attaches a causal error, for callers (e.g. cmd/tokenctl) that
// want a `%+v` stack trace via github.com/pkg/errors without changing the
// Kind clients match on.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("token: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("token: %s", e.Kind)
}

// Format implements fmt.Formatter. %+v renders the cause with its own %+v,
// so a github.com/pkg/errors cause prints its stack trace; every other
// verb prints Error().
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		fmt.Fprintf(s, "token: %s: %+v", e.Kind, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Unwrap exposes the causal chain to errors.Is/errors.As. *Error has no
// Cause method, so github.com/pkg/errors.Cause stops at the *Error itself.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether err (or any error in err's chain) is a *Error of the
// same Kind, so callers can do `errors.Is(err, token.NewError(token.AccountFrozen))`.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the ErrorKind from err if it is (or wraps) a *Error,
// returning ok=false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	for err != nil {
		if te, ok := err.(*Error); ok {
			e = te
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return 0, false
	}
	return e.Kind, true
}
