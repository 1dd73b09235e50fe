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

import "math"

// CheckedAdd adds a and b, failing with Overflow instead of wrapping
// (spec.md §4.2). Every supply/balance increment in this package goes
// through this function; raw `+` on a balance field is forbidden.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, NewError(Overflow)
	}
	return a + b, nil
}

// CheckedSub subtracts b from a, failing with InsufficientFunds instead of
// underflowing (spec.md §4.2).
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, NewError(InsufficientFunds)
	}
	return a - b, nil
}
