// Copyright 2025 The arcshare Authors
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

// Package primefield implements exact arithmetic in a prime-order Galois
// field GF(q), with q chosen at runtime.
package primefield

import (
	"fmt"
	"math/big"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// maxOrder caps the field order so that (q-1)^2 fits in a uint64 and plain
// modular reduction stays exact. Spaces anywhere near this large are not
// enumerable anyway.
const maxOrder = 1 << 31

// Field is a finite field of prime order.
type Field struct {
	order uint64
}

// New creates a field of the given prime order. Orders below 2, above the
// uint64-safe cap, or composite are rejected.
func New(order uint64) (*Field, error) {
	if order < 2 {
		return nil, fmt.Errorf("field order %d is below 2: %w", order, secrets.ErrInvalidParameter)
	}
	if order >= maxOrder {
		return nil, fmt.Errorf("field order %d exceeds the supported maximum %d: %w", order, maxOrder-1, secrets.ErrInvalidParameter)
	}
	// ProbablyPrime(0) is exact for all operands below 2^64.
	if !new(big.Int).SetUint64(order).ProbablyPrime(0) {
		return nil, fmt.Errorf("field order %d is not prime: %w", order, secrets.ErrInvalidParameter)
	}
	return &Field{order: order}, nil
}

// Order returns the prime order q of the field.
func (f *Field) Order() uint64 {
	return f.order
}

// Reduce maps an arbitrary value into the field.
func (f *Field) Reduce(x uint64) uint64 {
	return x % f.order
}

// Add returns a+b modulo the field order. Operands must already be reduced.
func (f *Field) Add(a, b uint64) uint64 {
	f.check(a, b)
	return (a + b) % f.order
}

// Subtract returns a-b modulo the field order. Operands must already be reduced.
func (f *Field) Subtract(a, b uint64) uint64 {
	f.check(a, b)
	return (a + f.order - b) % f.order
}

// Multiply returns a*b modulo the field order. Operands must already be
// reduced, which keeps the widened product below 2^62.
func (f *Field) Multiply(a, b uint64) uint64 {
	f.check(a, b)
	return (a * b) % f.order
}

// Inverse returns the multiplicative inverse of a via Fermat exponentiation:
// a^(q-2) by square-and-multiply.
func (f *Field) Inverse(a uint64) (uint64, error) {
	if a == 0 {
		return 0, fmt.Errorf("modular inverse isn't defined for the zero element")
	}
	f.check(a, 0)
	var inverse uint64 = 1
	for exponent := f.order - 2; exponent > 0; exponent >>= 1 {
		if exponent&1 == 1 {
			inverse = f.Multiply(inverse, a)
		}
		a = f.Multiply(a, a)
	}
	return inverse, nil
}

// check guards the reduced-operand invariant. Every value handed to the
// arithmetic methods comes from Reduce or from a previous method result, so a
// violation is a bug, not an input error.
func (f *Field) check(a, b uint64) {
	if a >= f.order || b >= f.order {
		panic(fmt.Sprintf("field operand out of range: %d, %d (order %d)", a, b, f.order))
	}
}
