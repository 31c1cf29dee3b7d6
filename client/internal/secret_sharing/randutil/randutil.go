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

// Package randutil abstracts the randomness consumed by the sharing engine
// so searches stay reproducible under test and cryptographically random in
// production.
package randutil

import (
	"github.com/google/tink/go/subtle/random"
)

// Source supplies random draws for hyperplane picks, pool shuffles, and
// seed-point selection. *math/rand.Rand satisfies the interface, which is
// the intended way to drive the engine deterministically in tests.
type Source interface {
	// Intn returns a uniform int in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Shuffle randomizes the order of n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

type cryptoSource struct{}

// Crypto returns a Source drawing from the platform CSPRNG.
func Crypto() Source {
	return cryptoSource{}
}

func (c cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("randutil: Intn called with non-positive n")
	}
	// Rejection sampling keeps the draw uniform across [0, n).
	bound := uint64(1) << 32
	limit := bound - bound%uint64(n)
	for {
		v := uint64(random.GetRandomUint32())
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

func (c cryptoSource) Shuffle(n int, swap func(i, j int)) {
	if n < 0 {
		panic("randutil: Shuffle called with negative n")
	}
	// Fisher-Yates over the caller's collection.
	for i := n - 1; i > 0; i-- {
		swap(i, c.Intn(i+1))
	}
}
