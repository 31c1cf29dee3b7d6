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

// Package secrets contains types for geometric secret sharing. When splitting
// a secret, a dealer provides the scheme `Metadata` and gets back a `Split`,
// which contains the secret point, the public secret line, and the splitter
// points handed to participants. Reconstruction consumes a subset of the
// splitters together with the secret line.
package secrets

import "errors"

// Tuple is one projective point as raw coordinates. It has dimension+1
// entries, each a field element in [0, q).
type Tuple []uint64

// Clone returns an independent copy of the tuple.
func (t Tuple) Clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// Metadata contains the scheme parameters needed to split a secret. The same
// parameters are derivable from the secret line at reconstruction time.
type Metadata struct {
	// Dimension of the ambient projective space. Must be at least 2.
	Dimension int
	// FieldOrder is the prime order q of the coordinate field.
	FieldOrder uint64
}

// Split represents one full sharing run produced by the dealer.
type Split struct {
	Metadata Metadata
	// Secret is the point being shared.
	Secret Tuple
	// Line is the public secret line through Secret, with exactly
	// FieldOrder+1 points.
	Line []Tuple
	// Splitters are the share points distributed to participants. No three
	// points of {Secret} ∪ Splitters are collinear, and any Dimension of
	// the splitters recover a hyperplane meeting Line only at Secret.
	Splitters []Tuple
}

// The error taxonomy of the scheme. Engine failures wrap exactly one of these
// sentinels so callers can branch with errors.Is.
var (
	// ErrInvalidParameter reports parameters rejected before any
	// computation: a non-prime field order, a dimension below 2, or a
	// malformed coordinate tuple.
	ErrInvalidParameter = errors.New("invalid scheme parameter")

	// ErrInvalidVector reports an all-zero vector where a projective point
	// is required.
	ErrInvalidVector = errors.New("zero vector has no projective point")

	// ErrNoCandidateHyperplane reports that no hyperplane meets the secret
	// line transversally at the secret, so no splitter pool exists.
	ErrNoCandidateHyperplane = errors.New("no candidate hyperplane for secret")

	// ErrSplitterSearchExhausted reports that the bounded general-position
	// search gave up before finding a full-rank splitter set.
	ErrSplitterSearchExhausted = errors.New("splitter search exhausted")

	// ErrAmbiguousReconstruction reports that the provided shares do not
	// pin down a unique secret: too few shares, shares off a common
	// hyperplane, or an intersection with the secret line that is not a
	// single point.
	ErrAmbiguousReconstruction = errors.New("shares do not determine a unique secret")
)
