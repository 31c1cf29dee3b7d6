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

// Package projective models projective spaces PG(d, q) over prime fields:
// canonical points, full-space enumeration, lines, ranks, and dual
// hyperplanes. A point is an equivalence class of nonzero coordinate vectors
// under scalar multiplication; the canonical representative scales the first
// nonzero coordinate to 1, so point equality is plain representative
// equality.
package projective

import (
	"strconv"
	"strings"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// Point is a projective point in canonical form. Points are created by a
// Space (via Canonicalize, Points, or Line) and are immutable.
type Point struct {
	coords secrets.Tuple
	key    string
}

func newPoint(coords secrets.Tuple) Point {
	var b strings.Builder
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(c, 10))
	}
	return Point{coords: coords, key: b.String()}
}

// Key returns the canonical identity of the point, usable as a map key. Two
// points are equal exactly when their keys are equal.
func (p Point) Key() string {
	return p.key
}

// Tuple returns a copy of the canonical coordinates.
func (p Point) Tuple() secrets.Tuple {
	return p.coords.Clone()
}

// Equal reports whether two points denote the same equivalence class.
func (p Point) Equal(o Point) bool {
	return p.key == o.key
}

// String renders the point in homogeneous coordinate notation, e.g. (1:0:2).
func (p Point) String() string {
	return "(" + p.key + ")"
}
