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

package projective

import (
	"fmt"
	"sync"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/primefield"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// maxPoints bounds the total point count of a space. Everything downstream
// (hyperplane enumeration, closure) walks the full point set, so spaces past
// this size are rejected up front instead of drowning the caller.
const maxPoints = 1 << 20

// Space is the projective space PG(d, q). It is immutable after construction
// and safe for concurrent readers; the point and hyperplane enumerations are
// computed once on first use.
type Space struct {
	field     *primefield.Field
	dimension int
	size      uint64

	pointsOnce sync.Once
	points     []Point

	planesOnce sync.Once
	planes     []Hyperplane
}

// NewSpace creates PG(dimension, order). The dimension must be at least 2
// and the order prime; the resulting space must stay within the enumerable
// size bound.
func NewSpace(dimension int, order uint64) (*Space, error) {
	if dimension < 2 {
		return nil, fmt.Errorf("dimension %d is below 2: %w", dimension, secrets.ErrInvalidParameter)
	}
	field, err := primefield.New(order)
	if err != nil {
		return nil, err
	}
	// size = (q^(d+1) - 1) / (q - 1) = 1 + q + ... + q^d, accumulated
	// termwise so oversized spaces are caught without overflow.
	var size, pow uint64 = 0, 1
	for i := 0; i <= dimension; i++ {
		size += pow
		if size > maxPoints {
			return nil, fmt.Errorf("space PG(%d, %d) exceeds the supported maximum of %d points: %w", dimension, order, maxPoints, secrets.ErrInvalidParameter)
		}
		if i < dimension {
			pow *= order
		}
	}
	return &Space{field: field, dimension: dimension, size: size}, nil
}

// Dimension returns the projective dimension d.
func (s *Space) Dimension() int {
	return s.dimension
}

// Order returns the field order q.
func (s *Space) Order() uint64 {
	return s.field.Order()
}

// Size returns the total number of points, (q^(d+1) - 1) / (q - 1).
func (s *Space) Size() uint64 {
	return s.size
}

// Points enumerates every point of the space in a deterministic order. For
// each leading position the canonical representatives have all earlier
// coordinates zero, the leading coordinate 1, and the remaining coordinates
// free. The returned slice is shared and must not be modified.
func (s *Space) Points() []Point {
	s.pointsOnce.Do(func() {
		n := s.dimension + 1
		q := s.field.Order()
		points := make([]Point, 0, s.size)
		for lead := 0; lead < n; lead++ {
			coords := make(secrets.Tuple, n)
			coords[lead] = 1
			for {
				points = append(points, newPoint(coords.Clone()))
				// Odometer over the free coordinates after lead.
				i := n - 1
				for i > lead {
					coords[i]++
					if coords[i] < q {
						break
					}
					coords[i] = 0
					i--
				}
				if i == lead {
					break
				}
			}
		}
		s.points = points
	})
	return s.points
}

// Canonicalize validates a raw coordinate tuple and returns its canonical
// point. The tuple must have dimension+1 entries, each below the field
// order; the all-zero tuple names no projective point.
func (s *Space) Canonicalize(t secrets.Tuple) (Point, error) {
	if len(t) != s.dimension+1 {
		return Point{}, fmt.Errorf("tuple %v has %d coordinates, want %d: %w", t, len(t), s.dimension+1, secrets.ErrInvalidParameter)
	}
	for i, c := range t {
		if c >= s.field.Order() {
			return Point{}, fmt.Errorf("coordinate %d of %v is not an element of GF(%d): %w", i, t, s.field.Order(), secrets.ErrInvalidParameter)
		}
	}
	return s.canonical(t)
}

// canonical scales an already reduced tuple so its first nonzero coordinate
// becomes 1.
func (s *Space) canonical(t secrets.Tuple) (Point, error) {
	lead := -1
	for i, c := range t {
		if c != 0 {
			lead = i
			break
		}
	}
	if lead < 0 {
		return Point{}, fmt.Errorf("tuple %v: %w", t, secrets.ErrInvalidVector)
	}
	inv, err := s.field.Inverse(t[lead])
	if err != nil {
		return Point{}, err
	}
	coords := make(secrets.Tuple, len(t))
	for i, c := range t {
		coords[i] = s.field.Multiply(c, inv)
	}
	return newPoint(coords), nil
}

// Line returns every point on the line through two distinct points: the
// canonical forms of α·p1 + β·p2 over all coefficient pairs except (0,0),
// deduplicated in first-seen order. A line always has exactly q+1 points.
func (s *Space) Line(p1, p2 Point) ([]Point, error) {
	if p1.Equal(p2) {
		return nil, fmt.Errorf("line through %v needs two distinct points: %w", p1, secrets.ErrInvalidParameter)
	}
	q := s.field.Order()
	set := NewPointSet()
	combo := make(secrets.Tuple, s.dimension+1)
	for alpha := uint64(0); alpha < q; alpha++ {
		for beta := uint64(0); beta < q; beta++ {
			if alpha == 0 && beta == 0 {
				continue
			}
			for i := range combo {
				combo[i] = s.field.Add(s.field.Multiply(alpha, p1.coords[i]), s.field.Multiply(beta, p2.coords[i]))
			}
			// Distinct canonical points are linearly independent, so
			// the combination cannot vanish.
			point, err := s.canonical(combo)
			if err != nil {
				return nil, err
			}
			set.Add(point)
		}
	}
	return set.Points(), nil
}

// Dot returns the standard inner product of two points' representatives
// modulo the field order.
func (s *Space) Dot(a, b Point) uint64 {
	var sum uint64
	for i := range a.coords {
		sum = s.field.Add(sum, s.field.Multiply(a.coords[i], b.coords[i]))
	}
	return sum
}

// Rank computes the linear rank over the field of the matrix whose rows are
// the given tuples. Tuples must be reduced field vectors of equal length.
func (s *Space) Rank(vectors []secrets.Tuple) int {
	if len(vectors) == 0 {
		return 0
	}
	rows := make([]secrets.Tuple, len(vectors))
	for i, v := range vectors {
		rows[i] = v.Clone()
	}
	cols := len(rows[0])
	rank := 0
	for col := 0; col < cols && rank < len(rows); col++ {
		pivot := -1
		for i := rank; i < len(rows); i++ {
			if rows[i][col] != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]
		lead := rows[rank][col]
		for i := rank + 1; i < len(rows); i++ {
			if rows[i][col] == 0 {
				continue
			}
			// Scale the row by the pivot and subtract the pivot row
			// scaled by the row's own leading entry. Row scaling by a
			// nonzero element preserves rank and avoids inverses.
			factor := rows[i][col]
			for j := col; j < cols; j++ {
				rows[i][j] = s.field.Subtract(s.field.Multiply(rows[i][j], lead), s.field.Multiply(rows[rank][j], factor))
			}
		}
		rank++
	}
	return rank
}
