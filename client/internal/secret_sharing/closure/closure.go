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

// Package closure reconstructs a shared secret by span-closing the received
// share points back into their hyperplane and cutting it with the secret
// line.
package closure

import (
	"fmt"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/projective"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// Close computes the span-closure of the given points: the fixed point of
// repeatedly adding every point on lines between member pairs. Each pass
// walks the unordered pairs of a snapshot of the set; a pass that adds
// nothing ends the loop. The closure of points drawn from one hyperplane is
// exactly that hyperplane; arbitrary inputs close over the whole space.
func Close(s *projective.Space, points []projective.Point) (*projective.PointSet, error) {
	set := projective.NewPointSet(points...)
	for {
		members := set.Points()
		added := false
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				line, err := s.Line(members[i], members[j])
				if err != nil {
					return nil, err
				}
				for _, p := range line {
					if set.Add(p) {
						added = true
					}
				}
			}
		}
		if !added {
			return set, nil
		}
	}
}

// Reconstruct recovers the secret from share points and the public secret
// line. The closure of the shares must have rank exactly the space
// dimension, i.e. be a true hyperplane, and must meet the line in a single
// point; anything else leaves the secret undetermined.
func Reconstruct(s *projective.Space, shares []projective.Point, line []projective.Point) (projective.Point, error) {
	closed, err := Close(s, shares)
	if err != nil {
		return projective.Point{}, err
	}
	if rank := s.Rank(closed.Tuples()); rank != s.Dimension() {
		return projective.Point{}, fmt.Errorf("share closure has rank %d, want %d: %w", rank, s.Dimension(), secrets.ErrAmbiguousReconstruction)
	}
	var hits []projective.Point
	for _, p := range line {
		if closed.Has(p) {
			hits = append(hits, p)
		}
	}
	if len(hits) != 1 {
		return projective.Point{}, fmt.Errorf("reconstructed hyperplane meets the secret line in %d points, want 1: %w", len(hits), secrets.ErrAmbiguousReconstruction)
	}
	return hits[0], nil
}
