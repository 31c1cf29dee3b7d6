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

// Package splitter selects the share points for a secret: a general-position
// subset of a hyperplane that meets the secret line only at the secret.
package splitter

import (
	"fmt"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/projective"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/randutil"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// DefaultMaxAttempts bounds the selection retry loop. Each attempt draws a
// fresh hyperplane and shuffle, so a handful of retries is already rare;
// exhausting this many signals a hostile parameter choice.
const DefaultMaxAttempts = 32

// Select picks the splitter points for the secret. byPoint maps line points
// to their transversal hyperplanes (Space.Transversals). Each attempt picks
// a uniform hyperplane from the secret's candidates and drops the secret
// from its point set. In the plane (dimension 2) that pool is already the
// answer. In higher dimensions the pool is shuffled and grown into an arc
// seeded with the secret and the first pool point, admitting a point only if
// no three points of the grown set are collinear; the secret is removed
// before the rank acceptance check. Arcs of rank below the dimension are
// discarded and the attempt repeats with fresh randomness, up to maxAttempts
// (DefaultMaxAttempts when maxAttempts <= 0).
func Select(s *projective.Space, byPoint map[string][]projective.Hyperplane, secret projective.Point, src randutil.Source, maxAttempts int) ([]projective.Point, error) {
	candidates := byPoint[secret.Key()]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("secret %v: %w", secret, secrets.ErrNoCandidateHyperplane)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		h := candidates[src.Intn(len(candidates))]
		// The shared hyperplane cache must stay intact across attempts.
		pool := make([]projective.Point, 0, len(h.Points)-1)
		for _, p := range h.Points {
			if !p.Equal(secret) {
				pool = append(pool, p)
			}
		}
		if s.Dimension() == 2 {
			return pool, nil
		}
		arc := growArc(s, secret, pool, src)
		arc.Remove(secret)
		if s.Rank(arc.Tuples()) >= s.Dimension() {
			return arc.Points(), nil
		}
	}
	return nil, fmt.Errorf("no general position splitter found after %d attempts: %w", maxAttempts, secrets.ErrSplitterSearchExhausted)
}

// growArc shuffles the pool and greedily extends {secret, pool[0]} with
// every pool point that keeps the set free of collinear triples.
func growArc(s *projective.Space, secret projective.Point, pool []projective.Point, src randutil.Source) *projective.PointSet {
	src.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	arc := projective.NewPointSet(secret, pool[0])
	for _, p := range pool {
		if arc.Has(p) {
			continue
		}
		if admissible(s, arc, p) {
			arc.Add(p)
		}
	}
	return arc
}

// admissible reports whether adding candidate keeps the arc in general
// position. The arc itself is collinearity-free by construction, so only
// triples through the candidate need checking.
func admissible(s *projective.Space, arc *projective.PointSet, candidate projective.Point) bool {
	members := arc.Points()
	rows := make([]secrets.Tuple, 3)
	rows[2] = candidate.Tuple()
	for i := 0; i < len(members); i++ {
		rows[0] = members[i].Tuple()
		for j := i + 1; j < len(members); j++ {
			rows[1] = members[j].Tuple()
			if s.Rank(rows) < 3 {
				return false
			}
		}
	}
	return true
}
