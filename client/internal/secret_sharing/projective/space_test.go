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

package projective_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/projective"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
	"github.com/google/go-cmp/cmp"
)

func mustSpace(t *testing.T, dimension int, order uint64) *projective.Space {
	t.Helper()
	s, err := projective.NewSpace(dimension, order)
	if err != nil {
		t.Fatalf("NewSpace(%d, %d) err = %v, want nil", dimension, order, err)
	}
	return s
}

func mustPoint(t *testing.T, s *projective.Space, tuple secrets.Tuple) projective.Point {
	t.Helper()
	p, err := s.Canonicalize(tuple)
	if err != nil {
		t.Fatalf("Canonicalize(%v) err = %v, want nil", tuple, err)
	}
	return p
}

func sortedKeys(points []projective.Point) []string {
	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = p.Key()
	}
	sort.Strings(keys)
	return keys
}

func TestNewSpaceRejectsBadParameters(t *testing.T) {
	type testCase struct {
		tag       string
		dimension int
		order     uint64
	}
	for _, tc := range []testCase{
		{
			tag:       "dimension zero",
			dimension: 0,
			order:     3,
		},
		{
			tag:       "dimension one",
			dimension: 1,
			order:     3,
		},
		{
			tag:       "composite order",
			dimension: 2,
			order:     6,
		},
		{
			tag:       "space too large to enumerate",
			dimension: 40,
			order:     3,
		},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			if _, err := projective.NewSpace(tc.dimension, tc.order); !errors.Is(err, secrets.ErrInvalidParameter) {
				t.Errorf("NewSpace(%d, %d) err = %v, want ErrInvalidParameter", tc.dimension, tc.order, err)
			}
		})
	}
}

func TestPointsEnumeratesWholeSpace(t *testing.T) {
	type testCase struct {
		tag       string
		dimension int
		order     uint64
		size      uint64
	}
	for _, tc := range []testCase{
		{
			tag:       "fano-adjacent plane",
			dimension: 2,
			order:     2,
			size:      7,
		},
		{
			tag:       "plane over GF(3)",
			dimension: 2,
			order:     3,
			size:      13,
		},
		{
			tag:       "plane over GF(5)",
			dimension: 2,
			order:     5,
			size:      31,
		},
		{
			tag:       "3-space over GF(2)",
			dimension: 3,
			order:     2,
			size:      15,
		},
		{
			tag:       "3-space over GF(3)",
			dimension: 3,
			order:     3,
			size:      40,
		},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			s := mustSpace(t, tc.dimension, tc.order)
			if got := s.Size(); got != tc.size {
				t.Errorf("Size() = %d, want %d", got, tc.size)
			}
			points := s.Points()
			if uint64(len(points)) != tc.size {
				t.Fatalf("len(Points()) = %d, want %d", len(points), tc.size)
			}
			seen := make(map[string]bool, len(points))
			for _, p := range points {
				if seen[p.Key()] {
					t.Errorf("point %v enumerated twice", p)
				}
				seen[p.Key()] = true
				tuple := p.Tuple()
				lead := -1
				for i, c := range tuple {
					if c != 0 {
						lead = i
						break
					}
				}
				if lead < 0 || tuple[lead] != 1 {
					t.Errorf("point %v is not in canonical form", p)
				}
			}
		})
	}
}

func TestCanonicalizeCollapsesScalarMultiples(t *testing.T) {
	s := mustSpace(t, 2, 5)
	base := mustPoint(t, s, secrets.Tuple{2, 4, 1})
	if diff := cmp.Diff(secrets.Tuple{1, 2, 3}, base.Tuple()); diff != "" {
		t.Errorf("canonical form mismatch (-want +got):\n%s", diff)
	}
	// Every nonzero scaling of the representative lands on the same point.
	for scale := uint64(1); scale < 5; scale++ {
		scaled := secrets.Tuple{2 * scale % 5, 4 * scale % 5, scale % 5}
		p := mustPoint(t, s, scaled)
		if !p.Equal(base) {
			t.Errorf("Canonicalize(%v) = %v, want %v", scaled, p, base)
		}
	}
}

func TestCanonicalizeRejectsBadTuples(t *testing.T) {
	type testCase struct {
		tag   string
		tuple secrets.Tuple
		want  error
	}
	s := mustSpace(t, 2, 5)
	for _, tc := range []testCase{
		{
			tag:   "zero vector",
			tuple: secrets.Tuple{0, 0, 0},
			want:  secrets.ErrInvalidVector,
		},
		{
			tag:   "too short",
			tuple: secrets.Tuple{1, 2},
			want:  secrets.ErrInvalidParameter,
		},
		{
			tag:   "too long",
			tuple: secrets.Tuple{1, 2, 3, 4},
			want:  secrets.ErrInvalidParameter,
		},
		{
			tag:   "entry outside the field",
			tuple: secrets.Tuple{1, 5, 0},
			want:  secrets.ErrInvalidParameter,
		},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			if _, err := s.Canonicalize(tc.tuple); !errors.Is(err, tc.want) {
				t.Errorf("Canonicalize(%v) err = %v, want %v", tc.tuple, err, tc.want)
			}
		})
	}
}

func TestLineHasOrderPlusOnePoints(t *testing.T) {
	type testCase struct {
		tag       string
		dimension int
		order     uint64
	}
	for _, tc := range []testCase{
		{
			tag:       "plane over GF(2)",
			dimension: 2,
			order:     2,
		},
		{
			tag:       "plane over GF(3)",
			dimension: 2,
			order:     3,
		},
		{
			tag:       "3-space over GF(5)",
			dimension: 3,
			order:     5,
		},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			s := mustSpace(t, tc.dimension, tc.order)
			points := s.Points()
			p1, p2 := points[0], points[1]
			line, err := s.Line(p1, p2)
			if err != nil {
				t.Fatalf("Line(%v, %v) err = %v, want nil", p1, p2, err)
			}
			if uint64(len(line)) != tc.order+1 {
				t.Errorf("len(Line()) = %d, want %d", len(line), tc.order+1)
			}
			onLine := projective.NewPointSet(line...)
			if !onLine.Has(p1) || !onLine.Has(p2) {
				t.Errorf("line %v does not contain its defining points %v, %v", line, p1, p2)
			}
			reversed, err := s.Line(p2, p1)
			if err != nil {
				t.Fatalf("Line(%v, %v) err = %v, want nil", p2, p1, err)
			}
			if diff := cmp.Diff(sortedKeys(line), sortedKeys(reversed)); diff != "" {
				t.Errorf("line is not symmetric in its endpoints (-p1p2 +p2p1):\n%s", diff)
			}
		})
	}
}

func TestLineThroughKnownPoints(t *testing.T) {
	s := mustSpace(t, 2, 3)
	p1 := mustPoint(t, s, secrets.Tuple{1, 0, 0})
	p2 := mustPoint(t, s, secrets.Tuple{0, 1, 0})
	line, err := s.Line(p1, p2)
	if err != nil {
		t.Fatalf("Line() err = %v, want nil", err)
	}
	want := []string{"0:1:0", "1:0:0", "1:1:0", "1:2:0"}
	if diff := cmp.Diff(want, sortedKeys(line)); diff != "" {
		t.Errorf("line points mismatch (-want +got):\n%s", diff)
	}
}

func TestLineRequiresDistinctPoints(t *testing.T) {
	s := mustSpace(t, 2, 3)
	p := mustPoint(t, s, secrets.Tuple{1, 1, 0})
	if _, err := s.Line(p, p); !errors.Is(err, secrets.ErrInvalidParameter) {
		t.Errorf("Line(p, p) err = %v, want ErrInvalidParameter", err)
	}
}

func TestRank(t *testing.T) {
	type testCase struct {
		tag     string
		vectors []secrets.Tuple
		want    int
	}
	s := mustSpace(t, 2, 7)
	for _, tc := range []testCase{
		{
			tag:     "no vectors",
			vectors: nil,
			want:    0,
		},
		{
			tag:     "identity rows",
			vectors: []secrets.Tuple{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			want:    3,
		},
		{
			tag:     "scalar multiples collapse",
			vectors: []secrets.Tuple{{1, 2, 3}, {2, 4, 6}},
			want:    1,
		},
		{
			tag:     "three collinear points",
			vectors: []secrets.Tuple{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
			want:    2,
		},
		{
			tag:     "general position triple",
			vectors: []secrets.Tuple{{1, 0, 0}, {0, 1, 0}, {1, 1, 1}},
			want:    3,
		},
		{
			tag:     "more rows than rank",
			vectors: []secrets.Tuple{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 2, 0}},
			want:    2,
		},
	} {
		t.Run(tc.tag, func(t *testing.T) {
			if got := s.Rank(tc.vectors); got != tc.want {
				t.Errorf("Rank(%v) = %d, want %d", tc.vectors, got, tc.want)
			}
		})
	}
}

func TestPointSet(t *testing.T) {
	s := mustSpace(t, 2, 3)
	a := mustPoint(t, s, secrets.Tuple{1, 0, 0})
	b := mustPoint(t, s, secrets.Tuple{0, 1, 0})
	c := mustPoint(t, s, secrets.Tuple{0, 0, 1})

	set := projective.NewPointSet(a, b)
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set.Add(a) {
		t.Error("Add(a) = true for a member, want false")
	}
	if !set.Add(c) {
		t.Error("Add(c) = false for a new point, want true")
	}
	if !set.Has(b) {
		t.Error("Has(b) = false, want true")
	}
	if !set.Remove(b) {
		t.Error("Remove(b) = false, want true")
	}
	if set.Remove(b) {
		t.Error("Remove(b) = true after removal, want false")
	}
	want := []string{a.Key(), c.Key()}
	got := make([]string, 0, set.Len())
	for _, p := range set.Points() {
		got = append(got, p.Key())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("insertion order lost (-want +got):\n%s", diff)
	}
}
