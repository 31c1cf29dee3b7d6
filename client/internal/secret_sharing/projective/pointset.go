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

import "github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"

// PointSet is an insertion-ordered set of points keyed by canonical identity.
// The zero value is not usable; construct with NewPointSet.
type PointSet struct {
	index  map[string]struct{}
	points []Point
}

// NewPointSet creates a set holding the given points, deduplicated in
// insertion order.
func NewPointSet(points ...Point) *PointSet {
	s := &PointSet{index: make(map[string]struct{}, len(points))}
	for _, p := range points {
		s.Add(p)
	}
	return s
}

// Add inserts a point and reports whether it was not already present.
func (s *PointSet) Add(p Point) bool {
	if _, ok := s.index[p.key]; ok {
		return false
	}
	s.index[p.key] = struct{}{}
	s.points = append(s.points, p)
	return true
}

// Has reports whether the set contains the point.
func (s *PointSet) Has(p Point) bool {
	_, ok := s.index[p.key]
	return ok
}

// Remove deletes a point and reports whether it was present.
func (s *PointSet) Remove(p Point) bool {
	if _, ok := s.index[p.key]; !ok {
		return false
	}
	delete(s.index, p.key)
	for i, q := range s.points {
		if q.key == p.key {
			s.points = append(s.points[:i], s.points[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of points in the set.
func (s *PointSet) Len() int {
	return len(s.points)
}

// Points returns the members in insertion order. The returned slice is a
// copy and stays valid across later mutations.
func (s *PointSet) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Tuples returns the members' canonical coordinates in insertion order.
func (s *PointSet) Tuples() []secrets.Tuple {
	out := make([]secrets.Tuple, len(s.points))
	for i, p := range s.points {
		out[i] = p.Tuple()
	}
	return out
}
