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

// Hyperplane is the polar hyperplane of a pole point: the set of points
// whose dot product with the pole vanishes. Membership tests go through
// Space.Dot against the pole rather than the point list.
type Hyperplane struct {
	Pole   Point
	Points []Point
}

// DualHyperplane builds the polar hyperplane of the pole by scanning the
// full point set. The pole itself is a member exactly when its self dot
// product vanishes.
func (s *Space) DualHyperplane(pole Point) Hyperplane {
	points := make([]Point, 0, (s.size-1)/s.Order())
	for _, p := range s.Points() {
		if s.Dot(pole, p) == 0 {
			points = append(points, p)
		}
	}
	return Hyperplane{Pole: pole, Points: points}
}

// Hyperplanes enumerates the polar hyperplane of every point of the space.
// Polarity is a bijection, so this is every hyperplane exactly once. The
// returned slice is shared and must not be modified.
func (s *Space) Hyperplanes() []Hyperplane {
	s.planesOnce.Do(func() {
		points := s.Points()
		planes := make([]Hyperplane, 0, len(points))
		for _, p := range points {
			planes = append(planes, s.DualHyperplane(p))
		}
		s.planes = planes
	})
	return s.planes
}

// Transversals maps each point of the line, by key, to the hyperplanes that
// contain it without containing the whole line. Such a hyperplane meets the
// line in exactly that one point; a hyperplane carrying the full line is
// useless for splitting because every line point lies in it.
func (s *Space) Transversals(line []Point) map[string][]Hyperplane {
	out := make(map[string][]Hyperplane, len(line))
	for _, p := range line {
		var candidates []Hyperplane
		for _, h := range s.Hyperplanes() {
			if s.Dot(h.Pole, p) != 0 {
				continue
			}
			if s.containsLine(h, line) {
				continue
			}
			candidates = append(candidates, h)
		}
		out[p.Key()] = candidates
	}
	return out
}

func (s *Space) containsLine(h Hyperplane, line []Point) bool {
	for _, p := range line {
		if s.Dot(h.Pole, p) != 0 {
			return false
		}
	}
	return true
}
