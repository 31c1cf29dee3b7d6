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

// Package geometric is the entry point to the sharing engine. SplitSecret
// draws a secret point of a projective space and derives its public line and
// splitter shares; Reconstruct recovers the secret from shares and the line.
// Every run builds its own space, so independent runs may proceed in
// parallel.
package geometric

import (
	"fmt"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/closure"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/projective"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/randutil"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/splitter"
)

// SplitSecret runs one full sharing: it picks a uniform secret point in
// PG(md.Dimension, md.FieldOrder), builds the secret line through it, and
// selects splitter shares from a hyperplane meeting that line only at the
// secret. maxAttempts bounds the splitter search; pass 0 for the default.
func SplitSecret(md secrets.Metadata, src randutil.Source, maxAttempts int) (*secrets.Split, error) {
	space, err := projective.NewSpace(md.Dimension, md.FieldOrder)
	if err != nil {
		return nil, err
	}
	points := space.Points()
	secret := points[src.Intn(len(points))]
	partner, err := linePartner(space, secret, src)
	if err != nil {
		return nil, err
	}
	line, err := space.Line(secret, partner)
	if err != nil {
		return nil, err
	}
	splitters, err := splitter.Select(space, space.Transversals(line), secret, src, maxAttempts)
	if err != nil {
		return nil, err
	}
	return &secrets.Split{
		Metadata:  md,
		Secret:    secret.Tuple(),
		Line:      tuples(line),
		Splitters: tuples(splitters),
	}, nil
}

// linePartner picks the second point of the secret line uniformly from the
// points that agree with the secret in at least one coordinate position.
// The shared-coordinate constraint is part of the scheme's documented
// behavior.
func linePartner(space *projective.Space, secret projective.Point, src randutil.Source) (projective.Point, error) {
	st := secret.Tuple()
	var candidates []projective.Point
	for _, p := range space.Points() {
		if p.Equal(secret) {
			continue
		}
		pt := p.Tuple()
		for i := range pt {
			if pt[i] == st[i] {
				candidates = append(candidates, p)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return projective.Point{}, fmt.Errorf("no point shares a coordinate with the secret %v", secret)
	}
	return candidates[src.Intn(len(candidates))], nil
}

// Reconstruct recovers the secret point from share tuples and the public
// secret line. The space parameters are derived from the line itself: the
// field order is one less than the line's point count and the dimension one
// less than its coordinate width. The line must consist of exactly the
// distinct points of one projective line, and at least Dimension distinct
// shares are needed for a unique answer.
func Reconstruct(shares []secrets.Tuple, line []secrets.Tuple) (secrets.Tuple, error) {
	if len(line) == 0 {
		return nil, fmt.Errorf("empty secret line: %w", secrets.ErrInvalidParameter)
	}
	order := uint64(len(line) - 1)
	dimension := len(line[0]) - 1
	space, err := projective.NewSpace(dimension, order)
	if err != nil {
		return nil, err
	}
	linePoints, err := canonicalizeLine(space, line)
	if err != nil {
		return nil, err
	}
	sharePoints, err := canonicalizeShares(space, shares)
	if err != nil {
		return nil, err
	}
	if sharePoints.Len() < dimension {
		return nil, fmt.Errorf("%d distinct shares cannot determine a secret in dimension %d: %w", sharePoints.Len(), dimension, secrets.ErrAmbiguousReconstruction)
	}
	secret, err := closure.Reconstruct(space, sharePoints.Points(), linePoints)
	if err != nil {
		return nil, err
	}
	return secret.Tuple(), nil
}

// canonicalizeLine validates that the given tuples are exactly the points of
// one line: pairwise distinct and equal, as a set, to the line through the
// first two.
func canonicalizeLine(space *projective.Space, line []secrets.Tuple) ([]projective.Point, error) {
	points := make([]projective.Point, 0, len(line))
	set := projective.NewPointSet()
	for _, t := range line {
		p, err := space.Canonicalize(t)
		if err != nil {
			return nil, err
		}
		if !set.Add(p) {
			return nil, fmt.Errorf("line point %v appears twice: %w", p, secrets.ErrInvalidParameter)
		}
		points = append(points, p)
	}
	span, err := space.Line(points[0], points[1])
	if err != nil {
		return nil, err
	}
	for _, p := range span {
		if !set.Has(p) {
			return nil, fmt.Errorf("points do not form a projective line, %v is missing: %w", p, secrets.ErrInvalidParameter)
		}
	}
	return points, nil
}

// canonicalizeShares maps share tuples onto canonical points, dropping
// duplicates.
func canonicalizeShares(space *projective.Space, shares []secrets.Tuple) (*projective.PointSet, error) {
	set := projective.NewPointSet()
	for _, t := range shares {
		p, err := space.Canonicalize(t)
		if err != nil {
			return nil, err
		}
		set.Add(p)
	}
	return set, nil
}

func tuples(points []projective.Point) []secrets.Tuple {
	out := make([]secrets.Tuple, len(points))
	for i, p := range points {
		out[i] = p.Tuple()
	}
	return out
}
