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

// Package shares defines the document formats a sharing run is distributed
// in: the dealer's private sharing record, the public line document handed
// to the reconstructing party, and one share document per participant. The
// documents are YAML on disk; a SHA-256 digest of the line binds shares to
// their sharing so mixed-up files fail fast instead of reconstructing
// garbage.
package shares

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
	"sigs.k8s.io/yaml"
)

// ErrShareMismatch reports a share document presented against a line
// document from a different sharing run.
var ErrShareMismatch = errors.New("share does not belong to this sharing")

// SharingDocument is the dealer's full record of one run, including the
// secret. It stays with the dealer; participants only ever see the line and
// share documents derived from it.
type SharingDocument struct {
	// ID identifies the sharing run across all of its documents.
	ID         string          `json:"id"`
	Dimension  int             `json:"dimension"`
	FieldOrder uint64          `json:"fieldOrder"`
	Secret     secrets.Tuple   `json:"secret"`
	Line       []secrets.Tuple `json:"line"`
	Splitters  []secrets.Tuple `json:"splitters"`
}

// LineDocument is the public reconstruction input: the secret line and its
// digest.
type LineDocument struct {
	ID         string          `json:"id"`
	Line       []secrets.Tuple `json:"line"`
	LineDigest string          `json:"lineDigest"`
}

// ShareDocument is one participant's share point, bound to its sharing by ID
// and line digest.
type ShareDocument struct {
	ID         string        `json:"id"`
	Index      int           `json:"index"`
	Point      secrets.Tuple `json:"point"`
	LineDigest string        `json:"lineDigest"`
}

// Documents bundles everything one sharing run produces.
type Documents struct {
	Sharing SharingDocument
	Line    LineDocument
	Shares  []ShareDocument
}

// NewDocuments builds the distribution documents for a finished split.
func NewDocuments(id string, split *secrets.Split) (*Documents, error) {
	digest, err := LineDigest(split.Line)
	if err != nil {
		return nil, fmt.Errorf("error computing line digest: %w", err)
	}
	docs := &Documents{
		Sharing: SharingDocument{
			ID:         id,
			Dimension:  split.Metadata.Dimension,
			FieldOrder: split.Metadata.FieldOrder,
			Secret:     split.Secret,
			Line:       split.Line,
			Splitters:  split.Splitters,
		},
		Line: LineDocument{
			ID:         id,
			Line:       split.Line,
			LineDigest: digest,
		},
	}
	for i, point := range split.Splitters {
		docs.Shares = append(docs.Shares, ShareDocument{
			ID:         id,
			Index:      i + 1,
			Point:      point,
			LineDigest: digest,
		})
	}
	return docs, nil
}

// LineDigest computes the digest binding shares to their line: SHA-256 over
// the ordered line tuples, each serialized as a little-endian length prefix
// followed by its coordinates, base64-encoded.
func LineDigest(line []secrets.Tuple) (string, error) {
	buf := new(bytes.Buffer)
	for _, point := range line {
		if err := binary.Write(buf, binary.LittleEndian, uint64(len(point))); err != nil {
			return "", fmt.Errorf("unable to serialize point width: %v", err)
		}
		if err := binary.Write(buf, binary.LittleEndian, []uint64(point)); err != nil {
			return "", fmt.Errorf("unable to serialize point: %v", err)
		}
	}
	sha := sha256.Sum256(buf.Bytes())
	return base64.StdEncoding.EncodeToString(sha[:]), nil
}

// ValidateLine recomputes the line digest and compares it to the document's
// claim.
func ValidateLine(line LineDocument) error {
	digest, err := LineDigest(line.Line)
	if err != nil {
		return err
	}
	if digest != line.LineDigest {
		return fmt.Errorf("line document digest is %q, computed %q", line.LineDigest, digest)
	}
	return nil
}

// ValidateShare checks that a share document belongs to the sharing the line
// document describes.
func ValidateShare(share ShareDocument, line LineDocument) error {
	if share.ID != line.ID {
		return fmt.Errorf("share %d carries sharing ID %q, line has %q: %w", share.Index, share.ID, line.ID, ErrShareMismatch)
	}
	if share.LineDigest != line.LineDigest {
		return fmt.Errorf("share %d carries line digest %q, line has %q: %w", share.Index, share.LineDigest, line.LineDigest, ErrShareMismatch)
	}
	return nil
}

// ParseLineDocument unmarshals a YAML line document and verifies its digest.
func ParseLineDocument(data []byte) (LineDocument, error) {
	var line LineDocument
	if err := yaml.Unmarshal(data, &line); err != nil {
		return LineDocument{}, fmt.Errorf("error unmarshaling line document: %v", err)
	}
	if len(line.Line) == 0 {
		return LineDocument{}, fmt.Errorf("line document contains no line points")
	}
	if err := ValidateLine(line); err != nil {
		return LineDocument{}, err
	}
	return line, nil
}

// ParseShareDocument unmarshals a YAML share document.
func ParseShareDocument(data []byte) (ShareDocument, error) {
	var share ShareDocument
	if err := yaml.Unmarshal(data, &share); err != nil {
		return ShareDocument{}, fmt.Errorf("error unmarshaling share document: %v", err)
	}
	if len(share.Point) == 0 {
		return ShareDocument{}, fmt.Errorf("share document contains no point")
	}
	return share, nil
}

// Marshal renders any of the document types as YAML.
func Marshal(doc interface{}) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error marshaling document: %v", err)
	}
	return data, nil
}
