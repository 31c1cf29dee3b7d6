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

// Package client is the client library for arcshare. It turns a sharing
// configuration into distributable documents and reconstructs secrets from
// collected share documents.
package client

import (
	"fmt"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/geometric"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/randutil"
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
	"github.com/fgeom/arcshare/client/shares"
	"github.com/fgeom/arcshare/constants"
	glog "github.com/golang/glog"
	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

// EncryptConfig describes one sharing run.
type EncryptConfig struct {
	// Dimension of the projective space the secret is embedded in.
	Dimension int `json:"dimension"`

	// FieldOrder is the prime order of the coordinate field.
	FieldOrder uint64 `json:"fieldOrder"`

	// SharingID identifies the run across its documents. A UUID is
	// generated when empty.
	SharingID string `json:"sharingId"`

	// MaxAttempts bounds the splitter search. Zero selects the default.
	MaxAttempts int `json:"maxAttempts"`
}

// ParseEncryptConfig unmarshals a YAML encrypt configuration.
func ParseEncryptConfig(data []byte) (*EncryptConfig, error) {
	config := &EncryptConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error unmarshaling encrypt config: %v", err)
	}
	return config, nil
}

// Decrypted represents the output of reconstructing a sharing.
type Decrypted struct {
	SharingID string
	Secret    secrets.Tuple
}

// Client provides the sharing and reconstruction operations of arcshare.
type Client struct {
	// Source of randomness for splitting. Initialized via randomSource.
	source randutil.Source
}

// setRandomSource allows a deterministic randomness source to be configured
// for testing purposes.
func (c *Client) setRandomSource(src randutil.Source) {
	c.source = src
}

func (c *Client) randomSource() randutil.Source {
	if c.source != nil {
		return c.source
	}
	return randutil.Crypto()
}

// Encrypt embeds a fresh random secret in the configured projective space
// and returns the documents to distribute: the dealer's sharing record, the
// public line document, and one share document per splitter point.
func (c *Client) Encrypt(config *EncryptConfig) (*shares.Documents, error) {
	if config == nil {
		return nil, fmt.Errorf("nil EncryptConfig passed to Encrypt()")
	}

	// Set sharing ID if specified, otherwise generate UUID.
	sharingID := config.SharingID
	if sharingID == "" {
		sharingID = uuid.NewString()
	}

	if points := spacePointCount(config.Dimension, config.FieldOrder); points > constants.WarnSpacePoints {
		glog.Warningf("Projective space for dimension %d over GF(%d) has %d points or more, splitting may be slow", config.Dimension, config.FieldOrder, points)
	}

	glog.V(2).Infof("Splitting secret for sharing %q in dimension %d over GF(%d)", sharingID, config.Dimension, config.FieldOrder)

	md := secrets.Metadata{
		Dimension:  config.Dimension,
		FieldOrder: config.FieldOrder,
	}
	split, err := geometric.SplitSecret(md, c.randomSource(), config.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("error splitting secret: %w", err)
	}

	docs, err := shares.NewDocuments(sharingID, split)
	if err != nil {
		return nil, fmt.Errorf("error building sharing documents: %w", err)
	}

	glog.V(2).Infof("Sharing %q produced %d shares on a %d-point line", sharingID, len(docs.Shares), len(split.Line))
	return docs, nil
}

// Decrypt reconstructs the secret of a sharing from its line document and
// the collected share documents. Every share must belong to the sharing the
// line document describes.
func (c *Client) Decrypt(line shares.LineDocument, shareDocs []shares.ShareDocument) (*Decrypted, error) {
	if err := shares.ValidateLine(line); err != nil {
		return nil, fmt.Errorf("invalid line document: %w", err)
	}

	points := make([]secrets.Tuple, 0, len(shareDocs))
	for _, share := range shareDocs {
		if err := shares.ValidateShare(share, line); err != nil {
			return nil, err
		}
		points = append(points, share.Point)
	}

	glog.V(2).Infof("Reconstructing sharing %q from %d shares", line.ID, len(points))

	secret, err := geometric.Reconstruct(points, line.Line)
	if err != nil {
		return nil, fmt.Errorf("error reconstructing secret: %w", err)
	}

	if glog.V(2) {
		// The closure behind a successful reconstruction is a hyperplane:
		// rank d over (q^d - 1) / (q - 1) points.
		order := uint64(len(line.Line) - 1)
		dimension := len(line.Line[0]) - 1
		size := uint64(0)
		for i, pow := 0, uint64(1); i < dimension; i, pow = i+1, pow*order {
			size += pow
		}
		glog.Infof("Sharing %q: share closure reached rank %d over %d hyperplane points", line.ID, dimension, size)
	}

	return &Decrypted{SharingID: line.ID, Secret: secret}, nil
}

// spacePointCount counts the points of the projective space, saturating
// once the count clears the warning threshold.
func spacePointCount(dimension int, order uint64) uint64 {
	if dimension < 1 || order < 2 {
		return 0
	}
	size := uint64(0)
	term := uint64(1)
	for i := 0; i <= dimension; i++ {
		size += term
		if size > constants.WarnSpacePoints {
			return size
		}
		term *= order
	}
	return size
}
