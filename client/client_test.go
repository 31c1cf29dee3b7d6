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

package client

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
	"github.com/fgeom/arcshare/client/shares"
	"github.com/google/go-cmp/cmp"
)

func testClient(seed int64) *Client {
	c := &Client{}
	c.setRandomSource(rand.New(rand.NewSource(seed)))
	return c
}

func containsTuple(tuples []secrets.Tuple, want secrets.Tuple) bool {
	for _, t := range tuples {
		if cmp.Equal(t, want) {
			return true
		}
	}
	return false
}

func TestEncryptProducesConsistentDocuments(t *testing.T) {
	c := testClient(7)
	config := &EncryptConfig{
		Dimension:  2,
		FieldOrder: 3,
		SharingID:  "sharing-test",
	}

	docs, err := c.Encrypt(config)
	if err != nil {
		t.Fatalf("Encrypt() err = %v, want nil", err)
	}

	if docs.Sharing.ID != "sharing-test" {
		t.Errorf("Sharing.ID = %q, want %q", docs.Sharing.ID, "sharing-test")
	}
	if docs.Sharing.Dimension != 2 || docs.Sharing.FieldOrder != 3 {
		t.Errorf("Sharing records dimension %d over GF(%d), want 2 over GF(3)", docs.Sharing.Dimension, docs.Sharing.FieldOrder)
	}
	if got, want := len(docs.Line.Line), 4; got != want {
		t.Errorf("len(Line.Line) = %d, want %d", got, want)
	}
	if !containsTuple(docs.Line.Line, docs.Sharing.Secret) {
		t.Errorf("secret %v is not on the published line %v", docs.Sharing.Secret, docs.Line.Line)
	}
	if containsTuple(docs.Sharing.Splitters, docs.Sharing.Secret) {
		t.Errorf("secret %v appears among the splitters %v", docs.Sharing.Secret, docs.Sharing.Splitters)
	}
	// In the plane the shares are a full hyperplane minus the secret.
	if got, want := len(docs.Shares), 3; got != want {
		t.Errorf("len(Shares) = %d, want %d", got, want)
	}
	for i, share := range docs.Shares {
		if share.Index != i+1 {
			t.Errorf("Shares[%d].Index = %d, want %d", i, share.Index, i+1)
		}
		if err := shares.ValidateShare(share, docs.Line); err != nil {
			t.Errorf("ValidateShare(Shares[%d]) err = %v, want nil", i, err)
		}
	}
}

func TestEncryptGeneratesSharingID(t *testing.T) {
	c := testClient(11)

	docs, err := c.Encrypt(&EncryptConfig{Dimension: 2, FieldOrder: 3})
	if err != nil {
		t.Fatalf("Encrypt() err = %v, want nil", err)
	}

	if docs.Sharing.ID == "" {
		t.Fatal("Sharing.ID is empty, want generated UUID")
	}
	if docs.Line.ID != docs.Sharing.ID {
		t.Errorf("Line.ID = %q, want %q", docs.Line.ID, docs.Sharing.ID)
	}
	for i, share := range docs.Shares {
		if share.ID != docs.Sharing.ID {
			t.Errorf("Shares[%d].ID = %q, want %q", i, share.ID, docs.Sharing.ID)
		}
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	testCases := []struct {
		tag        string
		dimension  int
		fieldOrder uint64
	}{
		{tag: "plane over GF(3)", dimension: 2, fieldOrder: 3},
		{tag: "plane over GF(5)", dimension: 2, fieldOrder: 5},
		{tag: "3-space over GF(2)", dimension: 3, fieldOrder: 2},
		{tag: "3-space over GF(3)", dimension: 3, fieldOrder: 3},
	}

	for i, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			c := testClient(int64(100 + i))
			config := &EncryptConfig{
				Dimension:  tc.dimension,
				FieldOrder: tc.fieldOrder,
				SharingID:  fmt.Sprintf("sharing-%d", i),
			}

			docs, err := c.Encrypt(config)
			if err != nil {
				t.Fatalf("Encrypt() err = %v, want nil", err)
			}

			decrypted, err := c.Decrypt(docs.Line, docs.Shares)
			if err != nil {
				t.Fatalf("Decrypt() err = %v, want nil", err)
			}

			if decrypted.SharingID != config.SharingID {
				t.Errorf("Decrypt() SharingID = %q, want %q", decrypted.SharingID, config.SharingID)
			}
			if !cmp.Equal(decrypted.Secret, docs.Sharing.Secret) {
				t.Errorf("Decrypt() Secret = %v, want %v", decrypted.Secret, docs.Sharing.Secret)
			}
		})
	}
}

func TestEncryptRejectsInvalidConfigs(t *testing.T) {
	testCases := []struct {
		tag    string
		config *EncryptConfig
	}{
		{
			tag:    "nil config",
			config: nil,
		},
		{
			tag:    "dimension too small",
			config: &EncryptConfig{Dimension: 1, FieldOrder: 3},
		},
		{
			tag:    "composite field order",
			config: &EncryptConfig{Dimension: 2, FieldOrder: 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			if _, err := testClient(3).Encrypt(tc.config); err == nil {
				t.Error("Encrypt() err = nil, want error")
			}
		})
	}
}

func TestEncryptReportsInvalidParameter(t *testing.T) {
	_, err := testClient(3).Encrypt(&EncryptConfig{Dimension: 2, FieldOrder: 6})
	if !errors.Is(err, secrets.ErrInvalidParameter) {
		t.Errorf("Encrypt() err = %v, want ErrInvalidParameter", err)
	}
}

func TestDecryptRejectsForeignShare(t *testing.T) {
	c := testClient(17)
	docs, err := c.Encrypt(&EncryptConfig{Dimension: 2, FieldOrder: 3, SharingID: "sharing-test"})
	if err != nil {
		t.Fatalf("Encrypt() err = %v, want nil", err)
	}

	foreign := make([]shares.ShareDocument, len(docs.Shares))
	copy(foreign, docs.Shares)
	foreign[1].ID = "other-sharing"

	_, err = c.Decrypt(docs.Line, foreign)
	if !errors.Is(err, shares.ErrShareMismatch) {
		t.Errorf("Decrypt() err = %v, want ErrShareMismatch", err)
	}
}

func TestDecryptRejectsTamperedLine(t *testing.T) {
	c := testClient(19)
	docs, err := c.Encrypt(&EncryptConfig{Dimension: 2, FieldOrder: 3, SharingID: "sharing-test"})
	if err != nil {
		t.Fatalf("Encrypt() err = %v, want nil", err)
	}

	tampered := docs.Line
	tampered.Line = append([]secrets.Tuple{}, tampered.Line...)
	tampered.Line[0] = secrets.Tuple{2, 2, 2}

	if _, err := c.Decrypt(tampered, docs.Shares); err == nil {
		t.Error("Decrypt(tampered line) err = nil, want digest error")
	}
}

func TestDecryptRejectsInsufficientShares(t *testing.T) {
	c := testClient(23)
	docs, err := c.Encrypt(&EncryptConfig{Dimension: 3, FieldOrder: 3, SharingID: "sharing-test"})
	if err != nil {
		t.Fatalf("Encrypt() err = %v, want nil", err)
	}

	_, err = c.Decrypt(docs.Line, docs.Shares[:2])
	if !errors.Is(err, secrets.ErrAmbiguousReconstruction) {
		t.Errorf("Decrypt(2 shares) err = %v, want ErrAmbiguousReconstruction", err)
	}
}

func TestParseEncryptConfig(t *testing.T) {
	data := []byte(`dimension: 3
fieldOrder: 7
sharingId: sharing-test
maxAttempts: 16
`)

	config, err := ParseEncryptConfig(data)
	if err != nil {
		t.Fatalf("ParseEncryptConfig() err = %v, want nil", err)
	}

	want := &EncryptConfig{
		Dimension:   3,
		FieldOrder:  7,
		SharingID:   "sharing-test",
		MaxAttempts: 16,
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("ParseEncryptConfig() returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestParseEncryptConfigRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseEncryptConfig([]byte("dimension: [")); err == nil {
		t.Error("ParseEncryptConfig(malformed) err = nil, want error")
	}
}
