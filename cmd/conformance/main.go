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

// Binary to validate the sharing scheme's geometric guarantees end to end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/colour"
	"github.com/fgeom/arcshare/client"
	"github.com/fgeom/arcshare/client/shares"
)

func encrypt(dimension int, fieldOrder uint64) (*shares.Documents, error) {
	c := client.Client{}
	return c.Encrypt(&client.EncryptConfig{
		Dimension:  dimension,
		FieldOrder: fieldOrder,
		SharingID:  "conformance",
	})
}

func tupleEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// The secret line always has q+1 points and carries the secret.
func runSecretLineShape() error {
	docs, err := encrypt(2, 3)
	if err != nil {
		return err
	}
	if got, want := len(docs.Line.Line), 4; got != want {
		return fmt.Errorf("line has %d points, want %d", got, want)
	}
	for _, p := range docs.Line.Line {
		if tupleEqual(p, docs.Sharing.Secret) {
			return nil
		}
	}
	return fmt.Errorf("secret %v is not on the line %v", docs.Sharing.Secret, docs.Line.Line)
}

// In the plane the shares are a full hyperplane minus the secret: exactly q
// points, none of them the secret, all distinct.
func runPlaneSharesAreHyperplaneMinusSecret() error {
	docs, err := encrypt(2, 5)
	if err != nil {
		return err
	}
	splitters := docs.Sharing.Splitters
	if got, want := len(splitters), 5; got != want {
		return fmt.Errorf("got %d shares, want %d", got, want)
	}
	for i := range splitters {
		if tupleEqual(splitters[i], docs.Sharing.Secret) {
			return fmt.Errorf("secret %v appears among the shares", docs.Sharing.Secret)
		}
		for j := i + 1; j < len(splitters); j++ {
			if tupleEqual(splitters[i], splitters[j]) {
				return fmt.Errorf("share %v appears twice", splitters[i])
			}
		}
	}
	return nil
}

// The full share set restores exactly the embedded secret.
func runRoundTrip(dimension int, fieldOrder uint64) error {
	docs, err := encrypt(dimension, fieldOrder)
	if err != nil {
		return err
	}
	c := client.Client{}
	decrypted, err := c.Decrypt(docs.Line, docs.Shares)
	if err != nil {
		return err
	}
	if !tupleEqual(decrypted.Secret, docs.Sharing.Secret) {
		return fmt.Errorf("restored %v, want %v", decrypted.Secret, docs.Sharing.Secret)
	}
	return nil
}

// Too few shares must be reported as ambiguous, not as a wrong secret.
func runUnderfullSharesAreAmbiguous() error {
	docs, err := encrypt(3, 3)
	if err != nil {
		return err
	}
	c := client.Client{}
	_, err = c.Decrypt(docs.Line, docs.Shares[:2])
	if !errors.Is(err, client.ErrAmbiguousReconstruction) {
		return fmt.Errorf("got err = %v, want ErrAmbiguousReconstruction", err)
	}
	return nil
}

// A share from another sharing run must be rejected before reconstruction.
func runForeignShareIsRejected() error {
	docs, err := encrypt(2, 3)
	if err != nil {
		return err
	}
	foreign := make([]shares.ShareDocument, len(docs.Shares))
	copy(foreign, docs.Shares)
	foreign[0].LineDigest = "bm90IGEgcmVhbCBkaWdlc3Q="

	c := client.Client{}
	_, err = c.Decrypt(docs.Line, foreign)
	if !errors.Is(err, shares.ErrShareMismatch) {
		return fmt.Errorf("got err = %v, want ErrShareMismatch", err)
	}
	return nil
}

func main() {
	fmt.Println("Running sharing conformance tests...")

	testCases := []struct {
		testName string
		run      func() error
	}{
		{
			testName: "Secret line has q+1 points and carries the secret",
			run:      runSecretLineShape,
		},
		{
			testName: "Plane shares form a hyperplane minus the secret",
			run:      runPlaneSharesAreHyperplaneMinusSecret,
		},
		{
			testName: "Round trip in the plane over GF(3)",
			run:      func() error { return runRoundTrip(2, 3) },
		},
		{
			testName: "Round trip in the plane over GF(7)",
			run:      func() error { return runRoundTrip(2, 7) },
		},
		{
			testName: "Round trip in 3-space over GF(2)",
			run:      func() error { return runRoundTrip(3, 2) },
		},
		{
			testName: "Round trip in 3-space over GF(3)",
			run:      func() error { return runRoundTrip(3, 3) },
		},
		{
			testName: "Underfull share sets are ambiguous",
			run:      runUnderfullSharesAreAmbiguous,
		},
		{
			testName: "Foreign shares are rejected",
			run:      runForeignShareIsRejected,
		},
	}

	failed := 0
	for _, testCase := range testCases {
		if err := testCase.run(); err != nil {
			colour.Printf("^1 - %v: %v^R\n", testCase.testName, err)
			failed++
		} else {
			colour.Printf("^2 - %v^R\n", testCase.testName)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
