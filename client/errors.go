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
	"github.com/fgeom/arcshare/client/internal/secret_sharing/secrets"
)

// The sharing engine's error taxonomy, re-exported so callers can match
// against it with errors.Is.
var (
	// ErrInvalidParameter reports an unusable dimension or field order.
	ErrInvalidParameter = secrets.ErrInvalidParameter

	// ErrInvalidVector reports a coordinate tuple with no projective image,
	// such as the zero vector.
	ErrInvalidVector = secrets.ErrInvalidVector

	// ErrNoCandidateHyperplane reports that no hyperplane meets the secret
	// line without containing it.
	ErrNoCandidateHyperplane = secrets.ErrNoCandidateHyperplane

	// ErrSplitterSearchExhausted reports that no attempt produced enough
	// share points.
	ErrSplitterSearchExhausted = secrets.ErrSplitterSearchExhausted

	// ErrAmbiguousReconstruction reports shares that do not determine a
	// unique secret.
	ErrAmbiguousReconstruction = secrets.ErrAmbiguousReconstruction
)
