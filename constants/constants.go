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

// Package constants contains shared constants between the client library and
// the command line tools.
package constants

const (
	// ConfigName is the default name of the configuration file.
	ConfigName = "arcshare.yaml"

	// Version is the current release, displayed via the `version` subcommand.
	Version = "0.1.0"

	// WarnSpacePoints is the point-count threshold past which a sharing run
	// logs a capacity warning: hyperplane enumeration scans all point pairs,
	// so runtime grows quadratically from here.
	WarnSpacePoints = 1 << 14

	// SharingFileName is the default output name for the dealer's full
	// sharing record.
	SharingFileName = "sharing.yaml"

	// LineFileName is the default output name for the public line document.
	LineFileName = "line.yaml"

	// ShareFilePattern is the default output name pattern for participant
	// share documents, instantiated with the 1-based share index.
	ShareFilePattern = "share-%03d.yaml"
)
