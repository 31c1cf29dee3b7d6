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

// This binary is the main entrypoint for the arcshare command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flag"
	"github.com/fgeom/arcshare/client"
	"github.com/fgeom/arcshare/client/shares"
	"github.com/fgeom/arcshare/constants"
	glog "github.com/golang/glog"
	"github.com/google/subcommands"
)

func defaultConfigPath() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		glog.Errorf("Failed to get config directory location: %v", err.Error())
	}
	return fmt.Sprintf("%s/%s", cfgDir, constants.ConfigName)
}

// encryptCmd handles CLI options for the encryption command.
type encryptCmd struct {
	configFile string
	dimension  int
	fieldOrder uint64
	sharingID  string
	outDir     string
	quiet      bool
}

func (*encryptCmd) Name() string { return "encrypt" }
func (*encryptCmd) Synopsis() string {
	return "splits a fresh random secret into share documents"
}
func (*encryptCmd) Usage() string {
	return fmt.Sprintf(`Usage: arcshare encrypt [--config-file=<config_file>] [--dimension=<d>] [--q=<prime>] [--out-dir=<dir>]

Examples:
  Run a sharing using %s for configuration:
    $ arcshare encrypt

  Run a 3-dimensional sharing over GF(11) without a configuration file:
    $ arcshare encrypt --dimension=3 --q=11

  Write the documents somewhere other than the current directory:
    $ arcshare encrypt --dimension=2 --q=7 --out-dir=/tmp/sharing

Flags:
`, defaultConfigPath())
	// The flags are automatically printed after the returned text.
}
func (e *encryptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&e.configFile, "config-file", defaultConfigPath(), "Path to an encrypt config YAML file. Optional.")
	f.IntVar(&e.dimension, "dimension", 0, "Dimension of the projective space. Overrides the config file.")
	f.Uint64Var(&e.fieldOrder, "q", 0, "Prime order of the coordinate field. Overrides the config file.")
	f.StringVar(&e.sharingID, "sharing-id", "", "The ID to assign to the sharing. Optional.")
	f.StringVar(&e.outDir, "out-dir", ".", "Directory the sharing documents are written to.")
	f.BoolVar(&e.quiet, "quiet", false, "Suppress logging output.")
}

func (e *encryptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config := &client.EncryptConfig{}

	// The config file may be absent when both geometry flags are given.
	yamlBytes, err := os.ReadFile(e.configFile)
	if err != nil {
		if e.dimension == 0 || e.fieldOrder == 0 {
			glog.Errorf("Failed to read config file: %v", err.Error())
			return subcommands.ExitFailure
		}
	} else {
		config, err = client.ParseEncryptConfig(yamlBytes)
		if err != nil {
			glog.Errorf("Failed to parse config file: %v", err.Error())
			return subcommands.ExitFailure
		}
	}

	// Flags override the config file.
	if e.dimension != 0 {
		config.Dimension = e.dimension
	}
	if e.fieldOrder != 0 {
		config.FieldOrder = e.fieldOrder
	}
	if e.sharingID != "" {
		config.SharingID = e.sharingID
	}

	c := client.Client{}
	docs, err := c.Encrypt(config)
	if err != nil {
		glog.Errorf("Failed to split secret: %v", err.Error())
		return subcommands.ExitFailure
	}

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		glog.Errorf("Failed to create output directory: %v", err.Error())
		return subcommands.ExitFailure
	}

	// The sharing document holds the secret and stays with the dealer.
	if err := writeDocument(filepath.Join(e.outDir, constants.SharingFileName), docs.Sharing, 0600); err != nil {
		glog.Errorf("Failed to write sharing document: %v", err.Error())
		return subcommands.ExitFailure
	}
	if err := writeDocument(filepath.Join(e.outDir, constants.LineFileName), docs.Line, 0644); err != nil {
		glog.Errorf("Failed to write line document: %v", err.Error())
		return subcommands.ExitFailure
	}
	for _, share := range docs.Shares {
		name := fmt.Sprintf(constants.ShareFilePattern, share.Index)
		if err := writeDocument(filepath.Join(e.outDir, name), share, 0644); err != nil {
			glog.Errorf("Failed to write share document: %v", err.Error())
			return subcommands.ExitFailure
		}
	}

	if !e.quiet {
		fmt.Println("Wrote sharing documents to", e.outDir)
		fmt.Println("Sharing ID:", docs.Sharing.ID)
		fmt.Println("Secret point:", docs.Sharing.Secret)
		fmt.Println("Secret line:", docs.Sharing.Line)
		fmt.Println("Share points:", docs.Sharing.Splitters)
	}

	return subcommands.ExitSuccess
}

func writeDocument(path string, doc interface{}, perm os.FileMode) error {
	data, err := shares.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// decryptCmd handles CLI options for the reconstruction command.
type decryptCmd struct {
	lineFile string
	quiet    bool
}

func (*decryptCmd) Name() string { return "decrypt" }
func (*decryptCmd) Synopsis() string {
	return "reconstructs the secret from a line document and share documents"
}
func (*decryptCmd) Usage() string {
	return `Usage: arcshare decrypt --line=<line_file> <share_file>...

Examples:
  Reconstruct from a line document and three shares:
    $ arcshare decrypt --line=line.yaml share-001.yaml share-002.yaml share-003.yaml
    Sharing ID: ...
    Restored secret: [...]

  Reconstruct with one share read from stdin:
    $ arcshare decrypt --line=line.yaml share-001.yaml - < share-002.yaml

  Print only the restored secret:
    $ arcshare decrypt --quiet --line=line.yaml share-*.yaml

Flags:
`
}
func (d *decryptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.lineFile, "line", "", "Path to the line document YAML file. Required.")
	f.BoolVar(&d.quiet, "quiet", false, "Print only the restored secret.")
}

func (d *decryptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if d.lineFile == "" {
		glog.Errorf("No line document given (use --line)")
		return subcommands.ExitFailure
	}
	if f.NArg() < 1 {
		glog.Errorf("Not enough arguments (expected at least one share file)")
		return subcommands.ExitFailure
	}

	lineBytes, err := os.ReadFile(d.lineFile)
	if err != nil {
		glog.Errorf("Failed to read line document: %v", err.Error())
		return subcommands.ExitFailure
	}
	line, err := shares.ParseLineDocument(lineBytes)
	if err != nil {
		glog.Errorf("Failed to parse line document: %v", err.Error())
		return subcommands.ExitFailure
	}

	var shareDocs []shares.ShareDocument
	for _, arg := range f.Args() {
		var shareBytes []byte
		if arg == "-" {
			// Read one share document from stdin.
			shareBytes, err = io.ReadAll(os.Stdin)
		} else {
			shareBytes, err = os.ReadFile(arg)
		}
		if err != nil {
			glog.Errorf("Failed to read share document %q: %v", arg, err.Error())
			return subcommands.ExitFailure
		}

		share, err := shares.ParseShareDocument(shareBytes)
		if err != nil {
			glog.Errorf("Failed to parse share document %q: %v", arg, err.Error())
			return subcommands.ExitFailure
		}
		shareDocs = append(shareDocs, share)
	}

	c := client.Client{}
	decrypted, err := c.Decrypt(line, shareDocs)
	if err != nil {
		glog.Errorf("Failed to reconstruct secret: %v", err.Error())
		return subcommands.ExitFailure
	}

	if d.quiet {
		fmt.Println(decrypted.Secret)
	} else {
		fmt.Println("Sharing ID:", decrypted.SharingID)
		fmt.Println("Restored secret:", decrypted.Secret)
	}

	return subcommands.ExitSuccess
}

// versionCmd handles CLI options for the version command.
type versionCmd struct{}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "prints the current version" }
func (*versionCmd) Usage() string          { return "Usage: arcshare version" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}
func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Printf("arcshare version %s\n", constants.Version)
	return subcommands.ExitSuccess
}

func main() {
	flag.Parse()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&encryptCmd{}, "")
	subcommands.Register(&decryptCmd{}, "")
	subcommands.Register(&versionCmd{}, "")

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
