// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/spf13/cobra"
)

var copyToClipboard bool

// showExtensions are tried in order when the name has no direct match. A bare
// identity resolves to its fingerprint, a bare purpose to its public hex;
// private key material must be asked for by full filename.
var showExtensions = []string{".fpr", ".pub.hex", ".pub", ".hex", ".pem"}

// resolveFixturePath finds the fixture file a bare name refers to.
func resolveFixturePath(dir, name string) (string, bool) {
	direct := filepath.Join(dir, name)
	if _, err := os.Stat(direct); err == nil {
		return direct, true
	}
	for _, ext := range showExtensions {
		candidate := filepath.Join(dir, name+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// showCmd prints a single fixture file.
var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a fixture file",
	Long: `Prints the contents of one fixture file. The name can be a full
filename ('root.pem') or a bare name ('root', 'test-key-1'); common fixture
extensions are tried in order. An identity name prints its fingerprint
followed by the armored public key export. With --copy the contents also go
to the system clipboard.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, ok := resolveFixturePath(appConfig.Fixtures.Dir, args[0])
		if !ok {
			log.Fatalf("%s", i18n.T("show.not_found", args[0]))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("%s", err)
		}
		fmt.Print(string(data))
		if strings.HasSuffix(path, ".fpr") {
			// The fingerprint names the export file; print it along when present.
			pubPath := filepath.Join(appConfig.Fixtures.Dir, strings.TrimSpace(string(data))+".pub")
			if pub, err := os.ReadFile(pubPath); err == nil {
				fmt.Print(string(pub))
			}
		}
		if copyToClipboard {
			if err := clipboard.WriteAll(string(data)); err != nil {
				log.Fatalf("%s", i18n.T("show.error_copy", err))
			}
			fmt.Println(i18n.T("show.copied"))
		}
	},
}
