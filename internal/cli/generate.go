// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/spf13/cobra"
)

// keyringCmd generates the OpenPGP half of the fixture set.
var keyringCmd = &cobra.Command{
	Use:   "keyring",
	Short: "Generate the fixture keyring and signing identities",
	Long: `Creates a private GnuPG home directory below the fixtures dir and
generates one Ed25519 signing key per configured identity. For each identity
a fingerprint file (<name>.fpr) and an armored public key export
(<fingerprint>.pub) are written. Existing files are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(i18n.T("keyring.start"))
		if err := newGenerator().GenerateKeyring(cmd.Context()); err != nil {
			log.Fatalf("%s", err)
		}
		fmt.Println(i18n.T("keyring.done"))
	},
}

// keypairsCmd generates the raw Ed25519 key pairs.
var keypairsCmd = &cobra.Command{
	Use:   "keypairs",
	Short: "Generate raw Ed25519 key pairs via openssl",
	Long: `Generates one Ed25519 key pair per configured purpose using openssl.
Each pair is written as a PKCS#8 PEM private key (<purpose>.pem) plus the
raw private and public key bytes as lowercase hex (<purpose>.hex and
<purpose>.pub.hex). Existing files are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(i18n.T("keypairs.start"))
		if err := newGenerator().GenerateKeypairs(cmd.Context()); err != nil {
			log.Fatalf("%s", err)
		}
		fmt.Println(i18n.T("keypairs.done"))
	},
}

// generateCmd produces the complete fixture set.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the complete trust fixture set",
	Long: `Runs keyring and keypairs generation in one pass, producing the full
fixture set. Re-running only fills in missing files.`,
	Run: func(cmd *cobra.Command, args []string) {
		g := newGenerator()
		fmt.Println(i18n.T("generate.start", g.Dir))
		if err := g.GenerateAll(cmd.Context()); err != nil {
			log.Fatalf("%s", err)
		}
		fmt.Println(i18n.T("generate.done"))
	},
}
