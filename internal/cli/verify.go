// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/qureni/trustgen/internal/verify"
	"github.com/spf13/cobra"
)

// verifyCmd cross-checks the generated fixtures without calling any
// external tools.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the consistency of the generated fixtures",
	Long: `Checks every expected fixture artifact: fingerprint files must hold a
valid fingerprint matching their armored export, PEM files must parse as
PKCS#8 Ed25519 keys, and the raw hex files must agree with the PEM key they
were derived from. Exits non-zero when any check fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		v := &verify.Verifier{
			Dir:        appConfig.Fixtures.Dir,
			Identities: fixtures.IdentitiesFromNames(appConfig.Fixtures.Identities),
			Purposes:   appConfig.Fixtures.Purposes,
		}
		fmt.Println(i18n.T("verify.start", v.Dir))
		results := v.Verify()
		for _, r := range results {
			if r.OK() {
				fmt.Println(i18n.T("verify.ok", r.Artifact.String()))
			} else {
				fmt.Println(i18n.T("verify.fail", r.Artifact.String(), r.Err))
			}
		}
		if failed := verify.Failed(results); len(failed) > 0 {
			fmt.Println(i18n.T("verify.summary_fail", len(failed), len(results)))
			os.Exit(1)
		}
		fmt.Println(i18n.T("verify.summary_ok", len(results)))
	},
}
