// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/bundle"
	"github.com/qureni/trustgen/internal/db"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/spf13/cobra"
)

var restoreInto string

// bundleCmd exports the fixture set as one compressed file.
var bundleCmd = &cobra.Command{
	Use:   "bundle [output-file]",
	Short: "Export the fixtures as a compressed (zstd) JSON bundle",
	Long: `Packs every fixture file (excluding the keyring directory) plus the
manifest into a single Zstandard-compressed JSON file.

If an output file is specified, '.zst' is appended when missing. Without an
argument a default name 'trustgen-fixtures-YYYY-MM-DD.json.zst' is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile := fmt.Sprintf("trustgen-fixtures-%s.json.zst", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}

		fmt.Println(i18n.T("bundle.cli_starting"))
		data, err := bundle.Collect(appConfig.Fixtures.Dir, db.Default())
		if err != nil {
			log.Fatalf("%s", i18n.T("bundle.cli_error_export", err))
		}
		if err := bundle.Write(outputFile, data); err != nil {
			log.Fatalf("%s", i18n.T("bundle.cli_error_write", err))
		}
		fmt.Println(i18n.T("bundle.cli_success", outputFile))
	},
}

// restoreCmd unpacks a bundle without overwriting anything.
var restoreCmd = &cobra.Command{
	Use:   "restore <bundle-file>",
	Short: "Restore fixtures from a bundle",
	Long: `Unpacks a bundle created with 'trustgen bundle' into the fixtures
directory. Files already on disk are skipped, never overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(i18n.T("restore.cli_starting", args[0]))
		data, err := bundle.Read(args[0])
		if err != nil {
			log.Fatalf("%s", i18n.T("restore.cli_error_read", err))
		}

		target := appConfig.Fixtures.Dir
		if restoreInto != "" {
			target = restoreInto
		}
		res, err := bundle.Restore(target, data)
		if err != nil {
			log.Fatalf("%s", err)
		}
		for _, p := range res.Skipped {
			fmt.Println(i18n.T("restore.cli_skip_exists", p))
		}
		for _, p := range res.Written {
			fmt.Println(i18n.T("restore.cli_restored", p))
		}
		fmt.Println(i18n.T("restore.cli_success"))
	},
}
