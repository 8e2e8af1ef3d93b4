// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/db"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/spf13/cobra"
)

// manifestCmd lists what the manifest database knows about.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "List the recorded fixture artifacts",
	Long: `Prints the manifest rows recorded during generation: path, kind, owner
and content checksum. Use 'manifest log' for the per-run action log.`,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := db.GetAllManifestEntries()
		if err != nil {
			log.Fatalf("%s", err)
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("manifest.empty"))
			return
		}
		for _, e := range entries {
			sum := e.SHA256
			if len(sum) > 12 {
				sum = sum[:12]
			}
			fmt.Printf("%-48s %-18s %-12s %s\n", e.Path, e.Kind, e.Owner, sum)
		}
	},
}

var manifestLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the generation run log",
	Run: func(cmd *cobra.Command, args []string) {
		store := db.Default()
		if store == nil {
			log.Fatalf("db: store not initialized")
		}
		entries, err := store.GetAllRunLogEntries()
		if err != nil {
			log.Fatalf("%s", err)
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("manifest.log_empty"))
			return
		}
		for _, e := range entries {
			ts := e.Timestamp
			if len(ts) > 19 {
				ts = ts[:19]
			}
			fmt.Printf("%-20s %-10s %s\n", ts, e.Action, e.Details)
		}
	},
}

func init() {
	manifestCmd.AddCommand(manifestLogCmd)
}
