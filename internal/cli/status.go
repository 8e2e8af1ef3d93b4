// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"path/filepath"

	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/qureni/trustgen/internal/tui"
	"github.com/spf13/cobra"
)

var plainStatus bool

// statusCmd shows which fixture artifacts exist.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which fixture artifacts exist",
	Run: func(cmd *cobra.Command, args []string) {
		g := newGenerator()
		if !plainStatus {
			if err := tui.Run(g); err != nil {
				log.Fatalf("%s", err)
			}
			return
		}
		fmt.Println(i18n.T("status.header", g.Dir))
		for _, s := range g.Status() {
			state := i18n.T("status.missing")
			if s.Present {
				state = i18n.T("status.present")
				if s.Modified {
					state = i18n.T("status.modified")
				}
			}
			file := "-"
			if s.Artifact.Path != "" {
				file = filepath.Base(s.Artifact.Path)
			}
			fmt.Printf("%-14s %-18s %-46s %s\n", s.Artifact.Owner, s.Artifact.Kind, file, state)
		}
	},
}
