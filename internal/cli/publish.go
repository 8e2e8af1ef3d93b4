// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/qureni/trustgen/internal/publish"
	"github.com/spf13/cobra"
)

var publishKeyFlag string
var publishDirFlag string

// publishCmd uploads the fixture set to a remote host over SFTP.
var publishCmd = &cobra.Command{
	Use:   "publish <user@host> [remote-dir]",
	Short: "Upload the fixtures to a remote host via SFTP",
	Long: `Connects to the remote host over SSH, authenticating with the key from
--key or the publish.key config value, and uploads every fixture file
(excluding the keyring directory). Remote files that already exist are
skipped. The host key is checked against your known_hosts file.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		user, host, ok := strings.Cut(args[0], "@")
		if !ok || user == "" || host == "" {
			log.Fatalf("target must be user@host, got %q", args[0])
		}

		keyPath := appConfig.Publish.Key
		if publishKeyFlag != "" {
			keyPath = publishKeyFlag
		}
		if keyPath == "" {
			log.Fatalf("no private key configured; set publish.key or pass --key")
		}
		remoteDir := appConfig.Publish.Dir
		if len(args) > 1 {
			remoteDir = args[1]
		}
		if publishDirFlag != "" {
			remoteDir = publishDirFlag
		}
		if remoteDir == "" {
			remoteDir = "trustgen-fixtures"
		}

		fmt.Println(i18n.T("publish.connecting", host))
		p, err := publish.New(host, user, keyPath, "")
		if err != nil {
			log.Fatalf("%s", i18n.T("publish.error_connect", err))
		}
		defer p.Close()

		res, err := p.PublishDir(appConfig.Fixtures.Dir, remoteDir)
		if err != nil {
			log.Fatalf("%s", i18n.T("publish.error_upload", err))
		}
		for _, f := range res.Skipped {
			fmt.Println(i18n.T("publish.skip_exists", f))
		}
		for _, f := range res.Uploaded {
			fmt.Println(i18n.T("publish.uploaded", f))
		}
		fmt.Println(i18n.T("publish.done", len(res.Uploaded), host, remoteDir))
	},
}
