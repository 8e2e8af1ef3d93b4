// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli implements the trustgen command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/qureni/trustgen/buildvars"
	"github.com/qureni/trustgen/internal/config"
	"github.com/qureni/trustgen/internal/db"
	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/gpg"
	"github.com/qureni/trustgen/internal/i18n"
	"github.com/qureni/trustgen/internal/logging"
	"github.com/qureni/trustgen/internal/model"
	"github.com/qureni/trustgen/internal/openssl"
	"github.com/qureni/trustgen/internal/runner"
	"github.com/qureni/trustgen/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// configDefaults are the baseline settings used before any config file,
// environment variable or flag is applied.
func configDefaults() map[string]any {
	return map[string]any{
		"fixtures.dir":        "./fixtures",
		"fixtures.identities": []string{"test-key-1", "test-key-2"},
		"fixtures.purposes":   []string{"root", "key_mgr"},
		"tools.gpg":           "gpg",
		"tools.openssl":       "openssl",
		"database.type":       "sqlite",
		"database.dsn":        "./trustgen.db",
		"language":            "en",
	}
}

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := configDefaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically and persist a default config for later inspection.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Backfill critical values a user config may have blanked out.
	if appConfig.Fixtures.Dir == "" {
		appConfig.Fixtures.Dir = defaults["fixtures.dir"].(string)
	}
	if len(appConfig.Fixtures.Identities) == 0 {
		appConfig.Fixtures.Identities = defaults["fixtures.identities"].([]string)
	}
	if len(appConfig.Fixtures.Purposes) == 0 {
		appConfig.Fixtures.Purposes = defaults["fixtures.purposes"].([]string)
	}
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	i18n.Init(appConfig.Language)

	if !db.IsInitialized() {
		if _, err := db.New(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}
	return nil
}

// newGenerator wires a fixtures.Generator from the loaded configuration.
func newGenerator() *fixtures.Generator {
	r := &runner.ExecRunner{}
	dir := appConfig.Fixtures.Dir
	return &fixtures.Generator{
		Dir:        dir,
		Identities: fixtures.IdentitiesFromNames(appConfig.Fixtures.Identities),
		Purposes:   appConfig.Fixtures.Purposes,
		Keyring:    gpg.New(r, appConfig.Tools.Gpg, fixtures.KeyringDir(dir)),
		Openssl:    openssl.New(r, appConfig.Tools.Openssl),
		Reporter:   cliReporter{},
		Store:      db.Default(),
	}
}

// cliReporter prints generation progress as localized messages.
type cliReporter struct{}

func (cliReporter) Created(a model.Artifact) {
	switch a.Kind {
	case model.KindFingerprint:
		fmt.Println(i18n.T("keyring.generated", a.Owner, filepath.Base(a.Path)))
	case model.KindPublicKeyExport:
		fmt.Println(i18n.T("keyring.exported", a.Path))
	case model.KindPrivatePEM:
		fmt.Println(i18n.T("keypairs.wrote_pem", a.Owner, a.Path))
	default:
		fmt.Println(i18n.T("keypairs.wrote_hex", filepath.Base(a.Path)))
	}
}

func (cliReporter) Skipped(a model.Artifact) {
	fmt.Println(i18n.T("generate.skip_exists", filepath.Base(a.Path)))
}

// Execute runs the CLI entrypoint. The root main package calls this and
// handles process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

func applyDefaultFlags(cmd *cobra.Command) {
	// NewRootCmd may be called multiple times in tests while subcommands are
	// package-level; pflag panics on duplicate definitions, so check first.
	if cmd.Flags().Lookup("fixtures.dir") == nil {
		cmd.Flags().String("fixtures.dir", "./fixtures", "Directory the fixtures are written to")
	}
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Manifest database type (sqlite, postgres, mysql)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./trustgen.db", "Manifest database connection string (DSN)")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command. It is also
// used by tests to get fresh, isolated command instances.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trustgen",
		Short: "Trustgen generates throwaway trust fixtures for test suites.",
		Long: `Trustgen produces a self-contained set of trust fixtures: an OpenPGP
keyring with disposable signing identities, plus raw Ed25519 key pairs in
PKCS#8 PEM and raw hex form. Key generation is delegated to the local gpg
and openssl binaries so the fixtures match what those tools produce in
production.

Existing fixture files are never overwritten; re-running is always safe.

Running without a subcommand launches the interactive status view.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Println(compositeVersion())
				os.Exit(0)
			}
			if verbose {
				logging.SetDebug(true)
				db.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(newGenerator())
		},
	}

	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Output language ("en", "de")`)
	applyDefaultFlags(cmd)

	applyDefaultFlags(keyringCmd)
	applyDefaultFlags(keypairsCmd)
	applyDefaultFlags(generateCmd)
	applyDefaultFlags(verifyCmd)
	applyDefaultFlags(statusCmd)
	if statusCmd.Flags().Lookup("plain") == nil {
		statusCmd.Flags().BoolVar(&plainStatus, "plain", false, "Print a plain listing instead of the interactive view")
	}
	applyDefaultFlags(manifestCmd)
	applyDefaultFlags(bundleCmd)
	applyDefaultFlags(restoreCmd)
	if restoreCmd.Flags().Lookup("into") == nil {
		restoreCmd.Flags().StringVar(&restoreInto, "into", "", "Restore into this directory instead of the configured fixtures dir")
	}
	applyDefaultFlags(publishCmd)
	if publishCmd.Flags().Lookup("key") == nil {
		publishCmd.Flags().StringVar(&publishKeyFlag, "key", "", "Private key file used to authenticate (overrides publish.key)")
	}
	if publishCmd.Flags().Lookup("dir") == nil {
		publishCmd.Flags().StringVar(&publishDirFlag, "dir", "", "Remote directory to publish into (overrides publish.dir)")
	}
	applyDefaultFlags(showCmd)
	if showCmd.Flags().Lookup("copy") == nil {
		showCmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the fixture contents to the clipboard")
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			fmt.Printf("version: %s\n", v)
			fmt.Printf("commit: %s\n", c)
			if d != "" {
				fmt.Printf("built: %s\n", d)
			}
		},
	}

	cmd.AddCommand(
		keyringCmd,
		keypairsCmd,
		generateCmd,
		verifyCmd,
		statusCmd,
		manifestCmd,
		bundleCmd,
		restoreCmd,
		publishCmd,
		showCmd,
		versionCmd,
	)

	return cmd
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime. Separated out to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths leave Main.Version empty; fall back to the module
		// entry in the dependency list.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/qureni/trustgen" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
