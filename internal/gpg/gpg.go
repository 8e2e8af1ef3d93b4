// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gpg drives an external GnuPG binary to manage the fixture keyring.
// All key material is produced by gpg itself; this package only assembles
// command lines and parses gpg's textual output.
package gpg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/qureni/trustgen/internal/runner"
)

// ErrNoVersionStringFound is returned when `gpg --version` output does not
// contain a recognizable version number.
var ErrNoVersionStringFound = errors.New("no version string found in gpg output")

// ErrNoFingerprint is returned when a colon-format key listing contains no
// fpr record for the requested identity.
var ErrNoFingerprint = errors.New("no fingerprint record in gpg listing")

var versionRe = regexp.MustCompile(`gpg \(GnuPG[^)]*\) (\d+\.\d+\.\d+)`)

// Keyring is a handle to an on-disk GnuPG home directory.
type Keyring struct {
	r    runner.Runner
	bin  string
	home string
}

// New returns a Keyring using the given runner, gpg binary and home directory.
func New(r runner.Runner, bin, home string) *Keyring {
	if bin == "" {
		bin = "gpg"
	}
	return &Keyring{r: r, bin: bin, home: home}
}

// Home returns the keyring directory path.
func (k *Keyring) Home() string { return k.home }

// EnsureHome creates the keyring directory with the 0700 mode gpg insists on.
// It is safe to call when the directory already exists.
func (k *Keyring) EnsureHome() (created bool, err error) {
	if _, err := os.Stat(k.home); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(k.home, 0o700); err != nil {
		return false, fmt.Errorf("failed to create keyring directory %s: %w", k.home, err)
	}
	return true, nil
}

// baseArgs are prepended to every gpg invocation so it stays batch-safe and
// confined to the fixture keyring.
func (k *Keyring) baseArgs() []string {
	return []string{"--homedir", k.home, "--batch", "--no-tty"}
}

func (k *Keyring) run(ctx context.Context, args ...string) (runner.Result, error) {
	cmd := runner.Command{Name: k.bin, Args: append(k.baseArgs(), args...)}
	return k.r.Run(ctx, cmd)
}

// GenerateSigningKey creates a new Ed25519 signing key for the given user id.
// The key has no passphrase and no expiry; these are throwaway test fixtures.
func (k *Keyring) GenerateSigningKey(ctx context.Context, userID string) error {
	_, err := k.run(ctx,
		"--pinentry-mode", "loopback",
		"--passphrase", "",
		"--quick-generate-key", userID, "ed25519", "sign", "never",
	)
	if err != nil {
		return fmt.Errorf("gpg key generation for %q failed: %w", userID, err)
	}
	return nil
}

// Fingerprint returns the primary key fingerprint for the given user id by
// parsing gpg's machine-readable colon listing.
func (k *Keyring) Fingerprint(ctx context.Context, userID string) (string, error) {
	res, err := k.run(ctx, "--with-colons", "--list-keys", userID)
	if err != nil {
		return "", fmt.Errorf("gpg key listing for %q failed: %w", userID, err)
	}
	return parseColonsFingerprint(string(res.Stdout))
}

// ExportPublicKey returns the armored public key for the given fingerprint.
func (k *Keyring) ExportPublicKey(ctx context.Context, fingerprint string) ([]byte, error) {
	res, err := k.run(ctx, "--armor", "--export", fingerprint)
	if err != nil {
		return nil, fmt.Errorf("gpg export of %s failed: %w", fingerprint, err)
	}
	if len(res.Stdout) == 0 {
		return nil, fmt.Errorf("gpg export of %s produced no output", fingerprint)
	}
	return res.Stdout, nil
}

// Version reports the gpg version, mostly for startup diagnostics.
func (k *Keyring) Version(ctx context.Context) (string, error) {
	res, err := k.r.Run(ctx, runner.Command{Name: k.bin, Args: []string{"--version"}})
	if err != nil {
		return "", err
	}
	return parseVersionString(string(res.Stdout))
}

// parseVersionString extracts "X.Y.Z" from `gpg --version` output.
func parseVersionString(out string) (string, error) {
	m := versionRe.FindStringSubmatch(out)
	if m == nil {
		return "", ErrNoVersionStringFound
	}
	return m[1], nil
}

// parseColonsFingerprint returns the first primary-key fingerprint from a
// `--with-colons` listing. The fpr record carries the fingerprint in the
// tenth colon-separated field.
func parseColonsFingerprint(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "fpr:") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) > 9 && fields[9] != "" {
			return strings.ToUpper(fields[9]), nil
		}
	}
	return "", ErrNoFingerprint
}
