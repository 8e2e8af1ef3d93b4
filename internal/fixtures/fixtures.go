// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package fixtures orchestrates generation of the trust fixture set: an
// OpenPGP keyring with signing identities, plus raw Ed25519 key pairs in PEM
// and hex form. Generation is delegated to the external gpg and openssl
// binaries; this package decides what to produce, where it lives on disk and
// which existing files must never be overwritten.
package fixtures

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qureni/trustgen/internal/db"
	"github.com/qureni/trustgen/internal/gpg"
	"github.com/qureni/trustgen/internal/logging"
	"github.com/qureni/trustgen/internal/model"
	"github.com/qureni/trustgen/internal/openssl"
)

// DefaultEmailDomain is appended to identity names that come in without an
// explicit email address. The .invalid TLD is reserved and can never resolve.
const DefaultEmailDomain = "example.invalid"

// KeyringDirName is the keyring directory created below the fixtures dir.
const KeyringDirName = "keyring"

// Reporter receives progress notifications during a generation run.
type Reporter interface {
	Created(a model.Artifact)
	Skipped(a model.Artifact)
}

// NopReporter discards all notifications. Useful in tests.
type NopReporter struct{}

func (NopReporter) Created(model.Artifact) {}
func (NopReporter) Skipped(model.Artifact) {}

// IdentitiesFromNames builds signing identities from bare names, giving each
// a synthetic email under DefaultEmailDomain. A name that already contains an
// "@" is split into name and email parts.
func IdentitiesFromNames(names []string) []model.Identity {
	out := make([]model.Identity, 0, len(names))
	for _, n := range names {
		if at := strings.Index(n, "@"); at > 0 {
			out = append(out, model.Identity{Name: n[:at], Email: n})
			continue
		}
		out = append(out, model.Identity{Name: n, Email: fmt.Sprintf("%s@%s", n, DefaultEmailDomain)})
	}
	return out
}

// KeyringDir returns the keyring path below the given fixtures directory.
func KeyringDir(dir string) string {
	return filepath.Join(dir, KeyringDirName)
}

// Generator produces the fixture set in Dir. Keyring and Openssl wrap the
// external tools; Store is optional and records a manifest row per created
// file when set.
type Generator struct {
	Dir        string
	Identities []model.Identity
	Purposes   []string
	Keyring    *gpg.Keyring
	Openssl    *openssl.Tool
	Reporter   Reporter
	Store      db.Store
}

func (g *Generator) reporter() Reporter {
	if g.Reporter == nil {
		return NopReporter{}
	}
	return g.Reporter
}

// GenerateAll produces the keyring identities first, then the raw key pairs.
func (g *Generator) GenerateAll(ctx context.Context) error {
	if err := g.GenerateKeyring(ctx); err != nil {
		return err
	}
	return g.GenerateKeypairs(ctx)
}

// GenerateKeyring creates one signing key per identity in the fixture
// keyring and writes the per-identity fingerprint file plus the armored
// public key export. Files already on disk are reported and left untouched.
func (g *Generator) GenerateKeyring(ctx context.Context) error {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create fixtures directory %s: %w", g.Dir, err)
	}
	created, err := g.Keyring.EnsureHome()
	if err != nil {
		return err
	}
	if created {
		logging.Infof("created keyring directory %s", g.Keyring.Home())
	}

	for _, id := range g.Identities {
		if err := g.generateIdentity(ctx, id); err != nil {
			return err
		}
	}
	g.logAction("keyring", fmt.Sprintf("%d identities ensured", len(g.Identities)))
	return nil
}

func (g *Generator) generateIdentity(ctx context.Context, id model.Identity) error {
	fprPath := filepath.Join(g.Dir, id.Name+".fpr")
	fprArtifact := model.Artifact{Kind: model.KindFingerprint, Owner: id.Name, Path: fprPath}

	var fingerprint string
	if _, err := os.Stat(fprPath); err == nil {
		g.reporter().Skipped(fprArtifact)
		fingerprint, err = ReadFingerprint(fprPath)
		if err != nil {
			return err
		}
	} else {
		if err := g.Keyring.GenerateSigningKey(ctx, id.UserID()); err != nil {
			return err
		}
		fingerprint, err = g.Keyring.Fingerprint(ctx, id.UserID())
		if err != nil {
			return err
		}
		if err := os.WriteFile(fprPath, []byte(fingerprint+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fprPath, err)
		}
		g.reporter().Created(fprArtifact)
		g.record(fprArtifact)
	}

	pubPath := filepath.Join(g.Dir, fingerprint+".pub")
	pubArtifact := model.Artifact{Kind: model.KindPublicKeyExport, Owner: id.Name, Path: pubPath}
	if _, err := os.Stat(pubPath); err == nil {
		g.reporter().Skipped(pubArtifact)
		return nil
	}
	armored, err := g.Keyring.ExportPublicKey(ctx, fingerprint)
	if err != nil {
		return err
	}
	if err := os.WriteFile(pubPath, armored, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pubPath, err)
	}
	g.reporter().Created(pubArtifact)
	g.record(pubArtifact)
	return nil
}

// GenerateKeypairs creates one raw Ed25519 key pair per purpose: a PKCS#8
// PEM private key plus the private and public key bytes as lowercase hex.
// Existing files are reported and left untouched.
func (g *Generator) GenerateKeypairs(ctx context.Context) error {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create fixtures directory %s: %w", g.Dir, err)
	}
	for _, purpose := range g.Purposes {
		if err := g.generateKeypair(ctx, purpose); err != nil {
			return err
		}
	}
	g.logAction("keypairs", fmt.Sprintf("%d purposes ensured", len(g.Purposes)))
	return nil
}

func (g *Generator) generateKeypair(ctx context.Context, purpose string) error {
	pemPath := filepath.Join(g.Dir, purpose+".pem")
	hexPath := filepath.Join(g.Dir, purpose+".hex")
	pubHexPath := filepath.Join(g.Dir, purpose+".pub.hex")

	pemArtifact := model.Artifact{Kind: model.KindPrivatePEM, Owner: purpose, Path: pemPath}
	if _, err := os.Stat(pemPath); err == nil {
		g.reporter().Skipped(pemArtifact)
	} else {
		if err := g.Openssl.GeneratePrivateKeyPEM(ctx, pemPath); err != nil {
			return err
		}
		g.reporter().Created(pemArtifact)
		g.record(pemArtifact)
	}

	hexArtifact := model.Artifact{Kind: model.KindPrivateHex, Owner: purpose, Path: hexPath}
	pubHexArtifact := model.Artifact{Kind: model.KindPublicHex, Owner: purpose, Path: pubHexPath}
	_, hexErr := os.Stat(hexPath)
	_, pubHexErr := os.Stat(pubHexPath)
	if hexErr == nil && pubHexErr == nil {
		g.reporter().Skipped(hexArtifact)
		g.reporter().Skipped(pubHexArtifact)
		return nil
	}

	km, err := g.Openssl.KeyText(ctx, pemPath)
	if err != nil {
		return err
	}
	if hexErr == nil {
		g.reporter().Skipped(hexArtifact)
	} else {
		if err := os.WriteFile(hexPath, []byte(km.PrivHex+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", hexPath, err)
		}
		g.reporter().Created(hexArtifact)
		g.record(hexArtifact)
	}
	if pubHexErr == nil {
		g.reporter().Skipped(pubHexArtifact)
	} else {
		if err := os.WriteFile(pubHexPath, []byte(km.PubHex+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", pubHexPath, err)
		}
		g.reporter().Created(pubHexArtifact)
		g.record(pubHexArtifact)
	}
	return nil
}

// record adds a manifest row for a freshly written artifact when a store is
// configured. Recording failures are logged but never abort a run; the files
// on disk are the source of truth.
func (g *Generator) record(a model.Artifact) {
	if g.Store == nil {
		return
	}
	sum, err := HashFile(a.Path)
	if err != nil {
		logging.Warnf("manifest: cannot hash %s: %v", a.Path, err)
		return
	}
	if _, err := g.Store.AddManifestEntry(a.Path, string(a.Kind), a.Owner, sum); err != nil && !errors.Is(err, db.ErrDuplicate) {
		logging.Warnf("manifest: cannot record %s: %v", a.Path, err)
	}
}

func (g *Generator) logAction(action, details string) {
	if g.Store == nil {
		return
	}
	if err := g.Store.LogAction(action, details); err != nil {
		logging.Warnf("manifest: cannot log action %s: %v", action, err)
	}
}

// ArtifactStatus pairs an expected artifact with its on-disk presence.
// Modified is set when the file exists but no longer matches the checksum
// recorded in the manifest.
type ArtifactStatus struct {
	Artifact model.Artifact
	Present  bool
	Modified bool
}

// Status reports every artifact the configured identities and purposes are
// expected to produce, and whether each exists. The public key export of an
// identity whose fingerprint file is missing cannot be located yet; it is
// reported with an empty path and Present false. When a manifest store is
// configured, present files are also checked against their recorded checksum.
func (g *Generator) Status() []ArtifactStatus {
	var out []ArtifactStatus
	add := func(a model.Artifact) {
		present := false
		if a.Path != "" {
			if _, err := os.Stat(a.Path); err == nil {
				present = true
			}
		}
		out = append(out, ArtifactStatus{Artifact: a, Present: present, Modified: present && g.manifestDisagrees(a.Path)})
	}

	for _, id := range g.Identities {
		fprPath := filepath.Join(g.Dir, id.Name+".fpr")
		add(model.Artifact{Kind: model.KindFingerprint, Owner: id.Name, Path: fprPath})

		pubPath := ""
		if fpr, err := ReadFingerprint(fprPath); err == nil {
			pubPath = filepath.Join(g.Dir, fpr+".pub")
		}
		add(model.Artifact{Kind: model.KindPublicKeyExport, Owner: id.Name, Path: pubPath})
	}
	for _, purpose := range g.Purposes {
		add(model.Artifact{Kind: model.KindPrivatePEM, Owner: purpose, Path: filepath.Join(g.Dir, purpose+".pem")})
		add(model.Artifact{Kind: model.KindPrivateHex, Owner: purpose, Path: filepath.Join(g.Dir, purpose+".hex")})
		add(model.Artifact{Kind: model.KindPublicHex, Owner: purpose, Path: filepath.Join(g.Dir, purpose+".pub.hex")})
	}
	return out
}

// manifestDisagrees reports whether the manifest has a checksum for the file
// that no longer matches its contents. Unrecorded files and lookup errors
// count as agreement; only a positive mismatch is flagged.
func (g *Generator) manifestDisagrees(path string) bool {
	if g.Store == nil {
		return false
	}
	entry, err := g.Store.GetManifestEntryByPath(path)
	if err != nil || entry == nil {
		return false
	}
	sum, err := HashFile(path)
	if err != nil {
		return false
	}
	return sum != entry.SHA256
}

// ReadFingerprint reads a one-line fingerprint file as written by
// GenerateKeyring.
func ReadFingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read fingerprint file %s: %w", path, err)
	}
	fpr := strings.TrimSpace(string(data))
	if fpr == "" {
		return "", fmt.Errorf("fingerprint file %s is empty", path)
	}
	return fpr, nil
}

// HashFile returns the lowercase hex SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
