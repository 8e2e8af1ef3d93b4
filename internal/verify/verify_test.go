// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package verify

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
	"github.com/ProtonMail/gopenpgp/v3/profile"
	"github.com/qureni/trustgen/internal/model"
)

// writeKeypairFixtures writes purpose.pem/.hex/.pub.hex derived from a fixed
// seed, the same shapes the generator produces via openssl.
func writeKeypairFixtures(t *testing.T, dir, purpose string, seed []byte) {
	t.Helper()
	priv := ed25519.NewKeyFromSeed(seed)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(filepath.Join(dir, purpose+".pem"), pemData, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, purpose+".hex"), []byte(hex.EncodeToString(seed)+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	pub := priv.Public().(ed25519.PublicKey)
	if err := os.WriteFile(filepath.Join(dir, purpose+".pub.hex"), []byte(hex.EncodeToString(pub)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testSeed(b byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func TestVerifyKeypairOK(t *testing.T) {
	dir := t.TempDir()
	writeKeypairFixtures(t, dir, "root", testSeed(0x42))

	v := &Verifier{Dir: dir, Purposes: []string{"root"}}
	results := v.Verify()
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, r := range results {
		if !r.OK() {
			t.Errorf("%s failed: %v", r.Artifact, r.Err)
		}
	}
	if len(Failed(results)) != 0 {
		t.Errorf("Failed() reported failures for a clean set")
	}
}

func TestVerifyDetectsForeignPublicHex(t *testing.T) {
	dir := t.TempDir()
	writeKeypairFixtures(t, dir, "root", testSeed(0x42))

	other := ed25519.NewKeyFromSeed(testSeed(0x43)).Public().(ed25519.PublicKey)
	if err := os.WriteFile(filepath.Join(dir, "root.pub.hex"), []byte(hex.EncodeToString(other)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := &Verifier{Dir: dir, Purposes: []string{"root"}}
	failed := Failed(v.Verify())
	if len(failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(failed))
	}
	if failed[0].Artifact.Kind != model.KindPublicHex {
		t.Errorf("failing artifact = %s, want public hex", failed[0].Artifact)
	}
}

func TestVerifyDetectsSeedMismatch(t *testing.T) {
	dir := t.TempDir()
	writeKeypairFixtures(t, dir, "root", testSeed(0x42))

	// Hex files internally consistent but from a different key than the PEM.
	foreign := testSeed(0x43)
	if err := os.WriteFile(filepath.Join(dir, "root.hex"), []byte(hex.EncodeToString(foreign)+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	foreignPub := ed25519.NewKeyFromSeed(foreign).Public().(ed25519.PublicKey)
	if err := os.WriteFile(filepath.Join(dir, "root.pub.hex"), []byte(hex.EncodeToString(foreignPub)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := &Verifier{Dir: dir, Purposes: []string{"root"}}
	failed := Failed(v.Verify())
	if len(failed) != 1 {
		t.Fatalf("failed = %d, want 1: %+v", len(failed), failed)
	}
	if failed[0].Artifact.Kind != model.KindPrivateHex {
		t.Errorf("failing artifact = %s, want private hex", failed[0].Artifact)
	}
}

func TestVerifyRejectsTruncatedHex(t *testing.T) {
	dir := t.TempDir()
	writeKeypairFixtures(t, dir, "root", testSeed(0x42))
	if err := os.WriteFile(filepath.Join(dir, "root.hex"), []byte("abcd\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	v := &Verifier{Dir: dir, Purposes: []string{"root"}}
	failed := Failed(v.Verify())
	if len(failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(failed))
	}
	if !strings.Contains(failed[0].Err.Error(), "64 hex chars") {
		t.Errorf("unexpected error: %v", failed[0].Err)
	}
}

func writeIdentityFixtures(t *testing.T, dir, name string) string {
	t.Helper()
	pgp := crypto.PGPWithProfile(profile.Default())
	key, err := pgp.KeyGeneration().
		AddUserId(name, name+"@example.invalid").
		New().
		GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pub, err := key.ToPublic()
	if err != nil {
		t.Fatalf("to public: %v", err)
	}
	armored, err := pub.Armor()
	if err != nil {
		t.Fatalf("armor: %v", err)
	}

	fpr := strings.ToUpper(key.GetFingerprint())
	if err := os.WriteFile(filepath.Join(dir, name+".fpr"), []byte(fpr+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, fpr+".pub"), []byte(armored), 0o644); err != nil {
		t.Fatal(err)
	}
	return fpr
}

func TestVerifyIdentityOK(t *testing.T) {
	dir := t.TempDir()
	writeIdentityFixtures(t, dir, "test-key-1")

	v := &Verifier{Dir: dir, Identities: []model.Identity{{Name: "test-key-1", Email: "test-key-1@example.invalid"}}}
	results := v.Verify()
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if !r.OK() {
			t.Errorf("%s failed: %v", r.Artifact, r.Err)
		}
	}
}

func TestVerifyIdentityFingerprintMismatch(t *testing.T) {
	dir := t.TempDir()
	fpr := writeIdentityFixtures(t, dir, "test-key-1")

	// Point the fingerprint file at a different key but keep the export
	// reachable under the claimed fingerprint.
	wrong := strings.Repeat("A", 40)
	if err := os.WriteFile(filepath.Join(dir, "test-key-1.fpr"), []byte(wrong+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(filepath.Join(dir, fpr+".pub"), filepath.Join(dir, wrong+".pub")); err != nil {
		t.Fatal(err)
	}

	v := &Verifier{Dir: dir, Identities: []model.Identity{{Name: "test-key-1", Email: "test-key-1@example.invalid"}}}
	failed := Failed(v.Verify())
	if len(failed) != 1 {
		t.Fatalf("failed = %d, want 1: %+v", len(failed), failed)
	}
	if !strings.Contains(failed[0].Err.Error(), "does not match") {
		t.Errorf("unexpected error: %v", failed[0].Err)
	}
}

func TestVerifyMissingFixtures(t *testing.T) {
	v := &Verifier{
		Dir:        t.TempDir(),
		Identities: []model.Identity{{Name: "test-key-1", Email: "test-key-1@example.invalid"}},
		Purposes:   []string{"root", "key_mgr"},
	}
	results := v.Verify()
	if len(results) != 8 {
		t.Fatalf("results = %d, want 8", len(results))
	}
	if len(Failed(results)) != len(results) {
		t.Errorf("expected every artifact to fail in an empty dir")
	}
}
