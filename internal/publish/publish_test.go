// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package publish

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddrWithDefaultPort(t *testing.T) {
	if got := addrWithDefaultPort("host.example"); got != "host.example:22" {
		t.Errorf("default port: got %q", got)
	}
	if got := addrWithDefaultPort("host.example:2222"); got != "host.example:2222" {
		t.Errorf("explicit port: got %q", got)
	}
}

func TestLoadSignerPlainKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	keyPath := filepath.Join(t.TempDir(), "id_ed25519")
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(keyPath, pemData, 0o600); err != nil {
		t.Fatal(err)
	}

	signer, err := loadSigner(keyPath)
	if err != nil {
		t.Fatalf("loadSigner: %v", err)
	}
	if signer.PublicKey().Type() != "ssh-ed25519" {
		t.Errorf("key type = %q, want ssh-ed25519", signer.PublicKey().Type())
	}
}

func TestLoadSignerMissingFile(t *testing.T) {
	_, err := loadSigner(filepath.Join(t.TempDir(), "nope"))
	if err == nil || !strings.Contains(err.Error(), "unable to read private key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadSignerGarbage(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(keyPath, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := loadSigner(keyPath)
	if err == nil || !strings.Contains(err.Error(), "unable to parse private key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHostKeyCheckerMissingFile(t *testing.T) {
	_, err := hostKeyChecker(filepath.Join(t.TempDir(), "known_hosts"))
	if err == nil {
		t.Errorf("expected error for missing known_hosts")
	}
}

func TestHostKeyCheckerEmptyFile(t *testing.T) {
	khPath := filepath.Join(t.TempDir(), "known_hosts")
	if err := os.WriteFile(khPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	cb, err := hostKeyChecker(khPath)
	if err != nil {
		t.Fatalf("hostKeyChecker: %v", err)
	}
	if cb == nil {
		t.Errorf("expected callback")
	}
}
