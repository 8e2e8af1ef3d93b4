// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package verify performs consistency checks over a generated fixture set
// without invoking any external tools. OpenPGP exports are parsed with
// gopenpgp; the raw Ed25519 material is cross-checked against the PKCS#8 PEM
// keys it was derived from.
package verify

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/model"
)

var fingerprintRe = regexp.MustCompile(`^[0-9A-Fa-f]{40}$`)

// Result is the outcome of checking one artifact. Err is nil when the
// artifact exists and passed all checks.
type Result struct {
	Artifact model.Artifact
	Err      error
}

// OK reports whether the artifact passed.
func (r Result) OK() bool { return r.Err == nil }

// Verifier checks the fixture set for the configured identities and purposes.
type Verifier struct {
	Dir        string
	Identities []model.Identity
	Purposes   []string
}

// Verify runs all checks and returns one result per expected artifact.
func (v *Verifier) Verify() []Result {
	var out []Result
	for _, id := range v.Identities {
		out = append(out, v.verifyIdentity(id)...)
	}
	for _, purpose := range v.Purposes {
		out = append(out, v.verifyKeypair(purpose)...)
	}
	return out
}

// Failed returns only the failing results.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (v *Verifier) verifyIdentity(id model.Identity) []Result {
	fprPath := filepath.Join(v.Dir, id.Name+".fpr")
	fprRes := Result{Artifact: model.Artifact{Kind: model.KindFingerprint, Owner: id.Name, Path: fprPath}}

	fpr, err := fixtures.ReadFingerprint(fprPath)
	if err != nil {
		fprRes.Err = err
		// Without the fingerprint the export cannot be located either.
		pubRes := Result{
			Artifact: model.Artifact{Kind: model.KindPublicKeyExport, Owner: id.Name},
			Err:      errors.New("export path unknown: fingerprint file unreadable"),
		}
		return []Result{fprRes, pubRes}
	}
	if !fingerprintRe.MatchString(fpr) {
		fprRes.Err = fmt.Errorf("fingerprint %q is not 40 hex digits", fpr)
	}

	pubPath := filepath.Join(v.Dir, fpr+".pub")
	pubRes := Result{Artifact: model.Artifact{Kind: model.KindPublicKeyExport, Owner: id.Name, Path: pubPath}}
	pubRes.Err = checkArmoredExport(pubPath, fpr)
	return []Result{fprRes, pubRes}
}

// checkArmoredExport parses the armored export and confirms it carries the
// key the fingerprint file points at.
func checkArmoredExport(path, wantFpr string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	key, err := crypto.NewKeyFromArmored(string(data))
	if err != nil {
		return fmt.Errorf("not a parseable armored key: %w", err)
	}
	if !strings.EqualFold(key.GetFingerprint(), wantFpr) {
		return fmt.Errorf("export fingerprint %s does not match %s",
			strings.ToUpper(key.GetFingerprint()), strings.ToUpper(wantFpr))
	}
	if key.IsPrivate() {
		return errors.New("export contains private key material")
	}
	return nil
}

func (v *Verifier) verifyKeypair(purpose string) []Result {
	pemPath := filepath.Join(v.Dir, purpose+".pem")
	hexPath := filepath.Join(v.Dir, purpose+".hex")
	pubHexPath := filepath.Join(v.Dir, purpose+".pub.hex")

	pemRes := Result{Artifact: model.Artifact{Kind: model.KindPrivatePEM, Owner: purpose, Path: pemPath}}
	hexRes := Result{Artifact: model.Artifact{Kind: model.KindPrivateHex, Owner: purpose, Path: hexPath}}
	pubHexRes := Result{Artifact: model.Artifact{Kind: model.KindPublicHex, Owner: purpose, Path: pubHexPath}}

	priv, err := readPKCS8Ed25519(pemPath)
	pemRes.Err = err

	seed, err := readRawHex(hexPath)
	if err != nil {
		hexRes.Err = err
	} else if priv != nil && !strings.EqualFold(hex.EncodeToString(priv.Seed()), hex.EncodeToString(seed)) {
		hexRes.Err = errors.New("private hex does not match the PEM key")
	}

	pub, err := readRawHex(pubHexPath)
	if err != nil {
		pubHexRes.Err = err
	} else if seed != nil {
		derived := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
		if !derived.Equal(ed25519.PublicKey(pub)) {
			pubHexRes.Err = errors.New("public hex does not match the private key")
		}
	} else if priv != nil {
		if !priv.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(pub)) {
			pubHexRes.Err = errors.New("public hex does not match the PEM key")
		}
	}

	return []Result{pemRes, hexRes, pubHexRes}
}

// readPKCS8Ed25519 loads a PKCS#8 PEM file and asserts it holds an Ed25519
// private key.
func readPKCS8Ed25519(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, errors.New("not a PKCS#8 PRIVATE KEY PEM block")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("invalid PKCS#8 structure: %w", err)
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key is %T, not Ed25519", parsed)
	}
	return priv, nil
}

// readRawHex loads a 64-character hex file and decodes it to 32 bytes.
func readRawHex(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	if len(s) != ed25519.SeedSize*2 {
		return nil, fmt.Errorf("expected %d hex chars, got %d", ed25519.SeedSize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return raw, nil
}
