// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package openssl drives an external openssl binary to generate raw Ed25519
// key pairs and to extract their raw hex key material from the text dump.
package openssl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qureni/trustgen/internal/runner"
)

// ErrKeyMaterialNotFound is returned when the text dump of a key does not
// contain the expected priv:/pub: hex blocks.
var ErrKeyMaterialNotFound = errors.New("priv/pub hex blocks not found in openssl output")

// rawKeyHexLen is the length of a 32-byte Ed25519 scalar rendered as hex.
const rawKeyHexLen = 64

// Tool is a handle to the external openssl binary.
type Tool struct {
	r   runner.Runner
	bin string
}

// New returns a Tool using the given runner and openssl binary name.
func New(r runner.Runner, bin string) *Tool {
	if bin == "" {
		bin = "openssl"
	}
	return &Tool{r: r, bin: bin}
}

// GeneratePrivateKeyPEM asks openssl to generate an Ed25519 private key and
// write it in PKCS#8 PEM form to outPath.
func (t *Tool) GeneratePrivateKeyPEM(ctx context.Context, outPath string) error {
	_, err := t.r.Run(ctx, runner.Command{
		Name: t.bin,
		Args: []string{"genpkey", "-algorithm", "ed25519", "-outform", "PEM", "-out", outPath},
	})
	if err != nil {
		return fmt.Errorf("openssl key generation failed: %w", err)
	}
	return nil
}

// KeyMaterial holds the raw hex forms of one Ed25519 key pair.
type KeyMaterial struct {
	PrivHex string
	PubHex  string
}

// KeyText runs `openssl pkey -text` on the PEM file and parses the raw
// private and public key bytes out of the dump.
func (t *Tool) KeyText(ctx context.Context, pemPath string) (KeyMaterial, error) {
	res, err := t.r.Run(ctx, runner.Command{
		Name: t.bin,
		Args: []string{"pkey", "-in", pemPath, "-noout", "-text"},
	})
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("openssl key dump failed: %w", err)
	}
	return parseKeyText(string(res.Stdout))
}

// Version reports the openssl version line for startup diagnostics.
func (t *Tool) Version(ctx context.Context) (string, error) {
	res, err := t.r.Run(ctx, runner.Command{Name: t.bin, Args: []string{"version"}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// parseKeyText extracts the priv: and pub: hex blocks from an openssl
// `pkey -text` dump. The dump renders key bytes as indented lines of
// colon-separated hex pairs:
//
//	ED25519 Private-Key:
//	priv:
//	    17:03:ab:...
//	pub:
//	    9f:00:cd:...
func parseKeyText(out string) (KeyMaterial, error) {
	var km KeyMaterial
	var collecting *string

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "priv:":
			collecting = &km.PrivHex
			continue
		case "pub:":
			collecting = &km.PubHex
			continue
		}
		if collecting == nil {
			continue
		}
		// Hex byte lines are indented; anything else ends the block.
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			collecting = nil
			continue
		}
		*collecting += strings.ReplaceAll(trimmed, ":", "")
	}

	if len(km.PrivHex) != rawKeyHexLen || len(km.PubHex) != rawKeyHexLen {
		return KeyMaterial{}, fmt.Errorf("%w (priv %d chars, pub %d chars)",
			ErrKeyMaterialNotFound, len(km.PrivHex), len(km.PubHex))
	}
	km.PrivHex = strings.ToLower(km.PrivHex)
	km.PubHex = strings.ToLower(km.PubHex)
	return km, nil
}
