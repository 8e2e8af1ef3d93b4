// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model contains the shared data types used across Trustgen.
package model

import (
	"fmt"
	"time"
)

// Identity represents a signing identity in the fixture keyring.
type Identity struct {
	Name  string
	Email string
}

// UserID returns the OpenPGP user id string ("Name <email>").
func (i Identity) UserID() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// ArtifactKind classifies the fixture files Trustgen produces.
type ArtifactKind string

const (
	// KindFingerprint is a one-line hex fingerprint file (<name>.fpr).
	KindFingerprint ArtifactKind = "fingerprint"
	// KindPublicKeyExport is an armored OpenPGP public key (<fingerprint>.pub).
	KindPublicKeyExport ArtifactKind = "public_key_export"
	// KindPrivatePEM is a PKCS#8 Ed25519 private key (<purpose>.pem).
	KindPrivatePEM ArtifactKind = "private_pem"
	// KindPrivateHex is the raw 32-byte private scalar as hex (<purpose>.hex).
	KindPrivateHex ArtifactKind = "private_hex"
	// KindPublicHex is the raw 32-byte public key as hex (<purpose>.pub.hex).
	KindPublicHex ArtifactKind = "public_hex"
)

// Artifact is one expected fixture file on disk.
type Artifact struct {
	Kind  ArtifactKind
	Owner string // identity name or key purpose
	Path  string // path under the fixtures directory
}

// String returns a short human-readable identifier for the artifact.
func (a Artifact) String() string {
	return fmt.Sprintf("%s/%s", a.Owner, a.Kind)
}

// ManifestEntry records a generated artifact in the manifest database.
type ManifestEntry struct {
	ID        int
	Path      string
	Kind      string
	Owner     string
	SHA256    string
	CreatedAt time.Time
}

// RunLogEntry is a single action recorded during a generation run.
type RunLogEntry struct {
	ID        int
	Timestamp string
	Action    string
	Details   string
}

// BundleFile carries one fixture file inside an exported bundle.
type BundleFile struct {
	Path   string `json:"path"`
	Mode   uint32 `json:"mode"`
	SHA256 string `json:"sha256"`
	Data   []byte `json:"data"`
}

// BundleData is the JSON payload of a zstd-compressed fixtures bundle.
type BundleData struct {
	CreatedAt time.Time       `json:"created_at"`
	Entries   []ManifestEntry `json:"entries"`
	Files     []BundleFile    `json:"files"`
}
