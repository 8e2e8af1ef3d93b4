// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/qureni/trustgen/internal/model"
)

// Store defines the interface for all manifest database operations.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Manifest methods
	AddManifestEntry(path, kind, owner, sha256 string) (int, error)
	GetAllManifestEntries() ([]model.ManifestEntry, error)
	GetManifestEntryByPath(path string) (*model.ManifestEntry, error)
	DeleteManifestEntry(id int) error

	// Run log methods
	GetAllRunLogEntries() ([]model.RunLogEntry, error)
	LogAction(action string, details string) error
}
