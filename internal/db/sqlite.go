// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the SQLite implementation of the manifest store.
package db

import (
	"github.com/qureni/trustgen/internal/model"
	"github.com/uptrace/bun"
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

// AddManifestEntry records a generated artifact.
func (s *SqliteStore) AddManifestEntry(path, kind, owner, sha256 string) (int, error) {
	return AddManifestEntryBun(s.bun, path, kind, owner, sha256)
}

// GetAllManifestEntries retrieves all manifest rows.
func (s *SqliteStore) GetAllManifestEntries() ([]model.ManifestEntry, error) {
	return GetAllManifestEntriesBun(s.bun)
}

// GetManifestEntryByPath retrieves a single manifest row by its unique path.
func (s *SqliteStore) GetManifestEntryByPath(path string) (*model.ManifestEntry, error) {
	return GetManifestEntryByPathBun(s.bun, path)
}

// DeleteManifestEntry removes a manifest row by its ID.
func (s *SqliteStore) DeleteManifestEntry(id int) error {
	return DeleteManifestEntryBun(s.bun, id)
}

// GetAllRunLogEntries retrieves the run log.
func (s *SqliteStore) GetAllRunLogEntries() ([]model.RunLogEntry, error) {
	return GetAllRunLogEntriesBun(s.bun)
}

// LogAction appends an entry to the run log.
func (s *SqliteStore) LogAction(action string, details string) error {
	return LogActionBun(s.bun, action, details)
}
