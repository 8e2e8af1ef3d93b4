// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the PostgreSQL implementation of the manifest store.
// It delegates to the shared Bun helpers; the pgx stdlib driver is registered
// in db.go.
package db

import (
	"github.com/qureni/trustgen/internal/model"
	"github.com/uptrace/bun"
)

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	bun *bun.DB
}

func (s *PostgresStore) AddManifestEntry(path, kind, owner, sha256 string) (int, error) {
	return AddManifestEntryBun(s.bun, path, kind, owner, sha256)
}

func (s *PostgresStore) GetAllManifestEntries() ([]model.ManifestEntry, error) {
	return GetAllManifestEntriesBun(s.bun)
}

func (s *PostgresStore) GetManifestEntryByPath(path string) (*model.ManifestEntry, error) {
	return GetManifestEntryByPathBun(s.bun, path)
}

func (s *PostgresStore) DeleteManifestEntry(id int) error {
	return DeleteManifestEntryBun(s.bun, id)
}

func (s *PostgresStore) GetAllRunLogEntries() ([]model.RunLogEntry, error) {
	return GetAllRunLogEntriesBun(s.bun)
}

func (s *PostgresStore) LogAction(action string, details string) error {
	return LogActionBun(s.bun, action, details)
}
