// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the MySQL implementation of the manifest store.
package db

import (
	"github.com/qureni/trustgen/internal/model"
	"github.com/uptrace/bun"
)

// MySQLStore is the MySQL implementation of the Store interface.
// The DSN should include `?parseTime=true` so DATETIME columns scan into
// time.Time values.
type MySQLStore struct {
	bun *bun.DB
}

func (s *MySQLStore) AddManifestEntry(path, kind, owner, sha256 string) (int, error) {
	return AddManifestEntryBun(s.bun, path, kind, owner, sha256)
}

func (s *MySQLStore) GetAllManifestEntries() ([]model.ManifestEntry, error) {
	return GetAllManifestEntriesBun(s.bun)
}

func (s *MySQLStore) GetManifestEntryByPath(path string) (*model.ManifestEntry, error) {
	return GetManifestEntryByPathBun(s.bun, path)
}

func (s *MySQLStore) DeleteManifestEntry(id int) error {
	return DeleteManifestEntryBun(s.bun, id)
}

func (s *MySQLStore) GetAllRunLogEntries() ([]model.RunLogEntry, error) {
	return GetAllRunLogEntriesBun(s.bun)
}

func (s *MySQLStore) LogAction(action string, details string) error {
	return LogActionBun(s.bun, action, details)
}
