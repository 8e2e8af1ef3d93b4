// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/qureni/trustgen/internal/model"
	"github.com/uptrace/bun"
)

// ManifestEntryModel maps the `manifest_entries` table for Bun queries.
type ManifestEntryModel struct {
	bun.BaseModel `bun:"table:manifest_entries"`
	ID            int       `bun:"id,pk,autoincrement"`
	Path          string    `bun:"path"`
	Kind          string    `bun:"kind"`
	Owner         string    `bun:"owner"`
	SHA256        string    `bun:"sha256"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// RunLogModel maps the run_log table.
type RunLogModel struct {
	bun.BaseModel `bun:"table:run_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp,nullzero,default:current_timestamp"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

// --- Mapping helpers (centralized conversions) ---

func manifestEntryModelToModel(m ManifestEntryModel) model.ManifestEntry {
	return model.ManifestEntry{
		ID:        m.ID,
		Path:      m.Path,
		Kind:      m.Kind,
		Owner:     m.Owner,
		SHA256:    m.SHA256,
		CreatedAt: m.CreatedAt,
	}
}

func runLogModelToModel(m RunLogModel) model.RunLogEntry {
	return model.RunLogEntry{ID: m.ID, Timestamp: m.Timestamp, Action: m.Action, Details: m.Details}
}

// AddManifestEntryBun inserts a manifest row and returns its id. A row with
// the same path is a duplicate and maps to ErrDuplicate.
func AddManifestEntryBun(bdb *bun.DB, path, kind, owner, sha256 string) (int, error) {
	ctx := context.Background()
	m := &ManifestEntryModel{Path: path, Kind: kind, Owner: owner, SHA256: sha256, CreatedAt: time.Now()}
	if _, err := bdb.NewInsert().Model(m).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// GetAllManifestEntriesBun returns all manifest rows ordered by path.
func GetAllManifestEntriesBun(bdb *bun.DB) ([]model.ManifestEntry, error) {
	ctx := context.Background()
	var rows []ManifestEntryModel
	if err := bdb.NewSelect().Model(&rows).Order("path ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.ManifestEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, manifestEntryModelToModel(r))
	}
	return out, nil
}

// GetManifestEntryByPathBun returns the row for a path, or (nil, nil) when
// no such row exists.
func GetManifestEntryByPathBun(bdb *bun.DB, path string) (*model.ManifestEntry, error) {
	ctx := context.Background()
	var row ManifestEntryModel
	err := bdb.NewSelect().Model(&row).Where("path = ?", path).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	m := manifestEntryModelToModel(row)
	return &m, nil
}

// DeleteManifestEntryBun removes a manifest row by id.
func DeleteManifestEntryBun(bdb *bun.DB, id int) error {
	ctx := context.Background()
	_, err := bdb.NewDelete().Model((*ManifestEntryModel)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// GetAllRunLogEntriesBun returns the run log, newest first.
func GetAllRunLogEntriesBun(bdb *bun.DB) ([]model.RunLogEntry, error) {
	ctx := context.Background()
	var rows []RunLogModel
	if err := bdb.NewSelect().Model(&rows).Order("id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.RunLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, runLogModelToModel(r))
	}
	return out, nil
}

// LogActionBun appends one action to the run log.
func LogActionBun(bdb *bun.DB, action, details string) error {
	ctx := context.Background()
	m := &RunLogModel{Action: action, Details: details}
	_, err := bdb.NewInsert().Model(m).Exec(ctx)
	return err
}
