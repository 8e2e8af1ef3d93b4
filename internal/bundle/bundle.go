// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package bundle exports a fixture directory as a single zstd-compressed
// JSON file and restores such bundles elsewhere. Restores honor the same
// rule as generation: files already on disk are never overwritten.
package bundle

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/qureni/trustgen/internal/db"
	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/model"
)

// Collect walks the fixtures directory and packs every regular file into a
// BundleData payload. The keyring directory is excluded: gpg homedirs carry
// sockets, caches and private keyrings that have no business in an export.
// When a store is provided the manifest rows are embedded alongside.
func Collect(dir string, store db.Store) (*model.BundleData, error) {
	data := &model.BundleData{CreatedAt: time.Now().UTC()}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && d.Name() == fixtures.KeyringDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		sum, err := fixtures.HashFile(path)
		if err != nil {
			return err
		}
		data.Files = append(data.Files, model.BundleFile{
			Path:   filepath.ToSlash(rel),
			Mode:   uint32(info.Mode().Perm()),
			SHA256: sum,
			Data:   content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not collect fixtures from %s: %w", dir, err)
	}

	if store != nil {
		entries, err := store.GetAllManifestEntries()
		if err != nil {
			return nil, fmt.Errorf("could not read manifest: %w", err)
		}
		data.Entries = entries
	}
	return data, nil
}

// Write streams the payload as indented JSON through a zstd writer.
func Write(filename string, data *model.BundleData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = zstdWriter.Close() }()

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return nil
}

// Read loads and decodes a zstd-compressed JSON bundle.
func Read(filename string) (*model.BundleData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var data model.BundleData
	if err := json.NewDecoder(zstdReader).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &data, nil
}

// RestoreResult summarizes what a Restore run touched.
type RestoreResult struct {
	Written []string
	Skipped []string
}

// Restore materializes the bundle's files below dir. Existing files are
// skipped, never overwritten.
func Restore(dir string, data *model.BundleData) (*RestoreResult, error) {
	res := &RestoreResult{}
	for _, f := range data.Files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return res, fmt.Errorf("could not create directory for %s: %w", f.Path, err)
		}
		if _, err := os.Stat(target); err == nil {
			res.Skipped = append(res.Skipped, f.Path)
			continue
		}
		mode := fs.FileMode(f.Mode)
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, f.Data, mode); err != nil {
			return res, fmt.Errorf("could not write %s: %w", f.Path, err)
		}
		res.Written = append(res.Written, f.Path)
	}
	return res, nil
}
