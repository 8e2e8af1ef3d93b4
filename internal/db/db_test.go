// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStoreFromDSN("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	return s
}

func TestManifestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddManifestEntry("fixtures/root.pem", "private_pem", "root", "abc123")
	if err != nil {
		t.Fatalf("AddManifestEntry: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	entries, err := s.GetAllManifestEntries()
	if err != nil {
		t.Fatalf("GetAllManifestEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Path != "fixtures/root.pem" || e.Kind != "private_pem" || e.Owner != "root" || e.SHA256 != "abc123" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Errorf("expected CreatedAt to be set")
	}
}

func TestManifestDuplicatePath(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddManifestEntry("fixtures/root.pem", "private_pem", "root", "abc"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := s.AddManifestEntry("fixtures/root.pem", "private_pem", "root", "def")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetManifestEntryByPath(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddManifestEntry("fixtures/key_mgr.hex", "private_hex", "key_mgr", "deadbeef"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.GetManifestEntryByPath("fixtures/key_mgr.hex")
	if err != nil {
		t.Fatalf("GetManifestEntryByPath: %v", err)
	}
	if got == nil {
		t.Fatalf("expected entry, got nil")
	}
	if got.Owner != "key_mgr" {
		t.Errorf("owner = %q, want key_mgr", got.Owner)
	}

	missing, err := s.GetManifestEntryByPath("fixtures/nope.pem")
	if err != nil {
		t.Fatalf("lookup of missing path: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing path, got %+v", missing)
	}
}

func TestDeleteManifestEntry(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddManifestEntry("fixtures/test-key-1.fpr", "fingerprint", "test-key-1", "f00")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteManifestEntry(id); err != nil {
		t.Fatalf("DeleteManifestEntry: %v", err)
	}
	entries, err := s.GetAllManifestEntries()
	if err != nil {
		t.Fatalf("GetAllManifestEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty manifest, got %d entries", len(entries))
	}
}

func TestRunLog(t *testing.T) {
	s := newTestStore(t)

	if err := s.LogAction("generate", "keyring created"); err != nil {
		t.Fatalf("LogAction: %v", err)
	}
	if err := s.LogAction("generate", "keypairs created"); err != nil {
		t.Fatalf("LogAction: %v", err)
	}

	log, err := s.GetAllRunLogEntries()
	if err != nil {
		t.Fatalf("GetAllRunLogEntries: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	// Newest first.
	if log[0].Details != "keypairs created" {
		t.Errorf("expected newest entry first, got %+v", log[0])
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	s, err := NewStoreFromDSN("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	// Opening a second store over a fresh memory DB re-runs migrations; make
	// sure a used store still works after.
	if _, err := s.AddManifestEntry("a", "fingerprint", "x", "1"); err != nil {
		t.Fatalf("insert after migrations: %v", err)
	}
}

func TestPackageWrappersRequireInit(t *testing.T) {
	old := store
	store = nil
	t.Cleanup(func() { store = old })

	if _, err := AddManifestEntry("p", "k", "o", "s"); err == nil {
		t.Errorf("expected error from AddManifestEntry with no store")
	}
	if _, err := GetAllManifestEntries(); err == nil {
		t.Errorf("expected error from GetAllManifestEntries with no store")
	}
	if err := LogAction("a", "d"); err == nil {
		t.Errorf("expected error from LogAction with no store")
	}
}

func TestNewSetsDefaultStore(t *testing.T) {
	old := store
	t.Cleanup(func() { store = old })

	if _, err := New("sqlite", ":memory:"); err != nil {
		t.Fatalf("New: %v", err)
	}
	if !IsInitialized() {
		t.Fatalf("expected store to be initialized")
	}
	if err := LogAction("test", "via package wrapper"); err != nil {
		t.Fatalf("LogAction through package store: %v", err)
	}
}
