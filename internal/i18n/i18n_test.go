// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	if got := T("keyring.done"); got != "Keyring fixtures complete." {
		t.Fatalf("unexpected translation: %q", got)
	}

	// fmt-style formatting via trailing args
	got := T("keyring.exported", "/tmp/abc.pub")
	if got != "Exported public key to /tmp/abc.pub" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("keyring.done"); got != "Schlüsselbund-Fixtures fertig." {
		t.Fatalf("unexpected German translation: %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected fallback to message ID, got %q", got)
	}
}
