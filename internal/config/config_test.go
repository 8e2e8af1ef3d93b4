package config_test

import (
	"os"
	"path/filepath"
	"testing"

	cfg "github.com/qureni/trustgen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func resetViper() {
	// Reset global viper state between tests
	viper.Reset()
}

func TestLoadConfig_NoFile_UsesDefaults(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	resetViper()
	defer resetViper()

	defaults := map[string]any{
		"fixtures.dir":  "./fixtures",
		"database.type": "sqlite",
		"database.dsn":  "./trustgen.db",
		"language":      "en",
	}
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, defaults, nil)
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			t.Fatalf("LoadConfig returned unexpected error: %T %v", err, err)
		}
	}
	if got.Fixtures.Dir != "./fixtures" {
		t.Fatalf("expected default fixtures dir, got %q", got.Fixtures.Dir)
	}
	if got.Database.Type != "sqlite" {
		t.Fatalf("expected sqlite default, got %q", got.Database.Type)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	resetViper()
	defer resetViper()

	c := cfg.Config{}
	c.Fixtures.Dir = "./fixtures"
	c.Database.Type = "sqlite"
	c.Database.Dsn = "./trustgen.db"
	c.Language = "en"

	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	yaml := "fixtures:\n  dir: /tmp/fx\n  purposes: [root, key_mgr]\ndatabase:\n  type: postgres\n  dsn: postgresql://user@/db\nlanguage: de\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	resetViper()
	defer resetViper()

	defaults := map[string]any{"database.type": "sqlite", "database.dsn": "./trustgen.db", "language": "en"}
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, defaults, &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Fixtures.Dir != "/tmp/fx" {
		t.Fatalf("expected /tmp/fx, got %q", got.Fixtures.Dir)
	}
	if len(got.Fixtures.Purposes) != 2 || got.Fixtures.Purposes[0] != "root" {
		t.Fatalf("unexpected purposes: %v", got.Fixtures.Purposes)
	}
	if got.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", got.Database.Type)
	}
	if got.Language != "de" {
		t.Fatalf("expected de, got %q", got.Language)
	}
}
