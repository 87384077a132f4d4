package pkgconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "modules:\n  weather:\n    workers: 8\n    enabled: true\n    data_dir: /data\n")

	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("modules.weather.workers"); got != 8 {
		t.Fatalf("GetInt: expected 8, got %d", got)
	}
	if got := cfg.GetBool("modules.weather.enabled"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetString("modules.weather.data_dir"); got != "/data" {
		t.Fatalf("GetString: expected /data, got %q", got)
	}
}

func TestViperDefaultsAndEnv(t *testing.T) {
	t.Setenv("GOBRC_MODULES_WEATHER_BLOCK_SIZE", "1024")

	cfg, err := NewViper("", map[string]any{
		"modules.weather.block_size":   4096,
		"modules.weather.max_stations": 10,
	})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetInt("modules.weather.block_size"); got != 1024 {
		t.Fatalf("expected env override 1024, got %d", got)
	}
	if got := cfg.GetInt("modules.weather.max_stations"); got != 10 {
		t.Fatalf("expected default 10, got %d", got)
	}
}

func TestViperFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "tz: Asia/Jakarta\n")

	cfg, err := NewViper(path, map[string]any{"tz": "UTC", "server.address.http": ":8080"})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("tz"); got != "Asia/Jakarta" {
		t.Fatalf("expected file value, got %q", got)
	}
	if got := cfg.GetString("server.address.http"); got != ":8080" {
		t.Fatalf("expected default value, got %q", got)
	}
}

func TestViperMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
