package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/eventlayout/pkg/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "c.toml", `
sheet = "Layout"
data_start_row = 3

[export]
formats = ["xml", "line"]
force = true

[cache]
ttl = "90m"
redis_addr = "localhost:6379"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sheet != "Layout" || cfg.DataStartRow != 3 {
		t.Errorf("sheet=%q row=%d", cfg.Sheet, cfg.DataStartRow)
	}
	if !slices.Equal(cfg.Export.Formats, []string{"xml", "line"}) || !cfg.Export.Force {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Export.Indent != "    " {
		t.Errorf("indent default lost: %q", cfg.Export.Indent)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache.enabled default lost")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"malformed", "sheet = ", errors.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidFormat},
		{"bad format", "[export]\nformats = [\"pdf\"]", errors.ErrCodeInvalidInput},
		{"negative row", "data_start_row = -1", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.name+".toml", tt.content)
			if _, err := Load(path); !errors.Is(err, tt.code) {
				t.Errorf("Load() err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestFind(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	work := t.TempDir()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	t.Run("defaults", func(t *testing.T) {
		cfg, path, err := Find("")
		if err != nil || path != "" || cfg.Sheet != "Campos Entrada" {
			t.Errorf("Find() = %+v, %q, %v", cfg, path, err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		want := writeConfig(t, xdg, "eventlayout/config.toml", `sheet = "xdg"`)
		cfg, path, err := Find("")
		if err != nil || path != want || cfg.Sheet != "xdg" {
			t.Errorf("Find() = %q, %q, %v", cfg.Sheet, path, err)
		}
	})

	t.Run("local wins", func(t *testing.T) {
		writeConfig(t, work, FileName, `sheet = "local"`)
		cfg, path, err := Find("")
		if err != nil || path != FileName || cfg.Sheet != "local" {
			t.Errorf("Find() = %q, %q, %v", cfg.Sheet, path, err)
		}
	})

	t.Run("explicit missing", func(t *testing.T) {
		if _, _, err := Find(filepath.Join(work, "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v", err)
		}
	})
}
